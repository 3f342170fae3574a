package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/yoga"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Print the color palette",
		Args:  cobra.NoArgs,
	}
	format := cmd.Flags().StringP("format", "o", "text", "output format: text, json, yaml")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		colors := yoga.DefaultPalette().Colors()
		switch *format {
		case "text":
			fmt.Fprint(a.out, formatPalette(colors))
		case "json":
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(colors)
		case "yaml":
			enc := yaml.NewEncoder(a.out)
			enc.SetIndent(2)
			if err := enc.Encode(colors); err != nil {
				return err
			}
			return enc.Close()
		default:
			return fmt.Errorf("unknown format %q (want text, json or yaml): %w", *format, yoga.ErrValidation)
		}
		return nil
	}
	return cmd
}

// formatPalette renders one aligned line per color, with a swatch for the
// colors a terminal can show.
func formatPalette(colors []yoga.NamedColor) string {
	w := 0
	for _, c := range colors {
		w = max(w, runewidth.StringWidth(c.Name))
	}
	var b strings.Builder
	for _, c := range colors {
		swatch := "  "
		if strings.HasPrefix(c.Value, "#") {
			swatch = lipgloss.NewStyle().Background(lipgloss.Color(c.Value)).Render("  ")
		}
		fmt.Fprintf(&b, "%s %s %s\n", swatch, runewidth.FillRight(c.Name, w), c.Value)
	}
	return b.String()
}
