package exec

import (
	"io"
	"os"
	"syscall"
)

// TailBuffer exposes tailBuffer for testing.
type TailBuffer interface {
	io.Writer
	LastLines(n int) string
}

type exportedTail struct{ *tailBuffer }

func (e exportedTail) LastLines(n int) string { return e.lastLines(n) }

// NewTailBuffer exports newTailBuffer for testing.
func NewTailBuffer(max int) TailBuffer {
	return exportedTail{newTailBuffer(max)}
}

// ProcessAlive reports whether a process with pid exists.
func ProcessAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
