package yoga

import "regexp"

// Source locates a video: a URL, a local path, or a YouTube link or id.
type Source string

var youTubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// YouTubeID returns the video id when the source refers to YouTube.
func (s Source) YouTubeID() (string, bool) {
	for _, re := range youTubePatterns {
		if m := re.FindStringSubmatch(string(s)); m != nil {
			return m[1], true
		}
	}
	return "", false
}

func (s Source) String() string { return string(s) }
