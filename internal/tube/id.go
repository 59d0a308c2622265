package tube

import (
	"errors"
	"regexp"
)

var ErrInvalidURL = errors.New("not a recognized video url")

// The recognized URL shapes, tried in order. Watch, short-link, embed and
// the old /v/ player, then a looser watch match for when v is not the
// first query parameter.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

// Video IDs are exactly 11 characters of this alphabet.
var idShape = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID pulls the canonical 11 character video ID out of any of
// the recognized YouTube URL shapes, or accepts a bare ID as is. Returns
// ErrInvalidURL for anything else, malformed input is expected here and
// not exceptional.
func ExtractVideoID(url string) (string, error) {
	if idShape.MatchString(url) {
		return url, nil
	}

	for _, pattern := range idPatterns {
		match := pattern.FindStringSubmatch(url)
		if match == nil {
			continue
		}

		if id := match[1]; idShape.MatchString(id) {
			return id, nil
		}
	}

	return "", ErrInvalidURL
}
