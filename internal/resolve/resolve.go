// Package resolve turns a video id into one concrete transcript by trying
// independent acquisition methods in a fixed order. Each method knows how
// to obtain a caption track listing (or skip listing entirely) and applies
// the same language preference scan to whatever it finds.
package resolve

import (
	"errors"
	"log"

	"github.com/shobhitsyy/VIDEOIQ/internal/transcript"
	"github.com/shobhitsyy/VIDEOIQ/internal/tube"
)

// ErrNoTranscript means every acquisition method was tried and none
// produced a single segment.
var ErrNoTranscript = errors.New("no transcript could be obtained")

// DefaultLanguages is the preference order used when the caller does not
// state one. English variants first, then the other majors.
var DefaultLanguages = []string{
	"en", "en-US", "en-GB",
	"es", "fr", "de", "it", "pt", "ru",
	"ja", "ko", "zh-Hans", "zh-Hant", "hi", "ar", "nl",
}

// TranslateLimit caps how many preferred languages are attempted when
// machine translating a fallback track. Every attempt is a request.
var TranslateLimit = 5

// Origin says how a transcript came to be.
type Origin int

const (
	OriginManual Origin = iota
	OriginAuto
	OriginTranslated
)

func (o Origin) String() string {
	switch o {
	case OriginManual:
		return "Manual"
	case OriginAuto:
		return "Auto-generated"
	case OriginTranslated:
		return "Translated"
	}

	return "Unknown"
}

// Prefs steer the language scan that every method applies to its track
// listing.
type Prefs struct {
	// Languages in order of preference, DefaultLanguages when empty.
	Languages []string

	// PreferManual puts human authored tracks before auto generated ones
	// within each language.
	PreferManual bool
}

func (p Prefs) languages() []string {
	if len(p.Languages) > 0 {
		return p.Languages
	}

	return DefaultLanguages
}

// Resolved is one obtained transcript plus how it was obtained.
// Language is the display name, "German (translated to en)" for machine
// translated tracks. LanguageCode is the code of the obtained content.
type Resolved struct {
	Segments     []transcript.Segment
	Language     string
	LanguageCode string
	Origin       Origin
	Method       string
}

// Method is a single way of obtaining a transcript. An error or an empty
// segment sequence both mean the resolver moves on to the next method.
type Method interface {
	Name() string
	Attempt(videoId string, prefs Prefs) (*Resolved, error)
}

// Resolver tries its methods in order and returns the first non-empty
// transcript. Later methods are never invoked once one succeeds.
type Resolver struct {
	Methods []Method
}

// New wires the production method order: the player endpoint listing,
// the listing embedded in the watch page, and finally a blind request to
// the timedtext endpoint for English.
func New(yt *tube.Client) *Resolver {
	return &Resolver{
		Methods: []Method{
			&CatalogMethod{Yt: yt},
			&PageMethod{Yt: yt},
			&DirectMethod{Yt: yt, Language: "en"},
		},
	}
}

// Resolve runs the methods in order until one produces segments.
// Failures of individual methods are logged, only total exhaustion is
// an error.
func (r *Resolver) Resolve(videoId string, prefs Prefs) (*Resolved, error) {
	for _, method := range r.Methods {
		res, err := method.Attempt(videoId, prefs)
		if err != nil {
			log.Printf("[WARN]: method %q failed for video %q: %v", method.Name(), videoId, err)
			continue
		}

		if res == nil || len(res.Segments) == 0 {
			log.Printf("[WARN]: method %q produced no segments for video %q", method.Name(), videoId)
			continue
		}

		log.Printf(
			"[INFO]: resolved transcript for %q via %q: %d segments, language %q",
			videoId,
			method.Name(),
			len(res.Segments),
			res.Language,
		)
		return res, nil
	}

	return nil, ErrNoTranscript
}
