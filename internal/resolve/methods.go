package resolve

import (
	"fmt"
	"log"

	"github.com/shobhitsyy/VIDEOIQ/internal/transcript"
	"github.com/shobhitsyy/VIDEOIQ/internal/tube"
)

// Catalog is a track listing partitioned by origin.
type Catalog struct {
	Manual []tube.Track
	Auto   []tube.Track
}

func NewCatalog(tracks []tube.Track) *Catalog {
	c := &Catalog{}
	for _, track := range tracks {
		if track.IsAuto() {
			c.Auto = append(c.Auto, track)
		} else {
			c.Manual = append(c.Manual, track)
		}
	}

	return c
}

// Pick scans the catalog for the best track: every preferred language in
// order, human authored before auto generated within a language (reversed
// when PreferManual is off). When no preferred language is available the
// first track is better than nothing, manual over auto regardless of the
// preference. Matched reports whether a preferred language was found.
func (c *Catalog) Pick(prefs Prefs) (track *tube.Track, origin Origin, matched bool) {
	groups := [2]struct {
		tracks []tube.Track
		origin Origin
	}{
		{c.Manual, OriginManual},
		{c.Auto, OriginAuto},
	}
	if !prefs.PreferManual {
		groups[0], groups[1] = groups[1], groups[0]
	}

	for _, lang := range prefs.languages() {
		for _, group := range groups {
			for i := range group.tracks {
				if group.tracks[i].LanguageCode == lang {
					return &group.tracks[i], group.origin, true
				}
			}
		}
	}

	if len(c.Manual) > 0 {
		return &c.Manual[0], OriginManual, false
	}
	if len(c.Auto) > 0 {
		return &c.Auto[0], OriginAuto, false
	}

	return nil, OriginManual, false
}

// fetchBest picks a track out of the listing and downloads it. A fallback
// track that can be machine translated gets translation attempts into the
// top preferred languages first, the untranslated content is only settled
// for when none of those produce anything.
func fetchBest(yt *tube.Client, method string, tracks []tube.Track, prefs Prefs) (*Resolved, error) {
	track, origin, matched := NewCatalog(tracks).Pick(prefs)
	if track == nil {
		return nil, tube.ErrNoCaptions
	}

	if !matched && track.IsTranslatable {
		languages := prefs.languages()
		if len(languages) > TranslateLimit {
			languages = languages[:TranslateLimit]
		}

		for _, lang := range languages {
			translated, err := yt.TranslateTrack(track, lang)
			if err != nil {
				log.Printf("[WARN]: translating track %q to %q: %v", track.LanguageCode, lang, err)
				continue
			}
			if len(translated.Entries) == 0 {
				continue
			}

			return &Resolved{
				Segments:     segments(translated),
				Language:     fmt.Sprintf("%s (translated to %s)", track.Label(), lang),
				LanguageCode: lang,
				Origin:       OriginTranslated,
				Method:       method,
			}, nil
		}
	}

	fetched, err := yt.FetchTrack(track)
	if err != nil {
		return nil, fmt.Errorf("fetching track %q: %w", track.LanguageCode, err)
	}

	return &Resolved{
		Segments:     segments(fetched),
		Language:     track.Label(),
		LanguageCode: track.LanguageCode,
		Origin:       origin,
		Method:       method,
	}, nil
}

func segments(t *tube.Transcript) []transcript.Segment {
	segs := make([]transcript.Segment, len(t.Entries))
	for i, entry := range t.Entries {
		segs[i] = transcript.Segment{
			Start:    entry.Start,
			Duration: entry.Dur,
			Text:     entry.Text,
		}
	}

	return segs
}

// CatalogMethod lists tracks through the player endpoint.
type CatalogMethod struct {
	Yt *tube.Client
}

func (m *CatalogMethod) Name() string { return "player-catalog" }

func (m *CatalogMethod) Attempt(videoId string, prefs Prefs) (*Resolved, error) {
	tracks, err := m.Yt.ListTracks(videoId)
	if err != nil {
		return nil, err
	}

	return fetchBest(m.Yt, m.Name(), tracks, prefs)
}

// PageMethod re-derives the track listing from the JSON embedded in the
// watch page. A separate data source from the player endpoint, the two
// break independently.
type PageMethod struct {
	Yt *tube.Client
}

func (m *PageMethod) Name() string { return "page-embed" }

func (m *PageMethod) Attempt(videoId string, prefs Prefs) (*Resolved, error) {
	tracks, err := m.Yt.PageTracks(videoId)
	if err != nil {
		return nil, err
	}

	return fetchBest(m.Yt, m.Name(), tracks, prefs)
}

// DirectMethod requests the timedtext endpoint for one fixed language
// without any listing. Without an asr marker the endpoint only serves
// human authored tracks, so a hit is a manual transcript. Last resort.
type DirectMethod struct {
	Yt       *tube.Client
	Language string
}

func (m *DirectMethod) Name() string { return "direct-timedtext" }

func (m *DirectMethod) Attempt(videoId string, _ Prefs) (*Resolved, error) {
	fetched, err := m.Yt.TimedText(videoId, m.Language)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Segments:     segments(fetched),
		Language:     m.Language,
		LanguageCode: m.Language,
		Origin:       OriginManual,
		Method:       m.Name(),
	}, nil
}
