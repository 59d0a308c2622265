package resolve

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shobhitsyy/VIDEOIQ/internal/transcript"
	"github.com/shobhitsyy/VIDEOIQ/internal/tube"
)

type fakeMethod struct {
	name  string
	res   *Resolved
	err   error
	calls int
}

func (f *fakeMethod) Name() string { return f.name }

func (f *fakeMethod) Attempt(string, Prefs) (*Resolved, error) {
	f.calls++
	return f.res, f.err
}

func segs(n int) []transcript.Segment {
	out := make([]transcript.Segment, n)
	for i := range out {
		out[i] = transcript.Segment{Start: float64(i), Duration: 1, Text: "s"}
	}
	return out
}

func TestResolveFirstMethodWins(t *testing.T) {
	first := &fakeMethod{name: "first", res: &Resolved{Segments: segs(2), Method: "first"}}
	second := &fakeMethod{name: "second", res: &Resolved{Segments: segs(5), Method: "second"}}
	third := &fakeMethod{name: "third", err: errors.New("should not run")}

	r := &Resolver{Methods: []Method{first, second, third}}
	res, err := r.Resolve("dQw4w9WgXcQ", Prefs{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Method != "first" {
		t.Errorf("resolved via %q, want %q", res.Method, "first")
	}
	if first.calls != 1 || second.calls != 0 || third.calls != 0 {
		t.Errorf("calls = %d/%d/%d, want 1/0/0", first.calls, second.calls, third.calls)
	}
}

func TestResolveFallsThrough(t *testing.T) {
	first := &fakeMethod{name: "first", err: errors.New("listing broke")}
	second := &fakeMethod{name: "second", res: &Resolved{Segments: []transcript.Segment{}}}
	third := &fakeMethod{name: "third", res: &Resolved{Segments: segs(1), Method: "third"}}

	r := &Resolver{Methods: []Method{first, second, third}}
	res, err := r.Resolve("dQw4w9WgXcQ", Prefs{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Method != "third" {
		t.Errorf("resolved via %q, want %q", res.Method, "third")
	}
	if first.calls != 1 || second.calls != 1 || third.calls != 1 {
		t.Errorf("calls = %d/%d/%d, want 1/1/1", first.calls, second.calls, third.calls)
	}
}

func TestResolveExhausted(t *testing.T) {
	first := &fakeMethod{name: "first", err: tube.ErrNoCaptions}
	second := &fakeMethod{name: "second", res: &Resolved{}}

	r := &Resolver{Methods: []Method{first, second}}
	if _, err := r.Resolve("dQw4w9WgXcQ", Prefs{}); !errors.Is(err, ErrNoTranscript) {
		t.Errorf("Resolve error = %v, want %v", err, ErrNoTranscript)
	}
}

func track(code, kind string, translatable bool) tube.Track {
	t := tube.Track{LanguageCode: code, Kind: kind, IsTranslatable: translatable}
	t.Name.SimpleText = code
	return t
}

func TestPick(t *testing.T) {
	tests := []struct {
		name        string
		tracks      []tube.Track
		prefs       Prefs
		wantCode    string
		wantOrigin  Origin
		wantMatched bool
	}{
		{
			name:        "preferred language wins over listing order",
			tracks:      []tube.Track{track("fr", "", false), track("en", "", false), track("es", "", false)},
			prefs:       Prefs{Languages: []string{"es", "en"}, PreferManual: true},
			wantCode:    "es",
			wantOrigin:  OriginManual,
			wantMatched: true,
		},
		{
			name:        "language outweighs origin",
			tracks:      []tube.Track{track("en", "asr", false), track("es", "", false)},
			prefs:       Prefs{Languages: []string{"en", "es"}, PreferManual: true},
			wantCode:    "en",
			wantOrigin:  OriginAuto,
			wantMatched: true,
		},
		{
			name:        "manual before auto within language",
			tracks:      []tube.Track{track("en", "asr", false), track("en", "", false)},
			prefs:       Prefs{Languages: []string{"en"}, PreferManual: true},
			wantCode:    "en",
			wantOrigin:  OriginManual,
			wantMatched: true,
		},
		{
			name:        "auto before manual when manual not preferred",
			tracks:      []tube.Track{track("en", "", false), track("en", "asr", false)},
			prefs:       Prefs{Languages: []string{"en"}},
			wantCode:    "en",
			wantOrigin:  OriginAuto,
			wantMatched: true,
		},
		{
			name:        "no match falls back to first available",
			tracks:      []tube.Track{track("de", "", false), track("nl", "asr", false)},
			prefs:       Prefs{Languages: []string{"en"}, PreferManual: true},
			wantCode:    "de",
			wantOrigin:  OriginManual,
			wantMatched: false,
		},
		{
			name:        "fallback prefers manual even when manual not preferred",
			tracks:      []tube.Track{track("nl", "asr", false), track("de", "", false)},
			prefs:       Prefs{Languages: []string{"en"}},
			wantCode:    "de",
			wantOrigin:  OriginManual,
			wantMatched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, origin, matched := NewCatalog(tt.tracks).Pick(tt.prefs)
			if got == nil {
				t.Fatal("Pick returned no track")
			}
			if got.LanguageCode != tt.wantCode {
				t.Errorf("picked %q, want %q", got.LanguageCode, tt.wantCode)
			}
			if origin != tt.wantOrigin {
				t.Errorf("origin = %v, want %v", origin, tt.wantOrigin)
			}
			if matched != tt.wantMatched {
				t.Errorf("matched = %v, want %v", matched, tt.wantMatched)
			}
		})
	}
}

func TestPickEmpty(t *testing.T) {
	if got, _, _ := NewCatalog(nil).Pick(Prefs{}); got != nil {
		t.Errorf("Pick on empty catalog = %+v, want nil", got)
	}
}

func TestFetchBestTranslatesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("tlang") {
		case "en":
			fmt.Fprint(w, `<transcript><text start="0" dur="1">translated</text></transcript>`)
		case "":
			fmt.Fprint(w, `<transcript><text start="0" dur="1">original</text></transcript>`)
		default:
			// Other preferred languages have no translation.
		}
	}))
	defer server.Close()

	german := track("de", "", true)
	german.BaseUrl = server.URL + "/api/timedtext?v=x&lang=de"

	yt := &tube.Client{NoDelay: true}
	res, err := fetchBest(yt, "test", []tube.Track{german}, Prefs{Languages: []string{"ja", "en"}, PreferManual: true})
	if err != nil {
		t.Fatalf("fetchBest: %v", err)
	}

	if res.Origin != OriginTranslated {
		t.Errorf("origin = %v, want %v", res.Origin, OriginTranslated)
	}
	if res.LanguageCode != "en" {
		t.Errorf("language code = %q, want %q", res.LanguageCode, "en")
	}
	if len(res.Segments) != 1 || res.Segments[0].Text != "translated" {
		t.Errorf("unexpected segments: %+v", res.Segments)
	}
}

func TestFetchBestSettlesForUntranslated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("tlang") != "" {
			// Empty body, the endpoint's way of saying no.
			return
		}
		fmt.Fprint(w, `<transcript><text start="0" dur="1">original</text></transcript>`)
	}))
	defer server.Close()

	german := track("de", "", true)
	german.BaseUrl = server.URL + "/api/timedtext?v=x&lang=de"

	yt := &tube.Client{NoDelay: true}
	res, err := fetchBest(yt, "test", []tube.Track{german}, Prefs{Languages: []string{"en", "es"}, PreferManual: true})
	if err != nil {
		t.Fatalf("fetchBest: %v", err)
	}

	if res.Origin != OriginManual {
		t.Errorf("origin = %v, want %v", res.Origin, OriginManual)
	}
	if res.LanguageCode != "de" {
		t.Errorf("language code = %q, want %q", res.LanguageCode, "de")
	}
	if len(res.Segments) != 1 || res.Segments[0].Text != "original" {
		t.Errorf("unexpected segments: %+v", res.Segments)
	}
}

func TestOriginString(t *testing.T) {
	if got := OriginTranslated.String(); got != "Translated" {
		t.Errorf("String() = %q, want %q", got, "Translated")
	}
}
