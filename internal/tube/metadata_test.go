package tube

import (
	"reflect"
	"testing"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT2M", 120},
		{"PT4M33S", 273},
		{"PT1H", 3600},
		{"PT0S", 0},
		{"", 0},
		{"4M33S", 0},
		{"PT", 0},
		{"PTxxS", 0},
		{"P1DT2H", 0},
	}

	for _, tt := range tests {
		if got := ParseDuration(tt.value); got != tt.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

// A watch page with every duration source present, each carrying a
// different value so the test can tell which strategy won.
const fullWatchPage = `<!DOCTYPE html>
<html>
<head>
<meta property="og:title" content="Test Video">
<meta property="og:description" content="A test description">
<meta name="keywords" content="go, testing, captions">
<meta itemprop="duration" content="PT4M23S">
<script type="application/ld+json">
{"@context":"http://schema.org","@type":"VideoObject","uploadDate":"2023-04-12","duration":"PT4M24S","interactionStatistic":[{"@type":"InteractionCounter","interactionType":{"@type":"WatchAction"},"userInteractionCount":12345}]}
</script>
</head>
<body>
<script>var ytInitialPlayerResponse = {"streamingData":{"formats":[{"approxDurationMs":"260133"}]},"videoDetails":{"videoId":"dQw4w9WgXcQ","lengthSeconds":"261"},"microformat":{"playerMicroformatRenderer":{"lengthSeconds":"262","category":"Science & Technology"}}};</script>
</body>
</html>`

func TestParseMetadata(t *testing.T) {
	meta := parseMetadata(fullWatchPage)

	if meta.Title != "Test Video" {
		t.Errorf("Title = %q, want %q", meta.Title, "Test Video")
	}
	if meta.Description != "A test description" {
		t.Errorf("Description = %q, want %q", meta.Description, "A test description")
	}
	if meta.Duration != 260 {
		t.Errorf("Duration = %d, want 260 (player state strategy should win)", meta.Duration)
	}
	if meta.UploadDate != "2023-04-12" {
		t.Errorf("UploadDate = %q, want %q", meta.UploadDate, "2023-04-12")
	}
	if meta.ViewCount != 12345 {
		t.Errorf("ViewCount = %d, want 12345", meta.ViewCount)
	}
	if want := []string{"go", "testing", "captions"}; !reflect.DeepEqual(meta.Tags, want) {
		t.Errorf("Tags = %v, want %v", meta.Tags, want)
	}
	if want := []string{"Science & Technology"}; !reflect.DeepEqual(meta.Categories, want) {
		t.Errorf("Categories = %v, want %v", meta.Categories, want)
	}
}

func TestParseMetadataDurationFallbacks(t *testing.T) {
	tests := []struct {
		name string
		page string
		want int
	}{
		{
			"video details when no player state",
			`<html><body><script>{"videoDetails":{"lengthSeconds":"261"},"microformat":{"playerMicroformatRenderer":{"lengthSeconds":"262"}}}</script></body></html>`,
			261,
		},
		{
			"microformat when earlier strategies empty",
			`<html><body><script>{"microformat":{"playerMicroformatRenderer":{"lengthSeconds":"262"}}}</script></body></html>`,
			262,
		},
		{
			"meta tag when no embedded state",
			`<html><head><meta itemprop="duration" content="PT4M23S"></head></html>`,
			263,
		},
		{
			"linked data as last resort",
			`<html><head><script type="application/ld+json">{"duration":"PT4M24S"}</script></head></html>`,
			264,
		},
		{
			"nothing found",
			`<html><head></head></html>`,
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseMetadata(tt.page).Duration; got != tt.want {
				t.Errorf("Duration = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseMetadataDefaults(t *testing.T) {
	meta := parseMetadata("<html></html>")

	if meta.Title != "Unknown Title" {
		t.Errorf("Title = %q, want %q", meta.Title, "Unknown Title")
	}
	if meta.Description != "" {
		t.Errorf("Description = %q, want empty", meta.Description)
	}
	if meta.Duration != 0 {
		t.Errorf("Duration = %d, want 0", meta.Duration)
	}
	if len(meta.Tags) != 0 || len(meta.Categories) != 0 {
		t.Errorf("Tags/Categories = %v/%v, want empty", meta.Tags, meta.Categories)
	}
}
