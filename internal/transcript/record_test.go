package transcript

import (
	"errors"
	"testing"
	"time"

	"github.com/shobhitsyy/VIDEOIQ/internal/tube"
)

func testRecord(t *testing.T) *Record {
	t.Helper()

	meta := &tube.Metadata{
		Title:      "Test Video",
		Duration:   150,
		Tags:       []string{"go"},
		Categories: []string{},
	}
	segments := []Segment{
		{Start: 0, Duration: 2, Text: "hello"},
		{Start: 2, Duration: 2, Text: "again"},
	}
	info := Info{Language: "English", Type: "Manual", Available: NewAvailable(nil)}

	return NewRecord("dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ", meta, info, segments, true)
}

func TestNewRecord(t *testing.T) {
	rec := testRecord(t)

	if rec.SegmentCount != 2 {
		t.Errorf("SegmentCount = %d, want 2", rec.SegmentCount)
	}
	if rec.WordCount != 2 {
		t.Errorf("WordCount = %d, want 2", rec.WordCount)
	}
	if rec.DurationMinutes != 2.5 {
		t.Errorf("DurationMinutes = %v, want 2.5", rec.DurationMinutes)
	}
	if rec.Plain != "hello again" {
		t.Errorf("Plain = %q, want %q", rec.Plain, "hello again")
	}
	if rec.Formatted != "[00:00] hello\n[00:02] again" {
		t.Errorf("Formatted = %q", rec.Formatted)
	}
	if rec.ExtractedAt == "" {
		t.Error("ExtractedAt not set")
	}
}

func TestNewAvailable(t *testing.T) {
	tracks := []tube.Track{
		{LanguageCode: "en", IsTranslatable: true},
		{LanguageCode: "nl", Kind: "asr"},
	}

	a := NewAvailable(tracks)
	if len(a.Manual) != 1 || a.Manual[0].LanguageCode != "en" {
		t.Errorf("Manual = %v", a.Manual)
	}
	if len(a.Generated) != 1 || a.Generated[0].LanguageCode != "nl" {
		t.Errorf("Generated = %v", a.Generated)
	}
	if len(a.Translatable) != 1 || a.Translatable[0].LanguageCode != "en" {
		t.Errorf("Translatable = %v", a.Translatable)
	}
}

func TestStoreSaveLoadLatest(t *testing.T) {
	current := time.Date(2024, 5, 12, 9, 30, 0, 0, time.UTC)
	now = func() time.Time { return current }
	defer func() { now = time.Now }()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	rec := testRecord(t)
	path, err := store.Save(rec)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.VideoID != rec.VideoID || loaded.Plain != rec.Plain || loaded.SegmentCount != rec.SegmentCount {
		t.Errorf("loaded record differs: %+v", loaded)
	}

	// Same video, same second: write-once means no silent overwrite.
	if _, err := store.Save(rec); err == nil {
		t.Error("second Save with identical name succeeded, want error")
	}

	// A later extraction becomes the latest.
	current = current.Add(time.Minute)
	rec2 := testRecord(t)
	rec2.Plain = "newer"
	path2, err := store.Save(rec2)
	if err != nil {
		t.Fatalf("Save second record: %v", err)
	}

	latest, latestPath, err := store.Latest(rec.VideoID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latestPath != path2 {
		t.Errorf("Latest path = %q, want %q", latestPath, path2)
	}
	if latest.Plain != "newer" {
		t.Errorf("Latest Plain = %q, want %q", latest.Plain, "newer")
	}
}

func TestStoreLatestMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, _, err := store.Latest("missing12345"); !errors.Is(err, ErrNoRecord) {
		t.Errorf("Latest on empty store = %v, want ErrNoRecord", err)
	}
}

func TestIsRecordPath(t *testing.T) {
	if !IsRecordPath("transcripts/abc_20240512_093000.json") {
		t.Error("json path not recognized")
	}
	if IsRecordPath("dQw4w9WgXcQ") {
		t.Error("bare video ID recognized as path")
	}
}
