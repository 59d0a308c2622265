package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoRecord = errors.New("no stored transcript record")

// Store writes records to a directory of json files, one file per
// extraction, named {video_id}_{timestamp}.json.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating transcripts directory: %w", err)
	}

	return &Store{Dir: dir}, nil
}

// Save writes the record to a new file and returns its path. Records are
// write-once, an existing file is never overwritten.
func (s *Store) Save(record *Record) (string, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling record: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", record.VideoID, now().Format("20060102_150405"))
	path := filepath.Join(s.Dir, name)

	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating record file: %w", err)
	}
	defer fh.Close()

	if _, err := fh.Write(data); err != nil {
		return "", fmt.Errorf("writing record file: %w", err)
	}

	return path, nil
}

// Load reads one record back by path.
func (s *Store) Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record file: %w", err)
	}

	record := Record{}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshalling record %q: %w", path, err)
	}

	return &record, nil
}

// Latest returns the most recent record for a video and its path.
// The timestamp in the filename sorts lexically, newest last.
func (s *Store) Latest(videoID string) (*Record, string, error) {
	matches, err := filepath.Glob(filepath.Join(s.Dir, videoID+"_*.json"))
	if err != nil {
		return nil, "", fmt.Errorf("globbing records: %w", err)
	}
	if len(matches) == 0 {
		return nil, "", fmt.Errorf("video %q: %w", videoID, ErrNoRecord)
	}

	sort.Strings(matches)
	path := matches[len(matches)-1]
	record, err := s.Load(path)
	if err != nil {
		return nil, "", err
	}

	return record, path, nil
}

// IsRecordPath reports whether the argument looks like a record file
// path rather than a video ID or URL.
func IsRecordPath(arg string) bool {
	return strings.HasSuffix(arg, ".json")
}
