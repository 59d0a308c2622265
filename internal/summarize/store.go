package summarize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store writes summaries to a directory, each one as a json file for
// programs and a txt rendering for humans.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating summaries directory: %w", err)
	}

	return &Store{Dir: dir}, nil
}

// Save writes both renderings and returns the path of the json one.
func (s *Store) Save(result *Result, videoID string) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling summary: %w", err)
	}

	name := fmt.Sprintf("summary_%s_%s", videoID, now().Format("20060102_150405"))
	path := filepath.Join(s.Dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing summary file: %w", err)
	}

	text := filepath.Join(s.Dir, name+".txt")
	if err := os.WriteFile(text, []byte(renderText(result)), 0o644); err != nil {
		return "", fmt.Errorf("writing summary text file: %w", err)
	}

	return path, nil
}

func renderText(result *Result) string {
	b := strings.Builder{}

	fmt.Fprintf(&b, "Title: %s\n", result.Title)
	fmt.Fprintf(&b, "Duration: %s\n", result.Duration)
	fmt.Fprintf(&b, "AI Provider: %s\n", result.Provider)
	fmt.Fprintf(&b, "Generated: %s\n", result.GeneratedAt)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString("SUMMARY:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	b.WriteString(result.Summary + "\n\n")

	b.WriteString("KEY POINTS:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	for i, point := range result.KeyPoints {
		fmt.Fprintf(&b, "%d. %s\n", i+1, point)
	}

	return b.String()
}
