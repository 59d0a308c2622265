package summarize

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shobhitsyy/VIDEOIQ/internal/transcript"
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+`)
	word        = regexp.MustCompile(`\w+`)
)

// Extractive is the last resort provider, no API involved. Sentences are
// ranked on the frequency of their words, the best ones become the
// summary and the next best the key points.
type Extractive struct{}

func (Extractive) Name() string { return "local" }

func (Extractive) Summarize(_ context.Context, record *transcript.Record) (*Result, error) {
	var sentences []string
	for _, s := range sentenceEnd.Split(record.Plain, -1) {
		s = strings.TrimSpace(s)
		if len(s) > 20 {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) < 5 {
		return nil, fmt.Errorf("only %d usable sentences, need at least 5", len(sentences))
	}

	freq := map[string]int{}
	for _, w := range word.FindAllString(strings.ToLower(record.Plain), -1) {
		freq[w]++
	}

	type scored struct {
		index int
		score float64
	}
	scores := make([]scored, len(sentences))
	for i, sentence := range sentences {
		words := word.FindAllString(strings.ToLower(sentence), -1)
		sum := 0
		for _, w := range words {
			sum += freq[w]
		}

		scores[i] = scored{index: i}
		if len(words) > 0 {
			scores[i].score = float64(sum) / float64(len(words))
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	top := make([]string, 0, 5)
	for _, s := range scores[:5] {
		top = append(top, sentences[s.index])
	}

	end := 11
	if end > len(scores) {
		end = len(scores)
	}
	points := make([]string, 0, end-5)
	for _, s := range scores[5:end] {
		points = append(points, sentences[s.index])
	}

	return &Result{
		Summary:   strings.Join(top, ". ") + ".",
		KeyPoints: points,
		Provider:  "Local Extractive",
		Model:     "extractive",
	}, nil
}
