package summarize

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shobhitsyy/VIDEOIQ/internal/transcript"
)

const temperature = 0.7

// ChatProvider summarizes through a chat completion model.
type ChatProvider struct {
	Id        string // groq, gemini, openai
	Display   string // stored with the summary, like "Groq Llama3"
	ModelName string
	MaxTokens int

	// CharLimit truncates the transcript sent out, 0 sends everything.
	CharLimit int

	Chat Completer
}

func (p *ChatProvider) Name() string { return p.Id }

func (p *ChatProvider) Summarize(ctx context.Context, record *transcript.Record) (*Result, error) {
	reply, err := p.Chat.Complete(ctx, prompt(record, p.CharLimit), p.MaxTokens, temperature)
	if err != nil {
		return nil, err
	}

	summary, points := Parse(reply)
	return &Result{
		Summary:   summary,
		KeyPoints: points,
		Provider:  p.Display,
		Model:     p.ModelName,
	}, nil
}

func prompt(record *transcript.Record, limit int) string {
	text := record.Plain
	if limit > 0 && len(text) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	return fmt.Sprintf(`Analyze this YouTube video transcript and create:

1. A detailed summary (3-4 paragraphs) that captures the essence and main flow
2. Key insights as bullet points (5-8 most important takeaways)

Video: %q (%g minutes)

Transcript:
%s

Response format:
SUMMARY:
[Your comprehensive summary]

KEY POINTS:
• [Key insight 1]
• [Key insight 2]
`, record.Metadata.Title, record.DurationMinutes, text)
}

var bulletPrefix = regexp.MustCompile(`^[•\-\*\d.]+\s*`)

// Parse splits a model reply into the summary text and its key points.
// Replies are asked to carry SUMMARY: and KEY POINTS: sections, but models
// don't always comply, a reply of bare bullet lines is handled too.
func Parse(reply string) (summary string, keyPoints []string) {
	section := ""
	b := strings.Builder{}
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		if strings.Contains(upper, "SUMMARY") || strings.Contains(upper, "OVERVIEW") {
			section = "summary"
			continue
		}
		if strings.Contains(upper, "KEY POINTS") || strings.Contains(upper, "TAKEAWAYS") {
			section = "points"
			continue
		}

		switch section {
		case "summary":
			b.WriteString(line)
			b.WriteByte(' ')
		case "points":
			if point := bulletPrefix.ReplaceAllString(line, ""); point != "" {
				keyPoints = append(keyPoints, point)
			}
		}
	}
	summary = strings.TrimSpace(b.String())

	if summary == "" && len(keyPoints) == 0 {
		// No section headers at all, treat the leading lines as the
		// summary and any bullet lines as the points.
		b.Reset()
		inPoints := false
		for _, line := range strings.Split(reply, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
				inPoints = true
				if point := bulletPrefix.ReplaceAllString(line, ""); point != "" {
					keyPoints = append(keyPoints, point)
				}
			} else if !inPoints {
				b.WriteString(line)
				b.WriteByte(' ')
			}
		}
		summary = strings.TrimSpace(b.String())
	}

	return summary, keyPoints
}
