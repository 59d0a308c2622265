// Package transcript turns resolved caption data into the canonical
// record that gets persisted and consumed by summarization and Q&A.
package transcript

import (
	"fmt"
	"html"
	"strings"
)

// Segment is one timed unit of transcript text. Insertion order is
// chronological order and must be preserved. The json tags are part of
// the stored record schema.
type Segment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Normalize decodes residual entity escapes in every segment's text.
// The acquisition methods return payloads with different leftover
// escaping, after this they all look the same. Decoding already clean
// text is a no-op, so normalizing twice changes nothing.
func Normalize(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	for i, seg := range segments {
		seg.Text = html.UnescapeString(seg.Text)
		out[i] = seg
	}

	return out
}

// Timestamp renders a start offset as [MM:SS], zero padded. Minutes keep
// growing past 59, there is no hour component.
func Timestamp(start float64) string {
	whole := int(start)
	return fmt.Sprintf("[%02d:%02d]", whole/60, whole%60)
}

// Format renders the segments for display, one "[MM:SS] text" line per
// segment. Without timestamps the texts are joined by spaces instead.
func Format(segments []Segment, timestamps bool) string {
	b := strings.Builder{}
	for _, seg := range segments {
		if timestamps {
			b.WriteString(Timestamp(seg.Start))
			b.WriteString(" ")
			b.WriteString(seg.Text)
			b.WriteString("\n")
		} else {
			b.WriteString(seg.Text)
			b.WriteString(" ")
		}
	}

	return strings.TrimSpace(b.String())
}

// Plain renders the segment texts joined by single spaces, no timestamps.
func Plain(segments []Segment) string {
	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = seg.Text
	}

	return strings.Join(parts, " ")
}
