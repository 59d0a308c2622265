package tube

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Metadata is the best effort description of a video, assembled from the
// watch page. Every field defaults independently, a missing one never
// blocks the others. The json tags are part of the stored record schema.
type Metadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	UploadDate  string   `json:"upload_date"`
	ViewCount   int      `json:"view_count"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
}

// VideoMetadata fetches the watch page once and runs every extraction
// strategy over it. Never fails on bad page content, only on failing to
// retrieve the page at all.
func (c *Client) VideoMetadata(videoId string) (*Metadata, error) {
	sContent, err := c.WatchPage(videoId)
	if err != nil {
		return nil, err
	}

	return parseMetadata(sContent), nil
}

// The duration lives in several places depending on which rendering
// variant YouTube served, any single one can be missing. Tried in order,
// first non-zero wins. Zero doubles as the "not found" signal, which is
// an accepted approximation: a truly zero-length video reads as absent.
var durationStrategies = []func(raw string, doc *goquery.Document) int{
	durationFromPlayerState,
	durationFromVideoDetails,
	durationFromMicroformat,
	durationFromMetaTag,
	durationFromLinkedData,
}

func parseMetadata(content string) *Metadata {
	meta := &Metadata{
		Title:      "Unknown Title",
		Tags:       []string{},
		Categories: []string{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return meta
	}

	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		meta.Title = title
	}
	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		meta.Description = desc
	}

	for _, strategy := range durationStrategies {
		if d := strategy(content, doc); d > 0 {
			meta.Duration = d
			break
		}
	}

	if keywords, ok := doc.Find(`meta[name="keywords"]`).Attr("content"); ok && keywords != "" {
		for _, tag := range strings.Split(keywords, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				meta.Tags = append(meta.Tags, tag)
			}
		}
	}

	if category, ok := microformatField(content, "category"); ok {
		meta.Categories = append(meta.Categories, category)
	}

	meta.UploadDate, meta.ViewCount = linkedData(doc)

	return meta
}

// durationFromPlayerState reads the approximate duration in milliseconds
// out of the embedded player state.
func durationFromPlayerState(raw string, _ *goquery.Document) int {
	_, after, ok := strings.Cut(raw, `"approxDurationMs":"`)
	if !ok {
		return 0
	}

	return leadingInt(after) / 1000
}

// durationFromVideoDetails reads lengthSeconds from the embedded
// videoDetails object.
func durationFromVideoDetails(raw string, _ *goquery.Document) int {
	_, after, ok := strings.Cut(raw, `"videoDetails":`)
	if !ok {
		return 0
	}

	_, after, ok = strings.Cut(after, `"lengthSeconds":"`)
	if !ok {
		return 0
	}

	return leadingInt(after)
}

// durationFromMicroformat reads lengthSeconds from the embedded
// playerMicroformatRenderer object.
func durationFromMicroformat(raw string, _ *goquery.Document) int {
	_, after, ok := strings.Cut(raw, `"playerMicroformatRenderer":`)
	if !ok {
		return 0
	}

	_, after, ok = strings.Cut(after, `"lengthSeconds":"`)
	if !ok {
		return 0
	}

	return leadingInt(after)
}

// durationFromMetaTag parses the itemprop duration meta tag, which uses
// ISO 8601 notation like PT4M33S.
func durationFromMetaTag(_ string, doc *goquery.Document) int {
	value, ok := doc.Find(`meta[itemprop="duration"]`).Attr("content")
	if !ok {
		return 0
	}

	return ParseDuration(value)
}

// durationFromLinkedData parses the duration field of the ld+json block.
func durationFromLinkedData(_ string, doc *goquery.Document) int {
	duration := 0
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var block ldVideo
		if err := json.Unmarshal([]byte(s.Text()), &block); err != nil {
			var blocks []ldVideo
			if err := json.Unmarshal([]byte(s.Text()), &blocks); err != nil || len(blocks) == 0 {
				return true
			}
			block = blocks[0]
		}

		if block.Duration == "" {
			return true
		}

		duration = ParseDuration(block.Duration)
		return false
	})

	return duration
}

// ParseDuration converts an ISO 8601 duration like "PT1H2M3S" into
// seconds. Each component is optional. Anything malformed contributes
// zero rather than an error.
func ParseDuration(value string) int {
	if !strings.HasPrefix(value, "PT") {
		return 0
	}
	value = value[2:]

	total := 0
	if before, after, ok := strings.Cut(value, "H"); ok {
		total += atoi(before) * 3600
		value = after
	}
	if before, after, ok := strings.Cut(value, "M"); ok {
		total += atoi(before) * 60
		value = after
	}
	if before, _, ok := strings.Cut(value, "S"); ok {
		total += atoi(before)
	}

	return total
}

type ldVideo struct {
	UploadDate           string `json:"uploadDate"`
	Duration             string `json:"duration"`
	InteractionStatistic []struct {
		InteractionType struct {
			Type string `json:"@type"`
		} `json:"interactionType"`
		UserInteractionCount any `json:"userInteractionCount"`
	} `json:"interactionStatistic"`
}

// linkedData pulls the upload date and view count out of the first
// ld+json block that carries them.
func linkedData(doc *goquery.Document) (uploadDate string, viewCount int) {
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var block ldVideo
		if err := json.Unmarshal([]byte(s.Text()), &block); err != nil {
			var blocks []ldVideo
			if err := json.Unmarshal([]byte(s.Text()), &blocks); err != nil || len(blocks) == 0 {
				return true
			}
			block = blocks[0]
		}

		if block.UploadDate == "" && len(block.InteractionStatistic) == 0 {
			return true
		}

		uploadDate = block.UploadDate
		for _, stat := range block.InteractionStatistic {
			if stat.InteractionType.Type != "WatchAction" {
				continue
			}

			switch count := stat.UserInteractionCount.(type) {
			case float64:
				viewCount = int(count)
			case string:
				viewCount = atoi(count)
			}
		}

		return false
	})

	return uploadDate, viewCount
}

// microformatField reads one string field out of the embedded
// playerMicroformatRenderer object, decoding json escapes.
func microformatField(raw string, field string) (string, bool) {
	_, after, ok := strings.Cut(raw, `"playerMicroformatRenderer":`)
	if !ok {
		return "", false
	}

	_, after, ok = strings.Cut(after, `"`+field+`":`)
	if !ok {
		return "", false
	}

	after = strings.TrimSpace(after)
	if !strings.HasPrefix(after, `"`) {
		return "", false
	}

	var value string
	dec := json.NewDecoder(strings.NewReader(after))
	if err := dec.Decode(&value); err != nil {
		return "", false
	}

	return value, true
}

func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	return atoi(s[:end])
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}
