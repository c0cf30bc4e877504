package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"newsfeed/internal/domain/model"
	"newsfeed/internal/domain/ports"
)

const imageURLTemplate = "https://picsum.photos/seed/%s/800/450"

type articleEnvelope struct {
	Articles *[]articleRecord `json:"articles"`
}

type articleRecord struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Source    string `json:"source"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
}

// parseRecords decodes the structured payload. A missing container or a
// record without a required field fails the whole response.
func parseRecords(raw string) ([]articleRecord, error) {
	raw = strings.TrimSpace(raw)
	// Gemini may wrap JSON in markdown fences; strip them if present.
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```JSON")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	if raw == "" {
		return nil, fmt.Errorf("%w: empty payload", ports.ErrMalformedResponse)
	}

	var envelope articleEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrMalformedResponse, err)
	}

	if envelope.Articles == nil {
		return nil, fmt.Errorf("%w: missing articles field", ports.ErrMalformedResponse)
	}

	records := *envelope.Articles
	for i := range records {
		rec := &records[i]
		rec.Title = htmlToText(rec.Title)
		rec.Summary = htmlToText(rec.Summary)
		rec.Source = strings.TrimSpace(rec.Source)
		rec.Category = strings.TrimSpace(rec.Category)
		rec.Timestamp = strings.TrimSpace(rec.Timestamp)

		if missing := rec.missingField(); missing != "" {
			return nil, fmt.Errorf("%w: article %d has no %s", ports.ErrMalformedResponse, i, missing)
		}
	}

	return records, nil
}

func (r articleRecord) missingField() string {
	switch {
	case r.Title == "":
		return "title"
	case r.Summary == "":
		return "summary"
	case r.Source == "":
		return "source"
	case r.Category == "":
		return "category"
	default:
		return ""
	}
}

// minSupportSegment is the shortest grounding segment, in runes, that may
// pin an article to a citation. Shorter segments match too loosely.
const minSupportSegment = 20

// buildResult turns validated records into articles and collects the web
// citations. With N web citations, article i < N takes the URL of a grounding
// support that backs only that article, else the chunk at index i. Articles
// from index N on always get fallbackURL.
func buildResult(fetchID string, records []articleRecord, resp *model.ProviderResponse, fallbackURL string) model.FetchResult {
	citations := make([]model.Citation, 0, len(resp.Chunks))
	for _, chunk := range resp.Chunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		citations = append(citations, *chunk.Web)
	}

	supported := supportedURLs(records, resp)

	articles := make([]model.Article, 0, len(records))
	for i, rec := range records {
		id := fmt.Sprintf("news-%s-%d", fetchID, i)
		articles = append(articles, model.Article{
			ID:        id,
			Title:     rec.Title,
			Summary:   rec.Summary,
			Source:    rec.Source,
			URL:       resolveURL(i, len(citations), supported, resp, fallbackURL),
			Category:  model.Category(rec.Category),
			Timestamp: rec.Timestamp,
			ImageURL:  fmt.Sprintf(imageURLTemplate, id),
		})
	}

	return model.FetchResult{Articles: articles, Citations: citations}
}

// supportedURLs maps article indices to the web URI of a grounding support
// whose segment appears in exactly one article. The first support wins.
func supportedURLs(records []articleRecord, resp *model.ProviderResponse) map[int]string {
	out := make(map[int]string)
	for _, support := range resp.Supports {
		segment := strings.TrimSpace(support.Text)
		if utf8.RuneCountInString(segment) < minSupportSegment {
			continue
		}

		match := -1
		for i, rec := range records {
			if !strings.Contains(rec.Title, segment) && !strings.Contains(rec.Summary, segment) {
				continue
			}
			if match >= 0 {
				match = -2
				break
			}
			match = i
		}
		if match < 0 {
			continue
		}
		if _, taken := out[match]; taken {
			continue
		}

		for _, idx := range support.ChunkIndices {
			if uri, ok := webURI(resp.Chunks, idx); ok {
				out[match] = uri
				break
			}
		}
	}
	return out
}

func resolveURL(index, citationCount int, supported map[int]string, resp *model.ProviderResponse, fallbackURL string) string {
	if index < 0 || index >= citationCount {
		return fallbackURL
	}
	if uri, ok := supported[index]; ok {
		return uri
	}
	if uri, ok := webURI(resp.Chunks, index); ok {
		return uri
	}
	return fallbackURL
}

func webURI(chunks []model.GroundingChunk, idx int) (string, bool) {
	if idx < 0 || idx >= len(chunks) {
		return "", false
	}
	web := chunks[idx].Web
	if web == nil || web.URI == "" {
		return "", false
	}
	return web.URI, true
}

// htmlToText flattens any markup the model emitted and collapses whitespace.
func htmlToText(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || !strings.ContainsAny(input, "<&") {
		return input
	}

	node, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return input
	}

	var builder strings.Builder
	extractText(node, &builder)
	return strings.Join(strings.Fields(builder.String()), " ")
}

func extractText(node *html.Node, builder *strings.Builder) {
	switch node.Type {
	case html.TextNode:
		builder.WriteString(node.Data)
	case html.ElementNode:
		if node.Data == "script" || node.Data == "style" {
			return
		}
		if node.Data == "br" || node.Data == "p" || node.Data == "li" {
			builder.WriteRune(' ')
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		extractText(child, builder)
	}
}
