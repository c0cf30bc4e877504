package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"newsfeed/internal/domain/model"
	"newsfeed/internal/domain/ports"
)

func TestParseRecordsStripsFencesAndMarkup(t *testing.T) {
	raw := "```json\n" + `{"articles": [{"title": "<b>Budget</b> passes", "summary": "Lawmakers <i>approved</i> it.<br>More later.", "source": " BBC ", "category": "Politics"}]}` + "\n```"

	records, err := parseRecords(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Budget passes", records[0].Title)
	require.Equal(t, "Lawmakers approved it. More later.", records[0].Summary)
	require.Equal(t, "BBC", records[0].Source)
	require.Empty(t, records[0].Timestamp)
}

func TestParseRecordsErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: "   "},
		{name: "not json", raw: "here are your headlines"},
		{name: "array instead of object", raw: `[{"title": "t"}]`},
		{name: "missing container", raw: `{}`},
		{name: "blank title", raw: `{"articles": [{"title": " ", "summary": "s", "source": "BBC", "category": "World"}]}`},
		{name: "missing category", raw: `{"articles": [{"title": "t", "summary": "s", "source": "BBC"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRecords(tt.raw)
			require.ErrorIs(t, err, ports.ErrMalformedResponse)
		})
	}
}

func TestResolveURLPrefersGroundingSupport(t *testing.T) {
	resp := &model.ProviderResponse{
		Chunks: []model.GroundingChunk{
			{Web: &model.Citation{URI: "https://bbc.com/first"}},
			{Web: &model.Citation{URI: "https://aljazeera.com/second"}},
		},
		Supports: []model.GroundingSupport{
			{Text: "Ceasefire talks resume", ChunkIndices: []int{7, 1}},
		},
	}
	records := []articleRecord{
		{Title: "Ceasefire talks resume in Doha", Summary: "s", Source: "Al Jazeera", Category: "World"},
		{Title: "Markets rally", Summary: "s", Source: "BBC", Category: "Business"},
	}

	result := buildResult("abc", records, resp, "https://fallback.test")

	require.Equal(t, "https://aljazeera.com/second", result.Articles[0].URL)
	require.Equal(t, "https://aljazeera.com/second", result.Articles[1].URL)
	require.Equal(t, "news-abc-0", result.Articles[0].ID)
	require.Equal(t, "news-abc-1", result.Articles[1].ID)
	require.Len(t, result.Citations, 2)
}

func TestResolveURLIgnoresOutOfRangeIndex(t *testing.T) {
	resp := &model.ProviderResponse{
		Chunks: []model.GroundingChunk{{Web: &model.Citation{URI: "https://bbc.com/only"}}},
	}

	require.Equal(t, "https://bbc.com/only", resolveURL(0, 1, nil, resp, "https://fallback.test"))
	require.Equal(t, "https://fallback.test", resolveURL(4, 1, nil, resp, "https://fallback.test"))
	require.Equal(t, "https://fallback.test", resolveURL(-1, 1, nil, resp, "https://fallback.test"))
}

func TestBuildResultSupportsDoNotOverrideFallback(t *testing.T) {
	resp := &model.ProviderResponse{
		Chunks: []model.GroundingChunk{{Web: &model.Citation{URI: "https://bbc.com/only"}}},
		Supports: []model.GroundingSupport{
			{Text: "a", ChunkIndices: []int{0}},
			{Text: "Parliament approved the annual budget", ChunkIndices: []int{0}},
		},
	}
	records := []articleRecord{
		{Title: "Budget vote", Summary: "Parliament approved the annual budget.", Source: "BBC", Category: "Politics"},
		{Title: "A storm hits the coast", Summary: "Parliament approved the annual budget as a storm arrived.", Source: "BBC", Category: "World"},
		{Title: "Markets rally", Summary: "Stocks gained a lot.", Source: "BBC", Category: "Business"},
	}

	result := buildResult("abc", records, resp, "https://fallback.test")

	require.Equal(t, "https://bbc.com/only", result.Articles[0].URL)
	require.Equal(t, "https://fallback.test", result.Articles[1].URL)
	require.Equal(t, "https://fallback.test", result.Articles[2].URL)
}

func TestSupportedURLsRequiresLongUniqueSegment(t *testing.T) {
	resp := &model.ProviderResponse{
		Chunks: []model.GroundingChunk{
			{Web: &model.Citation{URI: "https://bbc.com/first"}},
			{Web: &model.Citation{URI: "https://aljazeera.com/second"}},
			{Web: &model.Citation{URI: "https://nytimes.com/third"}},
		},
		Supports: []model.GroundingSupport{
			{Text: "talks", ChunkIndices: []int{2}},
			{Text: "the central bank held rates", ChunkIndices: []int{2}},
			{Text: "Ceasefire talks resume in Doha", ChunkIndices: []int{2}},
		},
	}
	records := []articleRecord{
		{Title: "Rates steady", Summary: "As expected the central bank held rates.", Source: "BBC", Category: "Business"},
		{Title: "Ceasefire talks resume in Doha", Summary: "Mediators met again. Meanwhile the central bank held rates.", Source: "Al Jazeera", Category: "World"},
	}

	supported := supportedURLs(records, resp)

	require.Equal(t, map[int]string{1: "https://nytimes.com/third"}, supported)

	result := buildResult("abc", records, resp, "https://fallback.test")
	require.Equal(t, "https://bbc.com/first", result.Articles[0].URL)
	require.Equal(t, "https://nytimes.com/third", result.Articles[1].URL)
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "  plain text ", want: "plain text"},
		{name: "entity", input: "Tom &amp; Jerry", want: "Tom & Jerry"},
		{name: "script dropped", input: "safe<script>alert(1)</script> text", want: "safe text"},
		{name: "list", input: "<ul><li>a</li><li>b</li></ul>", want: "a b"},
		{name: "arabic", input: "<p>أخبار عاجلة</p>", want: "أخبار عاجلة"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, htmlToText(tt.input))
		})
	}
}
