package gemini

import (
	"fmt"
	"strings"

	"newsfeed/internal/domain/model"
)

func buildPrompt(req model.FeedRequest) string {
	language := req.Locale.LanguageName()
	if language == "" {
		language = model.LocaleEnglish.LanguageName()
	}

	var builder strings.Builder
	builder.WriteString("Act as a world-class news editor for \"Al Hind News\".\n")
	fmt.Fprintf(&builder, "Fetch the latest top news headlines and summaries for the category %q", string(req.Category))
	if len(req.Sources) > 0 {
		fmt.Fprintf(&builder, " specifically from these sources: %s", strings.Join(req.Sources, ", "))
	}
	builder.WriteString(".\n\n")
	builder.WriteString("Format the output as a list of news articles.\n")
	builder.WriteString("For each article, provide:\n")
	fmt.Fprintf(&builder, "- title (in %s)\n", language)
	fmt.Fprintf(&builder, "- summary (a 2-3 sentence overview in %s)\n", language)
	builder.WriteString("- source name\n")
	builder.WriteString("- category\n")
	builder.WriteString("- approximate timestamp\n\n")
	builder.WriteString("Ensure the tone is professional and neutral. ")
	builder.WriteString("If the news is from India or global events affecting the Middle East/Asia, prioritize those.\n")
	builder.WriteString("Return only the JSON object, without markdown or additional text.")
	return builder.String()
}
