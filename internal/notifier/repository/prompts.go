package repository

import (
	"encoding/json"
	"strings"

	"go-signalist/internal/marketdata"
)

const personalizedWelcomePromptTemplate = `You are writing the opening paragraph of a welcome email for Signalist, a stock
market watchlist and alert app. Using the investor profile below, write one short,
friendly paragraph (2-3 sentences, plain text, no markdown, no greeting line) that
welcomes the user and connects the app's watchlist, alert and daily digest features
to their stated goals.

Investor profile:
{{userProfile}}

Answer with the paragraph only.`

const newsSummaryPromptTemplate = `You are writing the body of a daily market digest email for Signalist. Summarize
the news articles below into clean, minimal HTML (use only <h3>, <p>, <ul>, <li>
and <a> tags, no inline styles, no document skeleton). Group related stories,
keep it under 300 words, and link each story's headline to its url. If the list
is empty, reply with a single short paragraph saying there is no market news today.

News articles (JSON):
{{newsData}}

Answer with the HTML fragment only.`

// BuildWelcomePrompt renders the personalized-welcome prompt for a profile
// summary.
func BuildWelcomePrompt(userProfile string) string {
	return strings.Replace(personalizedWelcomePromptTemplate, "{{userProfile}}", userProfile, 1)
}

// BuildNewsSummaryPrompt renders the digest-summarization prompt for a set of
// articles.
func BuildNewsSummaryPrompt(articles []marketdata.NewsArticle) string {
	newsData, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		newsData = []byte("[]")
	}
	return strings.Replace(newsSummaryPromptTemplate, "{{newsData}}", string(newsData), 1)
}
