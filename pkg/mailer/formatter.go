package mailer

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// AlertTypeUpper fires when the price rises above the threshold.
	AlertTypeUpper = "upper"
	// AlertTypeLower fires when the price drops below the threshold.
	AlertTypeLower = "lower"

	upperPriceColor = "#10b981"
	lowerPriceColor = "#ef4444"
)

// ErrUnsupportedAlertType is returned when a price alert carries a direction
// other than "upper" or "lower". It indicates a data-integrity bug upstream of
// the dispatcher, so nothing is sent.
var ErrUnsupportedAlertType = errors.New("unsupported alert type")

// PriceAlertData is the payload for a rendered price-threshold email. Prices
// arrive pre-formatted as display strings.
type PriceAlertData struct {
	Symbol         string
	Company        string
	AlertType      string
	AlertName      string
	CurrentPrice   string
	ThresholdPrice string
}

// defaultWelcomeIntro is used when the AI collaborator produces no text.
const DefaultWelcomeIntro = "Thanks for joining Signalist. You now have the tools to track markets, spot opportunities, and make smarter moves — all in one place. Here's what you can do right now:"

// BuildWelcomeEmail renders the onboarding email with a personalized intro.
func BuildWelcomeEmail(name, intro string) Message {
	if intro == "" {
		intro = DefaultWelcomeIntro
	}
	html := strings.ReplaceAll(welcomeEmailTemplate, "{{name}}", name)
	html = strings.ReplaceAll(html, "{{intro}}", intro)

	return Message{
		Subject: "Welcome to Signalist — your stock market toolkit is ready 📈",
		Text:    "Thanks for joining Signalist",
		HTML:    html,
	}
}

// BuildNewsSummaryEmail renders the daily digest email for the given date.
func BuildNewsSummaryEmail(date, newsContent string) Message {
	html := strings.ReplaceAll(newsSummaryEmailTemplate, "{{date}}", date)
	html = strings.ReplaceAll(html, "{{newsContent}}", newsContent)

	return Message{
		Subject: fmt.Sprintf("📈 Market News Summary Today - %s", date),
		Text:    "Today's market news summary from Signalist",
		HTML:    html,
	}
}

// BuildPriceAlertEmail renders a price-threshold email, branching on the alert
// direction.
func BuildPriceAlertEmail(data PriceAlertData) (Message, error) {
	alertName := data.AlertName
	if alertName == "" {
		alertName = fmt.Sprintf("%s Alert", data.Symbol)
	}

	var subject, color, alertMessage string
	switch data.AlertType {
	case AlertTypeUpper:
		subject = fmt.Sprintf("📈 %s: Price Above %s", alertName, data.ThresholdPrice)
		color = upperPriceColor
		alertMessage = fmt.Sprintf("Your %q was triggered - price exceeded your upper threshold of %s", alertName, data.ThresholdPrice)
	case AlertTypeLower:
		subject = fmt.Sprintf("📉 %s: Price Below %s", alertName, data.ThresholdPrice)
		color = lowerPriceColor
		alertMessage = fmt.Sprintf("Your %q was triggered - price dropped below your lower threshold of %s", alertName, data.ThresholdPrice)
	default:
		return Message{}, fmt.Errorf("%w: %s", ErrUnsupportedAlertType, data.AlertType)
	}

	replacer := strings.NewReplacer(
		"{{symbol}}", data.Symbol,
		"{{company}}", data.Company,
		"{{alertName}}", alertName,
		"{{currentPrice}}", data.CurrentPrice,
		"{{thresholdPrice}}", data.ThresholdPrice,
		"{{priceColor}}", color,
		"{{alertMessage}}", alertMessage,
		"{{timestamp}}", time.Now().UTC().Format("Jan 2, 2006 15:04 MST"),
	)

	return Message{
		Subject: subject,
		Text:    fmt.Sprintf("Your %s price alert has been triggered", data.Symbol),
		HTML:    replacer.Replace(priceAlertEmailTemplate),
	}, nil
}
