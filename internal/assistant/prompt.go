package assistant

import (
	"fmt"
	"strings"

	"github.com/moneta-finance/moneta/internal/database"
	"github.com/samber/lo"
)

const (
	topicPreamble = "Only generative content related to Assistance in Financial, economy and money. " +
		"Deny the question if it's off topic from Financial. "
	outputTrailer = "Don't warn the user about AI Generated Content. Output in HTML body format"
)

// BuildPrompt assembles the single prompt string sent to the model.
// Asset details are only included when includeAssets is set.
func BuildPrompt(currency, userPrompt string, includeAssets bool, assets []database.FinancialAsset) string {
	var b strings.Builder
	b.WriteString(topicPreamble)
	fmt.Fprintf(&b, "Use %s ", currency)
	if includeAssets {
		b.WriteString("Only If I ask now: Asset Details:")
		b.WriteString(FormatAssets(assets))
		b.WriteString(" Prompt :")
	} else {
		b.WriteString(" Only If I ask now: ")
	}
	b.WriteString(userPrompt)
	b.WriteString(outputTrailer)
	return b.String()
}

// FormatAssets renders assets one per line.
func FormatAssets(assets []database.FinancialAsset) string {
	lines := lo.Map(assets, func(a database.FinancialAsset, _ int) string {
		return fmt.Sprintf("Asset Name: %s, Income: %s, Expenditure: %s", a.Name, a.Income.String(), a.Expenditure.String())
	})
	return strings.Join(lines, "\n")
}

// cleanResponse strips a surrounding markdown code fence, which models like to add around HTML.
func cleanResponse(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		// drop the language tag line, e.g. ```html
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
