package services

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gosimple/slug"

	"shopify-product-service/internal/models"
)

const excerptLength = 160

// ProductSummary is a short human readable view of a product preview
type ProductSummary struct {
	Handle       string `json:"handle"`
	Excerpt      string `json:"excerpt"`
	VariantCount int    `json:"variantCount"`
	OptionName   string `json:"optionName"`
}

// Summarize derives the handle, description excerpt and option info of p.
func Summarize(p *models.Product) ProductSummary {
	summary := ProductSummary{
		Handle:       slug.Make(p.Title),
		Excerpt:      descriptionExcerpt(p.DescriptionHTML),
		VariantCount: len(p.Variants),
	}
	if len(p.Variants) > 0 && len(p.Variants[0].OptionValues) > 0 {
		summary.OptionName = p.Variants[0].OptionValues[0].OptionName
	}
	return summary
}

func descriptionExcerpt(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if utf8.RuneCountInString(text) <= excerptLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:excerptLength])) + "..."
}
