package sync

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/vintnersrow/storefront/internal/modules/catalog/domain"
	"github.com/vintnersrow/storefront/internal/modules/core"
	"github.com/vintnersrow/storefront/internal/platform"
)

// BuildProduct maps a catalog wine and its price variants onto the
// platform's product schema. Pure - same input, same payload.
func BuildProduct(wine domain.Wine, variants []domain.PriceVariant, vendor string) platform.Product {
	return platform.Product{
		Title:       ProductTitle(wine),
		BodyHTML:    BodyHTML(wine),
		Vendor:      vendor,
		ProductType: wine.WineType,
		Tags:        ProductTags(wine),
		Variants:    mapVariants(wine, variants),
		Image:       ProductImage(wine.ImageURL),
	}
}

// ProductTitle prefixes the wine name with its vintage when one exists.
// Non-vintage bottlings ("NV" or blank) use the bare name.
func ProductTitle(wine domain.Wine) string {
	if hasVintage(wine) {
		return wine.Vintage + " " + wine.Name
	}

	return wine.Name
}

// ProductTags derives the platform tag list from the wine's attributes,
// in a fixed order with blanks skipped and duplicates removed. English
// wines get an extra pair of tags the storefront's collections key on.
func ProductTags(wine domain.Wine) []string {
	candidates := []string{
		wine.Region,
		wine.Country,
		wine.Varietal,
	}

	if hasVintage(wine) {
		candidates = append(candidates, wine.Vintage)
	}

	candidates = append(candidates, wine.WineType, wine.Classification)

	if isEnglish(wine.Country) {
		candidates = append(candidates, "English Wine", "British")
	}

	seen := make(map[string]struct{}, len(candidates))
	tags := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		tag := strings.TrimSpace(candidate)
		if tag == "" {
			continue
		}

		if _, dup := seen[tag]; dup {
			continue
		}

		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}

// BodyHTML assembles the product description: the tasting notes paragraph
// followed by a list of the wine's attributes. Values are HTML-escaped.
func BodyHTML(wine domain.Wine) string {
	var b strings.Builder

	if notes := strings.TrimSpace(wine.TastingNotes); notes != "" {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(notes))
		b.WriteString("</p>")
	}

	attributes := []struct {
		label string
		value string
	}{
		{"Producer", wine.Producer},
		{"Region", wine.Region},
		{"Country", wine.Country},
		{"Varietal", wine.Varietal},
		{"Vintage", wine.Vintage},
		{"Bottle Size", wine.BottleSize},
		{"Classification", wine.Classification},
	}

	b.WriteString("<ul>")
	for _, attribute := range attributes {
		value := strings.TrimSpace(attribute.value)
		if value == "" {
			continue
		}

		b.WriteString("<li><strong>")
		b.WriteString(attribute.label)
		b.WriteString(":</strong> ")
		b.WriteString(html.EscapeString(value))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")

	return b.String()
}

// ProductImage returns an image reference only for absolute http(s) URLs
// that do not point at the local machine. Development databases tend to
// carry localhost URLs the platform must never see.
func ProductImage(rawURL string) *platform.Image {
	if rawURL == "" {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil
	}

	switch strings.ToLower(u.Hostname()) {
	case "", "localhost", "127.0.0.1", "::1":
		return nil
	}

	return &platform.Image{Src: rawURL}
}

func mapVariants(wine domain.Wine, variants []domain.PriceVariant) []platform.Variant {
	if len(variants) == 0 {
		title := wine.BottleSize
		if title == "" {
			title = "Default"
		}

		return []platform.Variant{{
			Title:     title,
			Price:     wine.RetailPrice.StringFixed(2),
			SKU:       fmt.Sprintf("%s-default", wine.Slug),
			Available: true,
			Taxable:   true,
		}}
	}

	return core.Map(variants, func(variant domain.PriceVariant) platform.Variant {
		return platform.Variant{
			Title:     variant.Name,
			Price:     variant.Price.StringFixed(2),
			SKU:       variant.SKU,
			Available: variant.InStock,
			Taxable:   variant.Taxable,
		}
	})
}

func hasVintage(wine domain.Wine) bool {
	vintage := strings.TrimSpace(wine.Vintage)
	return vintage != "" && !strings.EqualFold(vintage, "NV")
}

func isEnglish(country string) bool {
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "england", "united kingdom", "uk":
		return true
	}
	return false
}
