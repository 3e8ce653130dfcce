package sync

import (
	"testing"

	"github.com/vintnersrow/storefront/internal/modules/catalog/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testWine() domain.Wine {
	return domain.Wine{
		ID:             1,
		Name:           "Blanc de Blancs",
		Slug:           "blanc-de-blancs",
		Producer:       "Gusbourne",
		Region:         "Kent",
		Country:        "England",
		Varietal:       "Chardonnay",
		Vintage:        "2019",
		WineType:       "Sparkling",
		RetailPrice:    decimal.NewFromFloat(59.5),
		BottleSize:     "750ml",
		TastingNotes:   "Crisp orchard fruit with a fine mousse.",
		ImageURL:       "https://cdn.example.com/blanc-de-blancs.jpg",
		Classification: "English Quality Sparkling Wine",
	}
}

func Test_ProductTitle_Prefixes_Vintage_When_Present(t *testing.T) {
	// Arrange
	wine := testWine()

	// Act
	title := ProductTitle(wine)

	// Assert
	require.Equal(t, "2019 Blanc de Blancs", title)
}

func Test_ProductTitle_Uses_Bare_Name_When_Vintage_Missing(t *testing.T) {
	// Arrange
	wine := testWine()
	wine.Vintage = ""

	// Act
	title := ProductTitle(wine)

	// Assert
	require.Equal(t, "Blanc de Blancs", title)
}

func Test_ProductTitle_Treats_NV_As_Missing_Vintage(t *testing.T) {
	// Arrange
	wine := testWine()
	wine.Vintage = "NV"

	// Act
	title := ProductTitle(wine)

	// Assert
	require.Equal(t, "Blanc de Blancs", title)
}

func Test_ProductTags_Is_Deterministic_And_Idempotent(t *testing.T) {
	// Arrange
	wine := testWine()

	// Act
	first := ProductTags(wine)
	second := ProductTags(wine)

	// Assert
	require.Equal(t, first, second)
	require.Equal(t, []string{
		"Kent",
		"England",
		"Chardonnay",
		"2019",
		"Sparkling",
		"English Quality Sparkling Wine",
		"English Wine",
		"British",
	}, first)
}

func Test_ProductTags_Skips_Blank_Attributes(t *testing.T) {
	// Arrange
	wine := testWine()
	wine.Country = "France"
	wine.Region = ""
	wine.Classification = "  "

	// Act
	tags := ProductTags(wine)

	// Assert
	require.Equal(t, []string{"France", "Chardonnay", "2019", "Sparkling"}, tags)
}

func Test_ProductTags_Removes_Duplicates(t *testing.T) {
	// Arrange
	wine := testWine()
	wine.Country = "France"
	wine.Region = "Champagne"
	wine.Classification = "Champagne"

	// Act
	tags := ProductTags(wine)

	// Assert
	require.Equal(t, []string{"Champagne", "France", "Chardonnay", "2019", "Sparkling"}, tags)
}

func Test_ProductTags_Adds_English_Pair_For_UK_Spellings(t *testing.T) {
	for _, country := range []string{"England", "United Kingdom", "UK", "uk"} {
		// Arrange
		wine := testWine()
		wine.Country = country

		// Act
		tags := ProductTags(wine)

		// Assert
		require.Contains(t, tags, "English Wine", "country: %s", country)
		require.Contains(t, tags, "British", "country: %s", country)
	}
}

func Test_ProductTags_Omits_English_Pair_For_Other_Countries(t *testing.T) {
	// Arrange
	wine := testWine()
	wine.Country = "France"

	// Act
	tags := ProductTags(wine)

	// Assert
	require.NotContains(t, tags, "English Wine")
	require.NotContains(t, tags, "British")
}

func Test_ProductImage_Accepts_Public_HTTP_URLs(t *testing.T) {
	for _, rawURL := range []string{
		"https://cdn.example.com/wine.jpg",
		"http://images.example.com/wine.png",
	} {
		// Act
		image := ProductImage(rawURL)

		// Assert
		require.NotNil(t, image, "url: %s", rawURL)
		require.Equal(t, rawURL, image.Src)
	}
}

func Test_ProductImage_Rejects_Non_HTTP_And_Loopback_URLs(t *testing.T) {
	for _, rawURL := range []string{
		"",
		"ftp://cdn.example.com/wine.jpg",
		"file:///tmp/wine.jpg",
		"not a url at all ://",
		"/images/wine.jpg",
		"http://localhost:3000/wine.jpg",
		"https://LOCALHOST/wine.jpg",
		"http://127.0.0.1/wine.jpg",
		"http://[::1]/wine.jpg",
	} {
		// Act
		image := ProductImage(rawURL)

		// Assert
		require.Nil(t, image, "url: %s", rawURL)
	}
}

func Test_BodyHTML_Contains_Notes_Paragraph_And_Attribute_List(t *testing.T) {
	// Arrange
	wine := testWine()

	// Act
	body := BodyHTML(wine)

	// Assert
	require.Contains(t, body, "<p>Crisp orchard fruit with a fine mousse.</p>")
	require.Contains(t, body, "<li><strong>Producer:</strong> Gusbourne</li>")
	require.Contains(t, body, "<li><strong>Region:</strong> Kent</li>")
	require.Contains(t, body, "<li><strong>Bottle Size:</strong> 750ml</li>")
}

func Test_BodyHTML_Omits_Paragraph_And_Blank_Attributes(t *testing.T) {
	// Arrange
	wine := testWine()
	wine.TastingNotes = ""
	wine.Classification = ""

	// Act
	body := BodyHTML(wine)

	// Assert
	require.NotContains(t, body, "<p>")
	require.NotContains(t, body, "Classification")
}

func Test_BodyHTML_Escapes_Attribute_Values(t *testing.T) {
	// Arrange
	wine := testWine()
	wine.TastingNotes = "Notes with <script> & ampersand"

	// Act
	body := BodyHTML(wine)

	// Assert
	require.Contains(t, body, "&lt;script&gt;")
	require.NotContains(t, body, "<script>")
}

func Test_BuildProduct_Maps_Variants_With_Two_Decimal_Prices(t *testing.T) {
	// Arrange
	wine := testWine()
	variants := []domain.PriceVariant{
		{ID: 1, WineID: 1, Name: "Bottle", Price: decimal.NewFromFloat(59.5), InStock: true, SKU: "BDB-750", Taxable: true},
		{ID: 2, WineID: 1, Name: "Magnum", Price: decimal.NewFromInt(125), InStock: false, SKU: "BDB-1500", Taxable: true},
	}

	// Act
	product := BuildProduct(wine, variants, "Vintners Row")

	// Assert
	require.Equal(t, "Vintners Row", product.Vendor)
	require.Equal(t, "Sparkling", product.ProductType)
	require.Len(t, product.Variants, 2)
	require.Equal(t, "59.50", product.Variants[0].Price)
	require.Equal(t, "125.00", product.Variants[1].Price)
	require.Equal(t, "BDB-750", product.Variants[0].SKU)
	require.True(t, product.Variants[0].Available)
	require.False(t, product.Variants[1].Available)
}

func Test_BuildProduct_Falls_Back_To_Default_Variant_From_Retail_Price(t *testing.T) {
	// Arrange
	wine := testWine()

	// Act
	product := BuildProduct(wine, nil, "Vintners Row")

	// Assert
	require.Len(t, product.Variants, 1)
	require.Equal(t, "750ml", product.Variants[0].Title)
	require.Equal(t, "59.50", product.Variants[0].Price)
	require.Equal(t, "blanc-de-blancs-default", product.Variants[0].SKU)
	require.True(t, product.Variants[0].Available)
}
