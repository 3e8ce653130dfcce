package domain

import (
	"github.com/shopspring/decimal"
)

// Wine is a sellable catalog row. PlatformProductID is nil until the wine
// has been published to the hosted commerce platform.
type Wine struct {
	ID                int64           `db:"id" json:"id"`
	Name              string          `db:"name" json:"name"`
	Slug              string          `db:"slug" json:"slug"`
	Producer          string          `db:"producer" json:"producer"`
	Region            string          `db:"region" json:"region"`
	Country           string          `db:"country" json:"country"`
	Varietal          string          `db:"varietal" json:"varietal"`
	Vintage           string          `db:"vintage" json:"vintage,omitempty"`
	WineType          string          `db:"wine_type" json:"type"`
	RetailPrice       decimal.Decimal `db:"retail_price" json:"retail_price"`
	BottleSize        string          `db:"bottle_size" json:"bottle_size"`
	TastingNotes      string          `db:"tasting_notes" json:"tasting_notes"`
	ImageURL          string          `db:"image_url" json:"image_url,omitempty"`
	Classification    string          `db:"classification" json:"classification,omitempty"`
	PlatformProductID *string         `db:"platform_product_id" json:"platform_product_id,omitempty"`
}

// PriceVariant is a purchasable size or packaging of a wine.
type PriceVariant struct {
	ID      int64           `db:"id" json:"id"`
	WineID  int64           `db:"wine_id" json:"wine_id"`
	Name    string          `db:"name" json:"name"`
	Price   decimal.Decimal `db:"price" json:"price"`
	InStock bool            `db:"in_stock" json:"in_stock"`
	SKU     string          `db:"sku" json:"sku"`
	Taxable bool            `db:"taxable" json:"taxable"`
}
