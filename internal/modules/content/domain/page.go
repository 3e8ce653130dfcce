package domain

import "time"

// Page is an SEO content page: metadata plus a rendered body the frontend
// drops straight into the template.
type Page struct {
	ID           int64     `db:"id" json:"id"`
	Slug         string    `db:"slug" json:"slug"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	HeroImageURL string    `db:"hero_image_url" json:"hero_image_url,omitempty"`
	Body         string    `db:"body" json:"body"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ConfigEntry is one row of the merchant configuration key/value table.
type ConfigEntry struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}
