package platform

// Wire types for the hosted commerce platform's admin and storefront APIs.
// Prices travel as strings with two decimal places, the way the platform
// serializes money.

type Product struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	BodyHTML    string    `json:"body_html"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	Tags        []string  `json:"tags"`
	Variants    []Variant `json:"variants"`
	Image       *Image    `json:"image,omitempty"`
}

type Variant struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	SKU       string `json:"sku"`
	Available bool   `json:"available"`
	Taxable   bool   `json:"taxable"`
}

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

type Cart struct {
	ID       string     `json:"id"`
	Items    []CartItem `json:"items"`
	Subtotal string     `json:"subtotal"`
}

type CartItem struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

type CartItemInput struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type productEnvelope struct {
	Product Product `json:"product"`
}

type productListEnvelope struct {
	Products []Product `json:"products"`
}

type countEnvelope struct {
	Count int `json:"count"`
}

type cartEnvelope struct {
	Cart Cart `json:"cart"`
}

type cartItemEnvelope struct {
	Item CartItemInput `json:"item"`
}
