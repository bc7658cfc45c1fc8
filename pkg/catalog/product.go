package catalog

import "math"

// Product is a single marketplace listing.
type Product struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Price        float64 `json:"price" yaml:"price"`
	OldPrice     float64 `json:"old_price,omitempty" yaml:"old_price,omitempty"`
	Image        string  `json:"image" yaml:"image"`
	Category     string  `json:"category" yaml:"category"`
	Rating       float64 `json:"rating" yaml:"rating"`
	ReviewsCount int     `json:"reviews_count" yaml:"reviews_count"`
	VendorID     string  `json:"vendor_id" yaml:"vendor_id"`
	VendorName   string  `json:"vendor_name" yaml:"vendor_name"`
	Description  string  `json:"description" yaml:"description"`
	FlashSale    bool    `json:"flash_sale,omitempty" yaml:"flash_sale,omitempty"`
}

// Category is a browsable catalog section.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon" yaml:"icon"`
}

// Discounted reports whether the product carries a strike-through price.
func (p Product) Discounted() bool {
	return p.OldPrice > p.Price && p.OldPrice > 0
}

// DiscountPercent returns the rounded percentage saved against the old
// price, e.g. price 12499 with old price 14000 yields 11. Products
// without a valid old price return 0.
func (p Product) DiscountPercent() int {
	if !p.Discounted() {
		return 0
	}
	return int(math.Round((p.OldPrice - p.Price) / p.OldPrice * 100))
}
