package model

import "strings"

// CategoryPrice is the price and display color of one seat category.
type CategoryPrice struct {
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Color    string  `json:"color,omitempty"`
}

// PriceProfile is a named set of category prices that can be applied to a layout.
type PriceProfile struct {
	Name       string          `json:"name" validate:"required"`
	Categories []CategoryPrice `json:"categories" validate:"dive"`
	IsBuiltIn  bool            `json:"-"`
}

// Lookup returns the entry for category, matched case-insensitively.
func (p PriceProfile) Lookup(category string) (CategoryPrice, bool) {
	for _, c := range p.Categories {
		if strings.EqualFold(c.Category, category) {
			return c, true
		}
	}
	return CategoryPrice{}, false
}

// Validate checks the profile fields.
func (p PriceProfile) Validate() error {
	return configValidator.Struct(p)
}

// BuiltInPriceProfiles returns the profiles shipped with the application.
func BuiltInPriceProfiles() []PriceProfile {
	return []PriceProfile{
		{
			Name: "Theatre",
			Categories: []CategoryPrice{
				{Category: "vip", Price: 120, Color: "#D4AF37"},
				{Category: "stalls", Price: 65, Color: "#4A90D9"},
				{Category: "balcony", Price: 40, Color: "#7FB77E"},
				{Category: DefaultSeatCategory, Price: 50},
			},
			IsBuiltIn: true,
		},
		{
			Name: "Flat rate",
			Categories: []CategoryPrice{
				{Category: DefaultSeatCategory, Price: 25},
			},
			IsBuiltIn: true,
		},
	}
}
