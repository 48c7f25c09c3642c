package models

// ProductType identifies a ride tier. The set is closed; vehicles declare
// which tiers they can serve.
type ProductType string

const (
	ProductGo    ProductType = "go"
	ProductXL    ProductType = "xl"
	ProductShare ProductType = "share"
)

// Product carries the rate card for one tier. Pure value data; pricing
// policy lives in internal/pricing.
type Product struct {
	Type       ProductType `json:"type"`
	Name       string      `json:"name"`
	BaseRate   float64     `json:"base_rate"`
	PerKmRate  float64     `json:"per_km_rate"`
	PerMinRate float64     `json:"per_min_rate"`
}

var products = map[ProductType]Product{
	ProductGo:    {Type: ProductGo, Name: "Go", BaseRate: 50, PerKmRate: 10, PerMinRate: 2},
	ProductXL:    {Type: ProductXL, Name: "XL", BaseRate: 80, PerKmRate: 15, PerMinRate: 3},
	ProductShare: {Type: ProductShare, Name: "Share", BaseRate: 30, PerKmRate: 7, PerMinRate: 1.5},
}

// ProductByType returns the rate card for a tier, false for unknown tiers.
func ProductByType(t ProductType) (Product, bool) {
	p, ok := products[t]
	return p, ok
}

// Vehicle describes what a driver's car can serve. Immutable after creation.
type Vehicle struct {
	Model     string        `json:"model"`
	Plate     string        `json:"plate"`
	Supported []ProductType `json:"supported"`
}

func NewVehicle(model, plate string, supported ...ProductType) Vehicle {
	return Vehicle{Model: model, Plate: plate, Supported: supported}
}

// Supports reports whether the vehicle can serve the given tier.
func (v Vehicle) Supports(t ProductType) bool {
	for _, s := range v.Supported {
		if s == t {
			return true
		}
	}
	return false
}
