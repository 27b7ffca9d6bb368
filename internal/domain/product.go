package domain

import "time"

// Product is a handset offered in the catalogue.
//
// Every attribute except the ID is nullable: a full-replace update may clear
// any of them, so a nil pointer means "no value stored".
type Product struct {
	ID               int64     `json:"id"`
	Modele           *string   `json:"modele"`
	Marque           *string   `json:"marque"`
	Prix             *int      `json:"prix"`
	Description      *string   `json:"description"`
	Stock            *int      `json:"stock"`
	RAM              *int      `json:"ram"`
	CapaciteStockage *string   `json:"capaciteStockage"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// NewProduct creates a product stamped with the current time.
// The ID is assigned by the store on insert.
func NewProduct(attrs ProductAttributes) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{CreatedAt: now, UpdatedAt: now}
	p.Replace(attrs)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ProductAttributes carries the mutable attributes of a Product.
type ProductAttributes struct {
	Modele           *string
	Marque           *string
	Prix             *int
	Description      *string
	Stock            *int
	RAM              *int
	CapaciteStockage *string
}

// Replace overwrites every attribute with the given values, including nils.
// This is the full-replace semantics of PUT.
func (p *Product) Replace(attrs ProductAttributes) {
	p.Modele = attrs.Modele
	p.Marque = attrs.Marque
	p.Prix = attrs.Prix
	p.Description = attrs.Description
	p.Stock = attrs.Stock
	p.RAM = attrs.RAM
	p.CapaciteStockage = attrs.CapaciteStockage
	p.UpdatedAt = time.Now().UTC()
}

// Attributes returns a copy of the product's mutable attributes.
func (p *Product) Attributes() ProductAttributes {
	return ProductAttributes{
		Modele:           p.Modele,
		Marque:           p.Marque,
		Prix:             p.Prix,
		Description:      p.Description,
		Stock:            p.Stock,
		RAM:              p.RAM,
		CapaciteStockage: p.CapaciteStockage,
	}
}

// Validate checks that stored numeric attributes are not negative.
func (p *Product) Validate() error {
	checks := []struct {
		field string
		value *int
	}{
		{"prix", p.Prix},
		{"stock", p.Stock},
		{"ram", p.RAM},
	}
	for _, c := range checks {
		if c.value != nil && *c.value < 0 {
			return NewValidationError(c.field, "cannot be negative", ErrNegativeValue)
		}
	}
	return nil
}
