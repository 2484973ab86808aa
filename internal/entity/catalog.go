package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	Name      string
	BasePrice decimal.Decimal
}

type Addon struct {
	Name       string
	ExtraPrice decimal.Decimal
}

// Catalog is the fixed stall menu. Indexes are 0-based; the terminal
// surface renders them 1-based.
type Catalog struct {
	Items  []MenuItem
	Addons []Addon
}

func DefaultCatalog() *Catalog {
	return &Catalog{
		Items: []MenuItem{
			{Name: "Tapsilog", BasePrice: decimal.RequireFromString("80.00")},
			{Name: "Tosilog", BasePrice: decimal.RequireFromString("80.00")},
			{Name: "Spamsilog", BasePrice: decimal.RequireFromString("80.00")},
			{Name: "Hungariansilog", BasePrice: decimal.RequireFromString("95.00")},
		},
		Addons: []Addon{
			{Name: "Rice", ExtraPrice: decimal.RequireFromString("10.00")},
			{Name: "Half Rice", ExtraPrice: decimal.RequireFromString("7.00")},
			{Name: "Java Rice", ExtraPrice: decimal.RequireFromString("12.00")},
			{Name: "None", ExtraPrice: decimal.Zero},
		},
	}
}

func (c *Catalog) Item(idx int) (MenuItem, error) {
	if idx < 0 || idx >= len(c.Items) {
		return MenuItem{}, fmt.Errorf("%w: item index %d", ErrValidation, idx)
	}
	return c.Items[idx], nil
}

func (c *Catalog) Addon(idx int) (Addon, error) {
	if idx < 0 || idx >= len(c.Addons) {
		return Addon{}, fmt.Errorf("%w: addon index %d", ErrValidation, idx)
	}
	return c.Addons[idx], nil
}
