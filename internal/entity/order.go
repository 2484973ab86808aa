package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrFormat              = errors.New("invalid number format")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrEmptyOrder          = errors.New("order is empty")
	ErrPersistence         = errors.New("persistence failure")
)

// LineItem is one entry of an in-progress order. LineTotal is priced at
// add time; later catalog changes never reprice an existing line.
type LineItem struct {
	ItemName  string
	AddonName string
	Quantity  int
	LineTotal decimal.Decimal
}

// UnitPrice recovers the per-unit price of the line. Exact, because
// LineTotal was produced as unit price times quantity.
func (li LineItem) UnitPrice() decimal.Decimal {
	return li.LineTotal.Div(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is the mutable line-item sequence for one ordering session.
// Insertion order is preserved; positions are 0-based.
type Order struct {
	lines []LineItem
}

func NewOrder() *Order {
	return &Order{}
}

// AddLine validates the catalog indexes and quantity, appends a line
// priced at (base + extra) * qty and returns its position.
func (o *Order) AddLine(cat *Catalog, itemIdx, addonIdx, qty int) (int, error) {
	item, err := cat.Item(itemIdx)
	if err != nil {
		return 0, err
	}
	addon, err := cat.Addon(addonIdx)
	if err != nil {
		return 0, err
	}
	if qty < 1 {
		return 0, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	o.lines = append(o.lines, LineItem{
		ItemName:  item.Name,
		AddonName: addon.Name,
		Quantity:  qty,
		LineTotal: item.BasePrice.Add(addon.ExtraPrice).Mul(decimal.NewFromInt(int64(qty))),
	})
	return len(o.lines) - 1, nil
}

// UpdateQuantity changes the quantity of the line at pos, keeping its
// unit price.
func (o *Order) UpdateQuantity(pos, qty int) error {
	if pos < 0 || pos >= len(o.lines) {
		return fmt.Errorf("%w: position %d", ErrNotFound, pos)
	}
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	unit := o.lines[pos].UnitPrice()
	o.lines[pos].Quantity = qty
	o.lines[pos].LineTotal = unit.Mul(decimal.NewFromInt(int64(qty)))
	return nil
}

// RemoveLine deletes the line at pos; later lines shift down by one.
func (o *Order) RemoveLine(pos int) error {
	if pos < 0 || pos >= len(o.lines) {
		return fmt.Errorf("%w: position %d", ErrNotFound, pos)
	}
	o.lines = append(o.lines[:pos], o.lines[pos+1:]...)
	return nil
}

func (o *Order) Line(pos int) (LineItem, error) {
	if pos < 0 || pos >= len(o.lines) {
		return LineItem{}, fmt.Errorf("%w: position %d", ErrNotFound, pos)
	}
	return o.lines[pos], nil
}

// Lines returns a snapshot copy of the current line items.
func (o *Order) Lines() []LineItem {
	out := make([]LineItem, len(o.lines))
	copy(out, o.lines)
	return out
}

func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range o.lines {
		total = total.Add(li.LineTotal)
	}
	return total
}

func (o *Order) Clear() {
	o.lines = o.lines[:0]
}

func (o *Order) IsEmpty() bool {
	return len(o.lines) == 0
}

func (o *Order) Len() int {
	return len(o.lines)
}
