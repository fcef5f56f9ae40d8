package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Size is the garment size chosen for a cart line.
type Size string

const (
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"

	DefaultSize = SizeM
)

func (s Size) Valid() bool {
	switch s {
	case SizeS, SizeM, SizeL, SizeXL:
		return true
	}
	return false
}

func (s Size) String() string {
	return string(s)
}

// CartLine is one product/options/quantity combination in the cart.
// Price, Name and Image are captured when the line is first added.
type CartLine struct {
	ProductID int64           `json:"id"`
	Quantity  int             `json:"qty"`
	Color     string          `json:"color"`
	Size      Size            `json:"size"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
}

// Key identifies the (product, color, size) combination of a line.
func (l CartLine) Key() string {
	return fmt.Sprintf("%d/%s/%s", l.ProductID, l.Color, l.Size)
}
