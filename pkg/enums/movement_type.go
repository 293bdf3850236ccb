package enums

import "fmt"

// MovementType classifies how a stock movement changes the on-hand quantity.
type MovementType string

const (
	MovementTypeStockIn       MovementType = "stock_in"
	MovementTypeSale          MovementType = "sale"
	MovementTypeManualRemoval MovementType = "manual_removal"
)

var validMovementTypes = []MovementType{
	MovementTypeStockIn,
	MovementTypeSale,
	MovementTypeManualRemoval,
}

// IsValid reports whether the value matches the canonical movement type enum.
func (t MovementType) IsValid() bool {
	for _, candidate := range validMovementTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsOutbound reports whether the movement removes stock from inventory.
func (t MovementType) IsOutbound() bool {
	return t == MovementTypeSale || t == MovementTypeManualRemoval
}

// SignedDelta returns the signed stock-level contribution for the quantity.
func (t MovementType) SignedDelta(quantity int64) int64 {
	if t.IsOutbound() {
		return -quantity
	}
	return quantity
}

// ParseMovementType converts raw input into MovementType.
func ParseMovementType(value string) (MovementType, error) {
	for _, candidate := range validMovementTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid movement type %q", value)
}
