package shopping

import "github.com/amirasaad/shoplist/pkg/money"

// Total is either Frozen, an authoritative stored amount that must never be
// recomputed, or Derived, meaning the amount is always computed from line
// items. A Derived total carries no value at all.
type Total struct {
	value  money.Value
	frozen bool
}

// Frozen returns an authoritative total.
func Frozen(v money.Value) Total {
	return Total{value: v, frozen: true}
}

// Derived returns a total computed on demand.
func Derived() Total {
	return Total{}
}

// IsFrozen reports whether the total is authoritative.
func (t Total) IsFrozen() bool {
	return t.frozen
}

// Frozen returns the authoritative amount and true, or false for a derived total.
func (t Total) Frozen() (money.Value, bool) {
	return t.value, t.frozen
}
