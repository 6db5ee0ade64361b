package valueobject

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredientIdentity is the merge key under which ingredient amounts are
// aggregated: name plus optional unit plus optional category.
// Matching is exact: no unit conversion and no name normalization, and an
// absent unit never matches a present one. "Flour" in grams, "Flour" in cups
// and "Flour" without a unit are three distinct identities.
// All identity comparison in the codebase goes through this value object, so
// a future normalization scheme has a single place to land.
// It is immutable and comparable, usable directly as a map key.
type IngredientIdentity struct {
	name        string
	unit        string
	hasUnit     bool
	categoryID  uuid.UUID
	hasCategory bool
}

// NewIngredientIdentity creates an identity from a name and optional unit and
// category. nil means absent, which is part of the identity.
func NewIngredientIdentity(name string, unit *string, categoryID *uuid.UUID) (IngredientIdentity, error) {
	if strings.TrimSpace(name) == "" {
		return IngredientIdentity{}, errors.New("ingredient name cannot be empty")
	}
	id := IngredientIdentity{name: name}
	if unit != nil {
		id.unit = *unit
		id.hasUnit = true
	}
	if categoryID != nil {
		id.categoryID = *categoryID
		id.hasCategory = true
	}
	return id, nil
}

// MustNewIngredientIdentity creates an identity and panics on error
func MustNewIngredientIdentity(name string, unit *string, categoryID *uuid.UUID) IngredientIdentity {
	id, err := NewIngredientIdentity(name, unit, categoryID)
	if err != nil {
		panic(err)
	}
	return id
}

// Name returns the ingredient name
func (i IngredientIdentity) Name() string {
	return i.name
}

// Unit returns the unit and whether one is present
func (i IngredientIdentity) Unit() (string, bool) {
	return i.unit, i.hasUnit
}

// UnitPtr returns the unit as a nullable pointer for persistence
func (i IngredientIdentity) UnitPtr() *string {
	if !i.hasUnit {
		return nil
	}
	u := i.unit
	return &u
}

// CategoryID returns the category id and whether one is present
func (i IngredientIdentity) CategoryID() (uuid.UUID, bool) {
	return i.categoryID, i.hasCategory
}

// CategoryIDPtr returns the category id as a nullable pointer for persistence
func (i IngredientIdentity) CategoryIDPtr() *uuid.UUID {
	if !i.hasCategory {
		return nil
	}
	c := i.categoryID
	return &c
}

// Equal reports whether two identities match exactly
func (i IngredientIdentity) Equal(other IngredientIdentity) bool {
	return i == other
}

// String returns a human-readable representation
func (i IngredientIdentity) String() string {
	var b strings.Builder
	b.WriteString(i.name)
	if i.hasUnit {
		fmt.Fprintf(&b, " [%s]", i.unit)
	}
	if i.hasCategory {
		fmt.Fprintf(&b, " (%s)", i.categoryID)
	}
	return b.String()
}

// sortKey orders identities by name, then unit (absent first), then category
// (absent first). Used to make aggregation output deterministic.
func (i IngredientIdentity) sortKey() string {
	unit := ""
	if i.hasUnit {
		unit = "u:" + i.unit
	}
	cat := ""
	if i.hasCategory {
		cat = "c:" + i.categoryID.String()
	}
	return i.name + "\x00" + unit + "\x00" + cat
}

// IngredientAmount pairs an identity with a decimal amount
type IngredientAmount struct {
	Identity IngredientIdentity
	Amount   decimal.Decimal
}

// IngredientDemand accumulates ingredient amounts keyed by identity.
// Amounts are summed with decimal arithmetic; a demand is never negative.
type IngredientDemand map[IngredientIdentity]decimal.Decimal

// NewIngredientDemand creates an empty demand map
func NewIngredientDemand() IngredientDemand {
	return make(IngredientDemand)
}

// Add accumulates amount under the given identity
func (d IngredientDemand) Add(id IngredientIdentity, amount decimal.Decimal) {
	d[id] = d[id].Add(amount)
}

// Reduce subtracts amount from the entry for id, clamping at zero. Entries
// fully covered are removed. Returns the amount actually consumed.
func (d IngredientDemand) Reduce(id IngredientIdentity, amount decimal.Decimal) decimal.Decimal {
	current, ok := d[id]
	if !ok {
		return decimal.Zero
	}
	if amount.GreaterThanOrEqual(current) {
		delete(d, id)
		return current
	}
	d[id] = current.Sub(amount)
	return amount
}

// Sorted returns the demand entries in deterministic order:
// name ascending, then unit, then category.
func (d IngredientDemand) Sorted() []IngredientAmount {
	out := make([]IngredientAmount, 0, len(d))
	for id, amount := range d {
		out = append(out, IngredientAmount{Identity: id, Amount: amount})
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].Identity.sortKey() < out[b].Identity.sortKey()
	})
	return out
}
