package valueobject

// Measurement units accepted for ingredients, shopping list items and pantry
// items. Units are opaque labels: no conversion between them is ever
// performed, matching is exact string equality.
const (
	UnitGram       = "g"
	UnitKilogram   = "kg"
	UnitMilliliter = "ml"
	UnitLiter      = "l"
	UnitPiece      = "pcs"
	UnitTablespoon = "tbsp"
	UnitTeaspoon   = "tsp"
	UnitCup        = "cup"
)

var validUnits = map[string]struct{}{
	UnitGram:       {},
	UnitKilogram:   {},
	UnitMilliliter: {},
	UnitLiter:      {},
	UnitPiece:      {},
	UnitTablespoon: {},
	UnitTeaspoon:   {},
	UnitCup:        {},
}

// IsValidUnit reports whether u is one of the accepted measurement units
func IsValidUnit(u string) bool {
	_, ok := validUnits[u]
	return ok
}

// Units returns the accepted measurement units
func Units() []string {
	return []string{
		UnitGram, UnitKilogram, UnitMilliliter, UnitLiter,
		UnitPiece, UnitTablespoon, UnitTeaspoon, UnitCup,
	}
}
