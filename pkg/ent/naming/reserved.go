package naming

import (
	"strings"
	"unicode"
)

// ReservedKinds share one namespace: crossing names and the overrides of
// lots, cultivars and plant groups.
var ReservedKinds = []Kind{Crossing, Lot, Cultivar, PlantGroup}

// Reservation is a name held by a record of one of the ReservedKinds.
type Reservation struct {
	Kind  Kind
	ID    uint
	Value string
}

// Field is the column that holds the reserved name.
func (r Reservation) Field() string {
	if r.Kind == Crossing {
		return "name"
	}
	return "name_override"
}

// FindConflict returns an error for the first reservation that holds the
// candidate's name, compared case-insensitively. The candidate's own
// record is skipped.
func FindConflict(candidate Reservation, existing []Reservation) error {
	for _, v := range existing {
		if v.Kind == candidate.Kind && v.ID == candidate.ID {
			continue
		}
		if strings.EqualFold(v.Value, candidate.Value) {
			return ConflictError(candidate, v)
		}
	}
	return nil
}

// Fold maps every rune to the smallest rune of its simple case folding
// orbit. Fold(a) == Fold(b) exactly when strings.EqualFold(a, b).
func Fold(s string) string {
	return strings.Map(foldRune, s)
}

func foldRune(r rune) rune {
	res := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < res {
			res = f
		}
	}
	return res
}
