// Package association checks the links of observation records to the
// breeding hierarchy and the cultivar parentage of crossings.
package association

// AttributionTarget holds the hierarchy references of an attribution.
// Exactly one of them must be set.
type AttributionTarget struct {
	PlantID      *uint
	PlantGroupID *uint
	CultivarID   *uint
	LotID        *uint
}

// Validate checks that exactly one reference is set.
func (t AttributionTarget) Validate() error {
	if count(t.PlantID, t.PlantGroupID, t.CultivarID, t.LotID) != 1 {
		return AttributionExclusivityError()
	}
	return nil
}

// MarkTarget holds the hierarchy references of a mark.
// Exactly one of them must be set.
type MarkTarget struct {
	TreeID     *uint
	CultivarID *uint
	LotID      *uint
}

// Validate checks that exactly one reference is set.
func (t MarkTarget) Validate() error {
	if count(t.TreeID, t.CultivarID, t.LotID) != 1 {
		return MarkExclusivityError()
	}
	return nil
}

func count(ids ...*uint) int {
	var res int
	for _, v := range ids {
		if v != nil {
			res++
		}
	}
	return res
}

// CheckMother validates the cultivar of a mother plant or mother tree
// against the mother cultivar declared by its crossing. A crossing without
// mother cultivar accepts any mother.
func CheckMother(crossingMother *uint, motherCultivar uint) error {
	if crossingMother != nil && *crossingMother != motherCultivar {
		return MotherMismatchError()
	}
	return nil
}

// CheckFather validates the cultivar of the pollen used on a mother plant
// against the father cultivar declared by its crossing.
func CheckFather(crossingFather *uint, pollenCultivar uint) error {
	if crossingFather != nil && *crossingFather != pollenCultivar {
		return FatherMismatchError()
	}
	return nil
}

// CheckMotherChange validates a new mother cultivar of a crossing against
// the cultivars of all mother plants and mother trees already linked to
// it. Unsetting the mother cultivar is always allowed.
func CheckMotherChange(next *uint, linked []uint) error {
	if next == nil {
		return nil
	}
	for _, v := range linked {
		if v != *next {
			return MotherLockedError()
		}
	}
	return nil
}

// CheckFatherChange validates a new father cultivar of a crossing against
// the cultivars of all pollen already used for it.
func CheckFatherChange(next *uint, linked []uint) error {
	if next == nil {
		return nil
	}
	for _, v := range linked {
		if v != *next {
			return FatherLockedError()
		}
	}
	return nil
}

// CheckMotherMove validates a new cultivar of a plant or tree against the
// mother cultivars of the crossings it is a mother of.
func CheckMotherMove(next uint, crossingMothers []*uint) error {
	for _, v := range crossingMothers {
		if v != nil && *v != next {
			return MotherMoveError()
		}
	}
	return nil
}

// CheckPollenMove validates a new cultivar of a pollen against the father
// cultivars of the crossings it was used for.
func CheckPollenMove(next uint, crossingFathers []*uint) error {
	for _, v := range crossingFathers {
		if v != nil && *v != next {
			return PollenMoveError()
		}
	}
	return nil
}
