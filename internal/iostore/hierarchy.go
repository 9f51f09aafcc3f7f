package iostore

import (
	"strings"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/breeding"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/association"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/label"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/naming"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
	"gorm.io/gorm"
)

func kindOf(k naming.Kind) breeding.Kind {
	switch k {
	case naming.Crossing:
		return breeding.Crossings
	case naming.Lot:
		return breeding.Lots
	case naming.Cultivar:
		return breeding.Cultivars
	case naming.PlantGroup:
		return breeding.PlantGroups
	case naming.Plant:
		return breeding.Plants
	default:
		return breeding.Trees
	}
}

// checkReserved searches crossing names and the overrides of lots,
// cultivars and plant groups for the candidate, ignoring case.
func checkReserved(tx *gorm.DB, candidate naming.Reservation) error {
	var existing []naming.Reservation
	for _, k := range naming.ReservedKinds {
		r := naming.Reservation{Kind: k}
		var rows []struct {
			ID    uint
			Value string
		}
		err := tx.Table(string(kindOf(k))).
			Select("id, "+r.Field()+" AS value").
			Where(foldEq(tx, r.Field()), candidate.Value).
			Scan(&rows).Error
		if err != nil {
			return QueryError(err)
		}
		for _, v := range rows {
			existing = append(existing,
				naming.Reservation{Kind: k, ID: v.ID, Value: v.Value})
		}
	}
	return naming.FindConflict(candidate, existing)
}

func (s *store) writeCrossing(
	tx *gorm.DB,
	id uint,
	in *breeding.CrossingInput,
) (*schema.Crossing, error) {
	name, err := naming.ValidateCrossingName(in.Name)
	if err != nil {
		return nil, err
	}
	err = checkReserved(tx, naming.Reservation{
		Kind: naming.Crossing, ID: id, Value: name,
	})
	if err != nil {
		return nil, err
	}
	if err = mustExist[schema.Cultivar](tx, breeding.Cultivars,
		in.MotherCultivarID); err != nil {
		return nil, err
	}
	if err = mustExist[schema.Cultivar](tx, breeding.Cultivars,
		in.FatherCultivarID); err != nil {
		return nil, err
	}

	now := s.timestamp()
	rec := &schema.Crossing{Created: now}
	if id != 0 {
		if rec, err = first[schema.Crossing](tx, breeding.Crossings, id); err != nil {
			return nil, err
		}
		if err = checkParentageChange(tx, id, in); err != nil {
			return nil, err
		}
		rec.Modified = &now
	}

	renamed := rec.Name != name || rec.IsVariety != in.IsVariety
	rec.Name = name
	rec.IsVariety = in.IsVariety
	rec.MotherCultivarID = in.MotherCultivarID
	rec.FatherCultivarID = in.FatherCultivarID
	rec.Description = in.Description
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}

	if id != 0 && renamed {
		if err = s.cascade(tx, naming.Crossing, id); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// checkParentageChange compares new parent cultivars of a crossing with
// the cultivars of all linked mother plants, mother trees and pollen.
func checkParentageChange(
	tx *gorm.DB,
	id uint,
	in *breeding.CrossingInput,
) error {
	var mothers, trees, fathers []uint
	err := tx.Table("mother_plants").
		Joins("JOIN plants ON plants.id = mother_plants.plant_id").
		Where("mother_plants.crossing_id = ?", id).
		Distinct().Pluck("plants.cultivar_id", &mothers).Error
	if err != nil {
		return QueryError(err)
	}
	err = tx.Table("mother_trees").
		Joins("JOIN trees ON trees.id = mother_trees.tree_id").
		Where("mother_trees.crossing_id = ?", id).
		Distinct().Pluck("trees.cultivar_id", &trees).Error
	if err != nil {
		return QueryError(err)
	}
	err = tx.Table("mother_plants").
		Joins("JOIN pollen ON pollen.id = mother_plants.pollen_id").
		Where("mother_plants.crossing_id = ?", id).
		Distinct().Pluck("pollen.cultivar_id", &fathers).Error
	if err != nil {
		return QueryError(err)
	}

	err = association.CheckMotherChange(in.MotherCultivarID,
		append(mothers, trees...))
	if err != nil {
		return err
	}
	return association.CheckFatherChange(in.FatherCultivarID, fathers)
}

func (s *store) writeLot(
	tx *gorm.DB,
	id uint,
	in *breeding.LotInput,
) (*schema.Lot, error) {
	seg, err := naming.ValidateSegment(naming.Lot, in.NameSegment)
	if err != nil {
		return nil, err
	}
	override, err := s.checkOverride(tx, naming.Lot, id, in.NameOverride)
	if err != nil {
		return nil, err
	}
	if _, err = first[schema.Crossing](tx, breeding.Crossings,
		in.CrossingID); err != nil {
		return nil, err
	}
	dup, err := exists(tx, &schema.Lot{},
		"crossing_id = ? AND name_segment = ? AND id <> ?",
		in.CrossingID, seg, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, DuplicateError(breeding.Lots, "name_segment", seg)
	}

	now := s.timestamp()
	rec := &schema.Lot{Created: now}
	if id != 0 {
		if rec, err = first[schema.Lot](tx, breeding.Lots, id); err != nil {
			return nil, err
		}
		rec.Modified = &now
	}

	renamed := id == 0 || rec.CrossingID != in.CrossingID ||
		rec.NameSegment != seg || !equalPtr(rec.NameOverride, override)
	rec.CrossingID = in.CrossingID
	rec.NameSegment = seg
	rec.NameOverride = override
	rec.OrchardID = in.OrchardID
	rec.DateSowed = in.DateSowed
	rec.Note = in.Note
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}

	if renamed {
		if err = s.cascade(tx, naming.Lot, rec.ID); err != nil {
			return nil, err
		}
	}
	return first[schema.Lot](tx, breeding.Lots, rec.ID)
}

func (s *store) writeCultivar(
	tx *gorm.DB,
	id uint,
	in *breeding.CultivarInput,
) (*schema.Cultivar, error) {
	seg, err := naming.ValidateSegment(naming.Cultivar, in.NameSegment)
	if err != nil {
		return nil, err
	}
	override, err := s.checkOverride(tx, naming.Cultivar, id, in.NameOverride)
	if err != nil {
		return nil, err
	}
	if _, err = first[schema.Lot](tx, breeding.Lots, in.LotID); err != nil {
		return nil, err
	}
	dup, err := exists(tx, &schema.Cultivar{},
		"lot_id = ? AND name_segment = ? AND id <> ?", in.LotID, seg, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, DuplicateError(breeding.Cultivars, "name_segment", seg)
	}

	now := s.timestamp()
	rec := &schema.Cultivar{Created: now}
	if id != 0 {
		if rec, err = first[schema.Cultivar](tx, breeding.Cultivars, id); err != nil {
			return nil, err
		}
		rec.Modified = &now
	}

	renamed := id == 0 || rec.LotID != in.LotID ||
		rec.NameSegment != seg || !equalPtr(rec.NameOverride, override)
	rec.LotID = in.LotID
	rec.NameSegment = seg
	rec.NameOverride = override
	rec.Acronym = in.Acronym
	rec.Breeder = in.Breeder
	rec.Registration = in.Registration
	rec.Note = in.Note
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}

	if renamed {
		if err = s.cascade(tx, naming.Cultivar, rec.ID); err != nil {
			return nil, err
		}
	}
	return first[schema.Cultivar](tx, breeding.Cultivars, rec.ID)
}

func (s *store) writePlantGroup(
	tx *gorm.DB,
	id uint,
	in *breeding.PlantGroupInput,
) (*schema.PlantGroup, error) {
	seg, err := naming.ValidateSegment(naming.PlantGroup, in.NameSegment)
	if err != nil {
		return nil, err
	}
	override, err := s.checkOverride(tx, naming.PlantGroup, id,
		in.NameOverride)
	if err != nil {
		return nil, err
	}
	if _, err = first[schema.Cultivar](tx, breeding.Cultivars,
		in.CultivarID); err != nil {
		return nil, err
	}
	dup, err := exists(tx, &schema.PlantGroup{},
		"cultivar_id = ? AND name_segment = ? AND id <> ?",
		in.CultivarID, seg, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, DuplicateError(breeding.PlantGroups, "name_segment", seg)
	}

	now := s.timestamp()
	rec := &schema.PlantGroup{Created: now}
	if id != 0 {
		rec, err = first[schema.PlantGroup](tx, breeding.PlantGroups, id)
		if err != nil {
			return nil, err
		}
		if rec.CultivarID != in.CultivarID {
			err = s.checkPlantsMove(tx, "plant_group_id", id, in.CultivarID)
			if err != nil {
				return nil, err
			}
		}
		rec.Modified = &now
	}

	renamed := id == 0 || rec.CultivarID != in.CultivarID ||
		rec.NameSegment != seg || !equalPtr(rec.NameOverride, override)
	rec.CultivarID = in.CultivarID
	rec.NameSegment = seg
	rec.NameOverride = override
	rec.Disabled = in.Disabled
	rec.Note = in.Note
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}

	if renamed {
		if err = s.cascade(tx, naming.PlantGroup, rec.ID); err != nil {
			return nil, err
		}
	}
	return first[schema.PlantGroup](tx, breeding.PlantGroups, rec.ID)
}

// checkOverride normalizes an override and checks it against all
// reserved names.
func (s *store) checkOverride(
	tx *gorm.DB,
	kind naming.Kind,
	id uint,
	override *string,
) (*string, error) {
	res, err := naming.NormalizeOverride(kind, override)
	if err != nil || res == nil {
		return nil, err
	}
	err = checkReserved(tx, naming.Reservation{Kind: kind, ID: id, Value: *res})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// checkPlantsMove validates a new cultivar for the plants selected by
// column = id against the crossings they are mother plants of.
func (s *store) checkPlantsMove(
	tx *gorm.DB,
	column string,
	id, cultivarID uint,
) error {
	var mothers []*uint
	err := tx.Table("mother_plants").
		Joins("JOIN plants ON plants.id = mother_plants.plant_id").
		Joins("JOIN crossings ON crossings.id = mother_plants.crossing_id").
		Where("plants."+column+" = ?", id).
		Pluck("crossings.mother_cultivar_id", &mothers).Error
	if err != nil {
		return QueryError(err)
	}
	return association.CheckMotherMove(cultivarID, mothers)
}

// plantLabel normalizes a label id. Eliminated plants and trees carry
// the # prefix.
func plantLabel(
	kind breeding.Kind,
	s string,
	eliminated bool,
) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", RequiredError(kind, "label_id")
	}
	s = label.Restore(s)
	if eliminated {
		s = label.Eliminate(s)
	}
	if !label.Valid(s) {
		return "", label.FormatError(s)
	}
	return s, nil
}

func (s *store) writePlant(
	tx *gorm.DB,
	id uint,
	in *breeding.PlantInput,
) (*schema.Plant, error) {
	lbl, err := plantLabel(breeding.Plants, in.LabelID,
		in.DateEliminated != nil)
	if err != nil {
		return nil, err
	}
	dup, err := exists(tx, &schema.Plant{}, "label_id = ? AND id <> ?",
		lbl, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, DuplicateError(breeding.Plants, "label_id", lbl)
	}
	group, err := first[schema.PlantGroup](tx, breeding.PlantGroups,
		in.PlantGroupID)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	rec := &schema.Plant{Created: now}
	if id != 0 {
		if rec, err = first[schema.Plant](tx, breeding.Plants, id); err != nil {
			return nil, err
		}
		if rec.CultivarID != group.CultivarID {
			err = s.checkPlantsMove(tx, "id", id, group.CultivarID)
			if err != nil {
				return nil, err
			}
		}
		rec.Modified = &now
	}

	rec.LabelID = lbl
	rec.PlantGroupID = in.PlantGroupID
	rec.DatePlanted = in.DatePlanted
	rec.DateEliminated = in.DateEliminated
	rec.Disabled = in.Disabled
	rec.Note = in.Note
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}

	if err = s.cascade(tx, naming.Plant, rec.ID); err != nil {
		return nil, err
	}
	return first[schema.Plant](tx, breeding.Plants, rec.ID)
}

func (s *store) writeTree(
	tx *gorm.DB,
	id uint,
	in *breeding.TreeInput,
) (*schema.Tree, error) {
	lbl, err := plantLabel(breeding.Trees, in.LabelID,
		in.DateEliminated != nil)
	if err != nil {
		return nil, err
	}
	dup, err := exists(tx, &schema.Tree{}, "label_id = ? AND id <> ?",
		lbl, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, DuplicateError(breeding.Trees, "label_id", lbl)
	}
	if _, err = first[schema.Cultivar](tx, breeding.Cultivars,
		in.CultivarID); err != nil {
		return nil, err
	}

	now := s.timestamp()
	rec := &schema.Tree{Created: now}
	if id != 0 {
		if rec, err = first[schema.Tree](tx, breeding.Trees, id); err != nil {
			return nil, err
		}
		if rec.CultivarID != in.CultivarID {
			var mothers []*uint
			err = tx.Table("mother_trees").
				Joins("JOIN crossings ON crossings.id = mother_trees.crossing_id").
				Where("mother_trees.tree_id = ?", id).
				Pluck("crossings.mother_cultivar_id", &mothers).Error
			if err != nil {
				return nil, QueryError(err)
			}
			err = association.CheckMotherMove(in.CultivarID, mothers)
			if err != nil {
				return nil, err
			}
		}
		rec.Modified = &now
	}

	rec.LabelID = lbl
	rec.CultivarID = in.CultivarID
	rec.DatePlanted = in.DatePlanted
	rec.DateEliminated = in.DateEliminated
	rec.Note = in.Note
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}

	if err = s.cascade(tx, naming.Tree, rec.ID); err != nil {
		return nil, err
	}
	return first[schema.Tree](tx, breeding.Trees, rec.ID)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
