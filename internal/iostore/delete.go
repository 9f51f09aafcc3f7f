package iostore

import (
	"context"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/breeding"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
	"gorm.io/gorm"
)

// reference is a column of another table that points to a record.
type reference struct {
	model  any
	column string
	// label names the referencing records in error messages.
	label string
}

// references lists what blocks the deletion of a record of a kind.
// Attributions and marks delete their values instead.
var references = map[breeding.Kind][]reference{
	breeding.Crossings: {
		{&schema.Lot{}, "crossing_id", "lots"},
		{&schema.MotherPlant{}, "crossing_id", "mother plants"},
		{&schema.MotherTree{}, "crossing_id", "mother trees"},
	},
	breeding.Lots: {
		{&schema.Cultivar{}, "lot_id", "cultivars"},
		{&schema.Attribution{}, "lot_id", "attributions"},
		{&schema.Mark{}, "lot_id", "marks"},
	},
	breeding.Cultivars: {
		{&schema.PlantGroup{}, "cultivar_id", "plant groups"},
		{&schema.Tree{}, "cultivar_id", "trees"},
		{&schema.Pollen{}, "cultivar_id", "pollen"},
		{&schema.Crossing{}, "mother_cultivar_id", "crossings"},
		{&schema.Crossing{}, "father_cultivar_id", "crossings"},
		{&schema.Attribution{}, "cultivar_id", "attributions"},
		{&schema.Mark{}, "cultivar_id", "marks"},
	},
	breeding.PlantGroups: {
		{&schema.Plant{}, "plant_group_id", "plants"},
		{&schema.Attribution{}, "plant_group_id", "attributions"},
	},
	breeding.Plants: {
		{&schema.MotherPlant{}, "plant_id", "mother plants"},
		{&schema.Attribution{}, "plant_id", "attributions"},
	},
	breeding.Trees: {
		{&schema.MotherTree{}, "tree_id", "mother trees"},
		{&schema.Mark{}, "tree_id", "marks"},
	},
	breeding.Pollen: {
		{&schema.MotherPlant{}, "pollen_id", "mother plants"},
	},
	breeding.Attributes: {
		{&schema.AttributionValue{}, "attribute_id", "attribution values"},
		{&schema.MarkValue{}, "attribute_id", "mark values"},
	},
	breeding.AttributionForms: {
		{&schema.Attribution{}, "attribution_form_id", "attributions"},
	},
}

// Delete removes the record of the kind with the id. Records still
// referenced by others are kept and ReferencedError is returned.
func (s *store) Delete(ctx context.Context, kind breeding.Kind, id uint) error {
	model, err := modelOf(kind)
	if err != nil {
		return err
	}

	return s.transaction(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, model, "id = ?", id)
		if err != nil {
			return err
		}
		if !found {
			return NotFoundError(kind, id)
		}

		for _, ref := range references[kind] {
			used, err := exists(tx, ref.model, ref.column+" = ?", id)
			if err != nil {
				return err
			}
			if used {
				return ReferencedError(kind, id, ref.label)
			}
		}

		var valueIDs []uint
		switch kind {
		case breeding.Attributions:
			err = tx.Model(&schema.AttributionValue{}).
				Where("attribution_id = ?", id).Pluck("id", &valueIDs).Error
			if err != nil {
				return QueryError(err)
			}
			err = tx.Where("attribution_id = ?", id).
				Delete(&schema.AttributionValue{}).Error
		case breeding.AttributionValues:
			valueIDs = []uint{id}
		case breeding.Marks:
			err = tx.Where("mark_id = ?", id).Delete(&schema.MarkValue{}).Error
		}
		if err != nil {
			return QueryError(err)
		}

		if err = tx.Delete(model, id).Error; err != nil {
			return QueryError(err)
		}
		return s.syncCache(tx, valueIDs)
	})
}

func modelOf(kind breeding.Kind) (any, error) {
	switch kind {
	case breeding.Crossings:
		return &schema.Crossing{}, nil
	case breeding.Lots:
		return &schema.Lot{}, nil
	case breeding.Cultivars:
		return &schema.Cultivar{}, nil
	case breeding.PlantGroups:
		return &schema.PlantGroup{}, nil
	case breeding.Plants:
		return &schema.Plant{}, nil
	case breeding.Trees:
		return &schema.Tree{}, nil
	case breeding.Pollen:
		return &schema.Pollen{}, nil
	case breeding.MotherPlants:
		return &schema.MotherPlant{}, nil
	case breeding.MotherTrees:
		return &schema.MotherTree{}, nil
	case breeding.Attributes:
		return &schema.Attribute{}, nil
	case breeding.AttributionForms:
		return &schema.AttributionForm{}, nil
	case breeding.Attributions:
		return &schema.Attribution{}, nil
	case breeding.AttributionValues:
		return &schema.AttributionValue{}, nil
	case breeding.Marks:
		return &schema.Mark{}, nil
	case breeding.MarkValues:
		return &schema.MarkValue{}, nil
	}
	return nil, breeding.UnknownKindError(string(kind))
}
