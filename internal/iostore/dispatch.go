package iostore

import (
	"context"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/breeding"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
	"gorm.io/gorm"
)

// Create validates and inserts a record of the input's kind.
func (s *store) Create(ctx context.Context, in breeding.Input) (any, error) {
	var res any
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		res, err = s.write(tx, 0, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Update replaces the settable fields of record id.
func (s *store) Update(
	ctx context.Context,
	id uint,
	in breeding.Input,
) (any, error) {
	var res any
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		res, err = s.write(tx, id, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// write creates a record when id is zero and updates it otherwise.
func (s *store) write(tx *gorm.DB, id uint, in breeding.Input) (any, error) {
	switch v := in.(type) {
	case *breeding.CrossingInput:
		return s.writeCrossing(tx, id, v)
	case *breeding.LotInput:
		return s.writeLot(tx, id, v)
	case *breeding.CultivarInput:
		return s.writeCultivar(tx, id, v)
	case *breeding.PlantGroupInput:
		return s.writePlantGroup(tx, id, v)
	case *breeding.PlantInput:
		return s.writePlant(tx, id, v)
	case *breeding.TreeInput:
		return s.writeTree(tx, id, v)
	case *breeding.PollenInput:
		return s.writePollen(tx, id, v)
	case *breeding.MotherPlantInput:
		return s.writeMotherPlant(tx, id, v)
	case *breeding.MotherTreeInput:
		return s.writeMotherTree(tx, id, v)
	case *breeding.AttributeInput:
		return s.writeAttribute(tx, id, v)
	case *breeding.AttributionFormInput:
		return s.writeForm(tx, id, v)
	case *breeding.AttributionInput:
		return s.writeAttribution(tx, id, v)
	case *breeding.AttributionValueInput:
		return s.writeAttributionValue(tx, id, v)
	case *breeding.MarkInput:
		return s.writeMark(tx, id, v)
	case *breeding.MarkValueInput:
		return s.writeMarkValue(tx, id, v)
	}
	return nil, breeding.UnknownKindError(string(in.Kind()))
}

// Get returns the record of the kind with the id.
func (s *store) Get(
	ctx context.Context,
	kind breeding.Kind,
	id uint,
) (any, error) {
	tx := s.db.WithContext(ctx)
	switch kind {
	case breeding.Crossings:
		return first[schema.Crossing](tx, kind, id)
	case breeding.Lots:
		return first[schema.Lot](tx, kind, id)
	case breeding.Cultivars:
		return first[schema.Cultivar](tx, kind, id)
	case breeding.PlantGroups:
		return first[schema.PlantGroup](tx, kind, id)
	case breeding.Plants:
		return first[schema.Plant](tx, kind, id)
	case breeding.Trees:
		return first[schema.Tree](tx, kind, id)
	case breeding.Pollen:
		return first[schema.Pollen](tx, kind, id)
	case breeding.MotherPlants:
		return first[schema.MotherPlant](tx, kind, id)
	case breeding.MotherTrees:
		return first[schema.MotherTree](tx, kind, id)
	case breeding.Attributes:
		return first[schema.Attribute](tx, kind, id)
	case breeding.AttributionForms:
		return first[schema.AttributionForm](tx, kind, id)
	case breeding.Attributions:
		return first[schema.Attribution](tx, kind, id)
	case breeding.AttributionValues:
		return first[schema.AttributionValue](tx, kind, id)
	case breeding.Marks:
		return first[schema.Mark](tx, kind, id)
	case breeding.MarkValues:
		return first[schema.MarkValue](tx, kind, id)
	}
	return nil, breeding.UnknownKindError(string(kind))
}
