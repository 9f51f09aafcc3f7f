package iostore

import (
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/breeding"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/association"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/attribute"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
	"gorm.io/gorm"
)

func (s *store) writeAttribution(
	tx *gorm.DB,
	id uint,
	in *breeding.AttributionInput,
) (*schema.Attribution, error) {
	author, err := requireName(breeding.Attributions, "author", in.Author)
	if err != nil {
		return nil, err
	}
	if in.DateAttributed.IsZero() {
		return nil, RequiredError(breeding.Attributions, "date_attributed")
	}
	target := association.AttributionTarget{
		PlantID:      in.PlantID,
		PlantGroupID: in.PlantGroupID,
		CultivarID:   in.CultivarID,
		LotID:        in.LotID,
	}
	if err = target.Validate(); err != nil {
		return nil, err
	}
	if _, err = first[schema.AttributionForm](tx, breeding.AttributionForms,
		in.AttributionFormID); err != nil {
		return nil, err
	}
	for _, err := range []error{
		mustExist[schema.Plant](tx, breeding.Plants, in.PlantID),
		mustExist[schema.PlantGroup](tx, breeding.PlantGroups, in.PlantGroupID),
		mustExist[schema.Cultivar](tx, breeding.Cultivars, in.CultivarID),
		mustExist[schema.Lot](tx, breeding.Lots, in.LotID),
	} {
		if err != nil {
			return nil, err
		}
	}

	now := s.timestamp()
	rec := &schema.Attribution{Created: now}
	if id != 0 {
		rec, err = first[schema.Attribution](tx, breeding.Attributions, id)
		if err != nil {
			return nil, err
		}
		rec.Modified = &now
	}

	rec.Author = author
	rec.DateAttributed = in.DateAttributed
	rec.AttributionFormID = in.AttributionFormID
	rec.PlantID = in.PlantID
	rec.PlantGroupID = in.PlantGroupID
	rec.CultivarID = in.CultivarID
	rec.LotID = in.LotID
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}

	if id != 0 {
		var valueIDs []uint
		err = tx.Model(&schema.AttributionValue{}).
			Where("attribution_id = ?", id).Pluck("id", &valueIDs).Error
		if err != nil {
			return nil, QueryError(err)
		}
		if err = s.syncCache(tx, valueIDs); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// validateValue checks candidate slots against the stored attribute.
func validateValue(
	tx *gorm.DB,
	variant attribute.Variant,
	attributeID uint,
	slots attribute.Slots,
) (schema.TypedValue, error) {
	var res schema.TypedValue
	attr, err := first[schema.Attribute](tx, breeding.Attributes, attributeID)
	if err != nil {
		return res, err
	}
	sch, err := schemaOf(attr)
	if err != nil {
		return res, err
	}
	v, err := sch.Validate(variant, slots)
	if err != nil {
		return res, err
	}
	slots = attribute.SlotsOf(v)
	res = schema.TypedValue{
		IntegerValue: slots.Integer,
		FloatValue:   slots.Float,
		TextValue:    slots.Text,
		BooleanValue: slots.Boolean,
		DateValue:    slots.Date,
	}
	return res, nil
}

func (s *store) writeAttributionValue(
	tx *gorm.DB,
	id uint,
	in *breeding.AttributionValueInput,
) (*schema.AttributionValue, error) {
	value, err := validateValue(tx, attribute.Attributions, in.AttributeID,
		attribute.Slots{
			Integer: in.IntegerValue,
			Float:   in.FloatValue,
			Text:    in.TextValue,
			Boolean: in.BooleanValue,
			Date:    in.DateValue,
		})
	if err != nil {
		return nil, err
	}
	if _, err = first[schema.Attribution](tx, breeding.Attributions,
		in.AttributionID); err != nil {
		return nil, err
	}
	if err = breeding.ValidateOfflineID(in.OfflineID); err != nil {
		return nil, err
	}
	if in.OfflineID != nil {
		dup, err := exists(tx, &schema.AttributionValue{},
			"offline_id = ? AND id <> ?", *in.OfflineID, id)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, DuplicateError(breeding.AttributionValues,
				"offline_id", *in.OfflineID)
		}
	}

	now := s.timestamp()
	rec := &schema.AttributionValue{Created: now}
	if id != 0 {
		rec, err = first[schema.AttributionValue](tx,
			breeding.AttributionValues, id)
		if err != nil {
			return nil, err
		}
		rec.Modified = &now
	}

	rec.AttributeID = in.AttributeID
	rec.AttributionID = in.AttributionID
	rec.TypedValue = value
	rec.TextNote = in.TextNote
	rec.PhotoNote = in.PhotoNote
	rec.Exceptional = in.Exceptional
	rec.OfflineID = in.OfflineID
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}

	if err = s.syncCache(tx, []uint{rec.ID}); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *store) writeMark(
	tx *gorm.DB,
	id uint,
	in *breeding.MarkInput,
) (*schema.Mark, error) {
	author, err := requireName(breeding.Marks, "author", in.Author)
	if err != nil {
		return nil, err
	}
	if in.DateMarked.IsZero() {
		return nil, RequiredError(breeding.Marks, "date_marked")
	}
	target := association.MarkTarget{
		TreeID:     in.TreeID,
		CultivarID: in.CultivarID,
		LotID:      in.LotID,
	}
	if err = target.Validate(); err != nil {
		return nil, err
	}
	for _, err := range []error{
		mustExist[schema.Tree](tx, breeding.Trees, in.TreeID),
		mustExist[schema.Cultivar](tx, breeding.Cultivars, in.CultivarID),
		mustExist[schema.Lot](tx, breeding.Lots, in.LotID),
	} {
		if err != nil {
			return nil, err
		}
	}

	now := s.timestamp()
	rec := &schema.Mark{Created: now}
	if id != 0 {
		if rec, err = first[schema.Mark](tx, breeding.Marks, id); err != nil {
			return nil, err
		}
		rec.Modified = &now
	}

	rec.Author = author
	rec.DateMarked = in.DateMarked
	rec.TreeID = in.TreeID
	rec.CultivarID = in.CultivarID
	rec.LotID = in.LotID
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *store) writeMarkValue(
	tx *gorm.DB,
	id uint,
	in *breeding.MarkValueInput,
) (*schema.MarkValue, error) {
	value, err := validateValue(tx, attribute.Marks, in.AttributeID,
		attribute.Slots{
			Integer: in.IntegerValue,
			Float:   in.FloatValue,
			Text:    in.TextValue,
			Boolean: in.BooleanValue,
			Date:    in.DateValue,
		})
	if err != nil {
		return nil, err
	}
	if _, err = first[schema.Mark](tx, breeding.Marks, in.MarkID); err != nil {
		return nil, err
	}

	now := s.timestamp()
	rec := &schema.MarkValue{Created: now}
	if id != 0 {
		if rec, err = first[schema.MarkValue](tx, breeding.MarkValues, id); err != nil {
			return nil, err
		}
		rec.Modified = &now
	}

	rec.AttributeID = in.AttributeID
	rec.MarkID = in.MarkID
	rec.TypedValue = value
	rec.Exceptional = in.Exceptional
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}
