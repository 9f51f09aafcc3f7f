package iostore

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/breeding"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/attribute"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func (s *store) writeAttribute(
	tx *gorm.DB,
	id uint,
	in *breeding.AttributeInput,
) (*schema.Attribute, error) {
	dt, err := attribute.ParseDataType(in.DataType)
	if err != nil {
		return nil, err
	}
	kind, err := attribute.ParseKind(in.AttributeType)
	if err != nil {
		return nil, err
	}
	def := attribute.Definition{
		Name:           in.Name,
		DataType:       dt,
		ValidationRule: in.ValidationRule,
		DefaultValue:   in.DefaultValue,
		Legend:         in.Legend,
	}
	if _, err = def.Validate(); err != nil {
		return nil, err
	}
	name, _ := attribute.ValidateName(in.Name)

	dup, err := exists(tx, &schema.Attribute{},
		foldEq(tx, "name")+" AND id <> ?", name, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, DuplicateError(breeding.Attributes, "name", name)
	}

	now := s.timestamp()
	rec := &schema.Attribute{Created: now}
	if id != 0 {
		if rec, err = first[schema.Attribute](tx, breeding.Attributes, id); err != nil {
			return nil, err
		}
		current := attribute.DataType(rec.DataType)
		if current != dt {
			inUse, err := attributeInUse(tx, id)
			if err != nil {
				return nil, err
			}
			if err = attribute.CheckDataTypeChange(current, dt, inUse); err != nil {
				return nil, err
			}
		}
		rec.Modified = &now
	}

	rec.Name = name
	rec.DataType = string(dt)
	rec.AttributeType = string(kind)
	rec.ValidationRule = jsonColumn(in.ValidationRule)
	rec.DefaultValue = jsonColumn(in.DefaultValue)
	rec.Legend = jsonColumn(in.Legend)
	rec.Description = in.Description
	rec.Disabled = in.Disabled
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}

	if id != 0 {
		var valueIDs []uint
		err = tx.Model(&schema.AttributionValue{}).
			Where("attribute_id = ?", id).Pluck("id", &valueIDs).Error
		if err != nil {
			return nil, QueryError(err)
		}
		if err = s.syncCache(tx, valueIDs); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// jsonColumn compacts a JSON input for storage. Null becomes NULL.
func jsonColumn(raw json.RawMessage) datatypes.JSON {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return datatypes.JSON(raw)
	}
	return datatypes.JSON(buf.Bytes())
}

// attributeInUse reports whether any attribution or mark value references
// the attribute.
func attributeInUse(tx *gorm.DB, id uint) (bool, error) {
	used, err := exists(tx, &schema.AttributionValue{}, "attribute_id = ?", id)
	if err != nil || used {
		return used, err
	}
	return exists(tx, &schema.MarkValue{}, "attribute_id = ?", id)
}

// CanChangeDataType reports whether the attribute may switch to dt.
func (s *store) CanChangeDataType(
	ctx context.Context,
	attributeID uint,
	dt attribute.DataType,
) (bool, error) {
	tx := s.db.WithContext(ctx)
	rec, err := first[schema.Attribute](tx, breeding.Attributes, attributeID)
	if err != nil {
		return false, err
	}
	inUse, err := attributeInUse(tx, attributeID)
	if err != nil {
		return false, err
	}
	return attribute.CheckDataTypeChange(
		attribute.DataType(rec.DataType), dt, inUse,
	) == nil, nil
}

// schemaOf parses the stored definition of an attribute.
func schemaOf(a *schema.Attribute) (*attribute.Schema, error) {
	def := attribute.Definition{
		Name:           a.Name,
		DataType:       attribute.DataType(a.DataType),
		ValidationRule: json.RawMessage(a.ValidationRule),
		DefaultValue:   json.RawMessage(a.DefaultValue),
		Legend:         json.RawMessage(a.Legend),
	}
	return def.Schema()
}

func (s *store) writeForm(
	tx *gorm.DB,
	id uint,
	in *breeding.AttributionFormInput,
) (*schema.AttributionForm, error) {
	name, err := requireName(breeding.AttributionForms, "name", in.Name)
	if err != nil {
		return nil, err
	}
	dup, err := exists(tx, &schema.AttributionForm{},
		foldEq(tx, "name")+" AND id <> ?", name, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, DuplicateError(breeding.AttributionForms, "name", name)
	}

	now := s.timestamp()
	rec := &schema.AttributionForm{Created: now}
	if id != 0 {
		rec, err = first[schema.AttributionForm](tx, breeding.AttributionForms, id)
		if err != nil {
			return nil, err
		}
		rec.Modified = &now
	}

	rec.Name = name
	rec.Description = in.Description
	rec.Disabled = in.Disabled
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}

	if id != 0 {
		var valueIDs []uint
		err = tx.Table("attribution_values").
			Joins("JOIN attributions ON attributions.id = attribution_values.attribution_id").
			Where("attributions.attribution_form_id = ?", id).
			Pluck("attribution_values.id", &valueIDs).Error
		if err != nil {
			return nil, QueryError(err)
		}
		if err = s.syncCache(tx, valueIDs); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
