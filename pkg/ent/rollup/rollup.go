// Package rollup builds the denormalized attribution and mark records of
// the cache table and the views from the normalized tables. Both the
// eager cache and the lazy views use the same builders, so their content
// is identical when both are current.
package rollup

import (
	"time"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
)

// Sources is the part of the normalized tables a record is built from.
// Maps are keyed by primary key.
type Sources struct {
	Attributes   map[uint]*schema.Attribute
	Forms        map[uint]*schema.AttributionForm
	Attributions map[uint]*schema.Attribution
	Marks        map[uint]*schema.Mark
	Plants       map[uint]*schema.Plant
	PlantGroups  map[uint]*schema.PlantGroup
	Cultivars    map[uint]*schema.Cultivar
	Lots         map[uint]*schema.Lot
	Trees        map[uint]*schema.Tree
}

// NewSources creates empty Sources.
func NewSources() *Sources {
	return &Sources{
		Attributes:   make(map[uint]*schema.Attribute),
		Forms:        make(map[uint]*schema.AttributionForm),
		Attributions: make(map[uint]*schema.Attribution),
		Marks:        make(map[uint]*schema.Mark),
		Plants:       make(map[uint]*schema.Plant),
		PlantGroups:  make(map[uint]*schema.PlantGroup),
		Cultivars:    make(map[uint]*schema.Cultivar),
		Lots:         make(map[uint]*schema.Lot),
		Trees:        make(map[uint]*schema.Tree),
	}
}

// Combined holds the ids an attribution rolls up to.
type Combined struct {
	PlantGroupID *uint
	CultivarID   *uint
	LotID        *uint
}

// CombineAttribution resolves the combined ids of an attribution. The
// plant group of a plant, the cultivar of a plant group and the lot of a
// cultivar are taken when the attribution does not reference them
// directly.
func (s *Sources) CombineAttribution(a *schema.Attribution) (Combined, error) {
	var res Combined

	res.PlantGroupID = a.PlantGroupID
	if res.PlantGroupID == nil && a.PlantID != nil {
		p, ok := s.Plants[*a.PlantID]
		if !ok {
			return res, MissingSourceError("plant", *a.PlantID)
		}
		res.PlantGroupID = ptr(p.PlantGroupID)
	}

	res.CultivarID = a.CultivarID
	if res.CultivarID == nil && res.PlantGroupID != nil {
		pg, ok := s.PlantGroups[*res.PlantGroupID]
		if !ok {
			return res, MissingSourceError("plant_group", *res.PlantGroupID)
		}
		res.CultivarID = ptr(pg.CultivarID)
	}

	res.LotID = a.LotID
	if res.LotID == nil && res.CultivarID != nil {
		c, ok := s.Cultivars[*res.CultivarID]
		if !ok {
			return res, MissingSourceError("cultivar", *res.CultivarID)
		}
		res.LotID = ptr(c.LotID)
	}
	return res, nil
}

// CombineMark resolves the combined cultivar and lot of a mark.
func (s *Sources) CombineMark(m *schema.Mark) (Combined, error) {
	var res Combined

	res.CultivarID = m.CultivarID
	if res.CultivarID == nil && m.TreeID != nil {
		t, ok := s.Trees[*m.TreeID]
		if !ok {
			return res, MissingSourceError("tree", *m.TreeID)
		}
		res.CultivarID = ptr(t.CultivarID)
	}

	res.LotID = m.LotID
	if res.LotID == nil && res.CultivarID != nil {
		c, ok := s.Cultivars[*res.CultivarID]
		if !ok {
			return res, MissingSourceError("cultivar", *res.CultivarID)
		}
		res.LotID = ptr(c.LotID)
	}
	return res, nil
}

// BuildAttribution builds the record of an attribution value.
func (s *Sources) BuildAttribution(
	v *schema.AttributionValue,
) (schema.AttributionRecord, error) {
	var res schema.AttributionRecord

	attr, ok := s.Attributes[v.AttributeID]
	if !ok {
		return res, MissingSourceError("attribute", v.AttributeID)
	}
	a, ok := s.Attributions[v.AttributionID]
	if !ok {
		return res, MissingSourceError("attribution", v.AttributionID)
	}
	form, ok := s.Forms[a.AttributionFormID]
	if !ok {
		return res, MissingSourceError("attribution_form", a.AttributionFormID)
	}
	comb, err := s.CombineAttribution(a)
	if err != nil {
		return res, err
	}

	res = schema.AttributionRecord{
		ID:                   v.ID,
		AttributeID:          attr.ID,
		AttributeName:        attr.Name,
		DataType:             attr.DataType,
		AttributeType:        attr.AttributeType,
		TypedValue:           v.TypedValue,
		TextNote:             v.TextNote,
		PhotoNote:            v.PhotoNote,
		Exceptional:          v.Exceptional,
		AttributionID:        a.ID,
		Author:               a.Author,
		DateAttributed:       a.DateAttributed,
		AttributionFormID:    form.ID,
		AttributionFormName:  form.Name,
		PlantID:              a.PlantID,
		PlantGroupID:         a.PlantGroupID,
		CultivarID:           a.CultivarID,
		LotID:                a.LotID,
		CombinedPlantGroupID: comb.PlantGroupID,
		CombinedCultivarID:   comb.CultivarID,
		CombinedLotID:        comb.LotID,
		Created:              v.Created,
		Modified:             Latest(v.Modified, attr.Modified, a.Modified),
	}

	if a.PlantID != nil {
		if p, ok := s.Plants[*a.PlantID]; ok {
			res.PlantLabelID = ptr(p.LabelID)
		}
	}
	if comb.PlantGroupID != nil {
		if pg, ok := s.PlantGroups[*comb.PlantGroupID]; ok {
			res.PlantGroupName = ptr(pg.DisplayName)
		}
	}
	if comb.CultivarID != nil {
		if c, ok := s.Cultivars[*comb.CultivarID]; ok {
			res.CultivarName = ptr(c.DisplayName)
		}
	}
	if comb.LotID != nil {
		if l, ok := s.Lots[*comb.LotID]; ok {
			res.LotName = ptr(l.DisplayName)
		}
	}
	return res, nil
}

// BuildMark builds the record of a mark value.
func (s *Sources) BuildMark(v *schema.MarkValue) (schema.MarkRecord, error) {
	var res schema.MarkRecord

	attr, ok := s.Attributes[v.AttributeID]
	if !ok {
		return res, MissingSourceError("attribute", v.AttributeID)
	}
	m, ok := s.Marks[v.MarkID]
	if !ok {
		return res, MissingSourceError("mark", v.MarkID)
	}
	comb, err := s.CombineMark(m)
	if err != nil {
		return res, err
	}

	res = schema.MarkRecord{
		ID:                 v.ID,
		AttributeID:        attr.ID,
		AttributeName:      attr.Name,
		DataType:           attr.DataType,
		AttributeType:      attr.AttributeType,
		TypedValue:         v.TypedValue,
		Exceptional:        v.Exceptional,
		MarkID:             m.ID,
		Author:             m.Author,
		DateMarked:         m.DateMarked,
		TreeID:             m.TreeID,
		CultivarID:         m.CultivarID,
		LotID:              m.LotID,
		CombinedCultivarID: comb.CultivarID,
		CombinedLotID:      comb.LotID,
		Created:            v.Created,
		Modified:           Latest(v.Modified, attr.Modified, m.Modified),
	}

	if m.TreeID != nil {
		if t, ok := s.Trees[*m.TreeID]; ok {
			res.TreeLabelID = ptr(t.LabelID)
		}
	}
	if comb.CultivarID != nil {
		if c, ok := s.Cultivars[*comb.CultivarID]; ok {
			res.CultivarName = ptr(c.DisplayName)
		}
	}
	if comb.LotID != nil {
		if l, ok := s.Lots[*comb.LotID]; ok {
			res.LotName = ptr(l.DisplayName)
		}
	}
	return res, nil
}

// Latest returns the latest of the given timestamps, nil if all are nil.
func Latest(ts ...*time.Time) *time.Time {
	var res *time.Time
	for _, v := range ts {
		if v != nil && (res == nil || v.After(*res)) {
			res = v
		}
	}
	if res == nil {
		return nil
	}
	t := *res
	return &t
}

func ptr[T any](v T) *T {
	return &v
}
