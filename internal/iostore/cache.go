package iostore

import (
	"log/slog"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/rollup"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// syncCache brings the cached attributions of the given attribution
// values in line with the normalized tables. Values that no longer exist
// lose their cache rows.
func (s *store) syncCache(tx *gorm.DB, valueIDs []uint) error {
	valueIDs = unique(valueIDs)
	if len(valueIDs) == 0 {
		return nil
	}

	values, err := findIn[schema.AttributionValue](tx, "id", valueIDs, s.batch)
	if err != nil {
		return err
	}

	src, err := s.attributionSources(tx, values)
	if err != nil {
		return err
	}

	rows := make([]schema.CachedAttribution, 0, len(values))
	found := make(map[uint]struct{}, len(values))
	for i := range values {
		rec, err := src.BuildAttribution(&values[i])
		if err != nil {
			return err
		}
		rows = append(rows, schema.CachedAttribution{AttributionRecord: rec})
		found[rec.ID] = struct{}{}
	}

	var gone []uint
	for _, id := range valueIDs {
		if _, ok := found[id]; !ok {
			gone = append(gone, id)
		}
	}

	if err = s.upsertCache(tx, rows); err != nil {
		return err
	}
	if err = s.deleteCache(tx, gone); err != nil {
		return err
	}

	slog.Debug("Synced attribution cache",
		"upserted", len(rows), "deleted", len(gone))
	return nil
}

func (s *store) upsertCache(tx *gorm.DB, rows []schema.CachedAttribution) error {
	if len(rows) == 0 {
		return nil
	}
	err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(rows, s.batch).Error
	if err != nil {
		return QueryError(err)
	}
	return nil
}

func (s *store) deleteCache(tx *gorm.DB, ids []uint) error {
	for _, chunk := range chunks(ids, s.batch) {
		err := tx.Where("id IN ?", chunk).
			Delete(&schema.CachedAttribution{}).Error
		if err != nil {
			return QueryError(err)
		}
	}
	return nil
}

// attributionSources loads every row the records of values are built
// from.
func (s *store) attributionSources(
	tx *gorm.DB,
	values []schema.AttributionValue,
) (*rollup.Sources, error) {
	src := rollup.NewSources()

	var attrIDs, attributionIDs []uint
	for _, v := range values {
		attrIDs = append(attrIDs, v.AttributeID)
		attributionIDs = append(attributionIDs, v.AttributionID)
	}
	if err := loadInto(tx, src.Attributes, attrIDs, s.batch,
		func(v *schema.Attribute) uint { return v.ID }); err != nil {
		return nil, err
	}
	if err := loadInto(tx, src.Attributions, attributionIDs, s.batch,
		func(v *schema.Attribution) uint { return v.ID }); err != nil {
		return nil, err
	}

	var formIDs, plantIDs, groupIDs, cultivarIDs, lotIDs []uint
	for _, a := range src.Attributions {
		formIDs = append(formIDs, a.AttributionFormID)
		plantIDs = appendPtr(plantIDs, a.PlantID)
		groupIDs = appendPtr(groupIDs, a.PlantGroupID)
		cultivarIDs = appendPtr(cultivarIDs, a.CultivarID)
		lotIDs = appendPtr(lotIDs, a.LotID)
	}
	if err := loadInto(tx, src.Forms, formIDs, s.batch,
		func(v *schema.AttributionForm) uint { return v.ID }); err != nil {
		return nil, err
	}
	if err := loadInto(tx, src.Plants, plantIDs, s.batch,
		func(v *schema.Plant) uint { return v.ID }); err != nil {
		return nil, err
	}

	for _, p := range src.Plants {
		groupIDs = append(groupIDs, p.PlantGroupID)
	}
	if err := loadInto(tx, src.PlantGroups, groupIDs, s.batch,
		func(v *schema.PlantGroup) uint { return v.ID }); err != nil {
		return nil, err
	}

	for _, pg := range src.PlantGroups {
		cultivarIDs = append(cultivarIDs, pg.CultivarID)
	}
	if err := loadInto(tx, src.Cultivars, cultivarIDs, s.batch,
		func(v *schema.Cultivar) uint { return v.ID }); err != nil {
		return nil, err
	}

	for _, c := range src.Cultivars {
		lotIDs = append(lotIDs, c.LotID)
	}
	if err := loadInto(tx, src.Lots, lotIDs, s.batch,
		func(v *schema.Lot) uint { return v.ID }); err != nil {
		return nil, err
	}
	return src, nil
}

// markSources loads every row the records of values are built from.
func (s *store) markSources(
	tx *gorm.DB,
	values []schema.MarkValue,
) (*rollup.Sources, error) {
	src := rollup.NewSources()

	var attrIDs, markIDs []uint
	for _, v := range values {
		attrIDs = append(attrIDs, v.AttributeID)
		markIDs = append(markIDs, v.MarkID)
	}
	if err := loadInto(tx, src.Attributes, attrIDs, s.batch,
		func(v *schema.Attribute) uint { return v.ID }); err != nil {
		return nil, err
	}
	if err := loadInto(tx, src.Marks, markIDs, s.batch,
		func(v *schema.Mark) uint { return v.ID }); err != nil {
		return nil, err
	}

	var treeIDs, cultivarIDs, lotIDs []uint
	for _, m := range src.Marks {
		treeIDs = appendPtr(treeIDs, m.TreeID)
		cultivarIDs = appendPtr(cultivarIDs, m.CultivarID)
		lotIDs = appendPtr(lotIDs, m.LotID)
	}
	if err := loadInto(tx, src.Trees, treeIDs, s.batch,
		func(v *schema.Tree) uint { return v.ID }); err != nil {
		return nil, err
	}

	for _, t := range src.Trees {
		cultivarIDs = append(cultivarIDs, t.CultivarID)
	}
	if err := loadInto(tx, src.Cultivars, cultivarIDs, s.batch,
		func(v *schema.Cultivar) uint { return v.ID }); err != nil {
		return nil, err
	}

	for _, c := range src.Cultivars {
		lotIDs = append(lotIDs, c.LotID)
	}
	if err := loadInto(tx, src.Lots, lotIDs, s.batch,
		func(v *schema.Lot) uint { return v.ID }); err != nil {
		return nil, err
	}
	return src, nil
}

// loadInto loads the rows with the given ids into m, skipping ids that
// are already there.
func loadInto[T any](
	tx *gorm.DB,
	m map[uint]*T,
	ids []uint,
	batch int,
	key func(*T) uint,
) error {
	var missing []uint
	for _, id := range unique(ids) {
		if _, ok := m[id]; !ok {
			missing = append(missing, id)
		}
	}
	rows, err := findIn[T](tx, "id", missing, batch)
	if err != nil {
		return err
	}
	for i := range rows {
		m[key(&rows[i])] = &rows[i]
	}
	return nil
}

func appendPtr(ids []uint, id *uint) []uint {
	if id == nil {
		return ids
	}
	return append(ids, *id)
}
