// Package breeding defines the Store of the breeding records core: the
// write operations on every record kind, point reads, the filtered reads
// of the attribution cache and views, view refreshes and label id
// allocation. Records returned by the Store are pkg/schema models.
package breeding

import (
	"context"
	"time"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/attribute"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
)

// Store is the record-level interface of the breeding core. Every write
// runs its checks, the name cascade and the cache update in one
// transaction. A failed write leaves no trace.
type Store interface {
	// Create validates and inserts a record of the input's kind.
	Create(ctx context.Context, in Input) (any, error)

	// Update replaces the settable fields of record id with the input.
	Update(ctx context.Context, id uint, in Input) (any, error)

	// Get returns the record of the kind with the id.
	Get(ctx context.Context, kind Kind, id uint) (any, error)

	// Delete removes a record. Records still referenced by other records
	// can not be deleted, attributions and marks take their values along.
	Delete(ctx context.Context, kind Kind, id uint) error

	// CanChangeDataType reports whether the attribute may switch to the
	// data type, which is the case when no value references it.
	CanChangeDataType(
		ctx context.Context,
		attributeID uint,
		dt attribute.DataType,
	) (bool, error)

	// CachedAttributions reads the eager cache table.
	CachedAttributions(
		ctx context.Context,
		f AttributionFilter,
	) ([]schema.CachedAttribution, error)

	// AttributionsView reads the lazy attributions view as of its last
	// refresh.
	AttributionsView(
		ctx context.Context,
		f AttributionFilter,
	) ([]schema.AttributionView, error)

	// MarksView reads the lazy marks view as of its last refresh.
	MarksView(ctx context.Context, f MarkFilter) ([]schema.MarkView, error)

	// RefreshAttributionsView recomputes the attributions view.
	RefreshAttributionsView(ctx context.Context) (*RefreshResult, error)

	// RefreshMarksView recomputes the marks view.
	RefreshMarksView(ctx context.Context) (*RefreshResult, error)

	// RebuildCache recomputes every row of the cache table and returns
	// the number of rows written.
	RebuildCache(ctx context.Context) (int, error)

	// NextFreeLabelID returns the lowest label id at or above seed not
	// used by a plant that is not eliminated.
	NextFreeLabelID(ctx context.Context, seed string) (string, error)
}

// RefreshResult summarizes a view refresh.
type RefreshResult struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Deleted   int `json:"deleted"`
	Unchanged int `json:"unchanged"`

	// Rows has the bookkeeping of every row in the view after the
	// refresh, ordered by id.
	Rows []RowCheck `json:"rows"`

	// Duration of the refresh.
	Duration time.Duration `json:"duration"`
}

// RowCheck is the bookkeeping of one view row.
type RowCheck struct {
	ID         uint      `json:"id"`
	LastCheck  time.Time `json:"last_check"`
	LastChange time.Time `json:"last_change"`
}

// AttributionFilter selects rows of the attribution cache or view. Unset
// fields do not filter. Combined ids select rows recorded at the level
// itself or anywhere below it.
type AttributionFilter struct {
	AttributeID          *uint `mapstructure:"attribute_id"`
	AttributionID        *uint `mapstructure:"attribution_id"`
	AttributionFormID    *uint `mapstructure:"attribution_form_id"`
	PlantID              *uint `mapstructure:"plant_id"`
	PlantGroupID         *uint `mapstructure:"plant_group_id"`
	CultivarID           *uint `mapstructure:"cultivar_id"`
	LotID                *uint `mapstructure:"lot_id"`
	CombinedPlantGroupID *uint `mapstructure:"combined_plant_group_id"`
	CombinedCultivarID   *uint `mapstructure:"combined_cultivar_id"`
	CombinedLotID        *uint `mapstructure:"combined_lot_id"`
}

// Conditions returns the set fields as column equality conditions.
func (f AttributionFilter) Conditions() map[string]any {
	return conditions(map[string]*uint{
		"attribute_id":            f.AttributeID,
		"attribution_id":          f.AttributionID,
		"attribution_form_id":     f.AttributionFormID,
		"plant_id":                f.PlantID,
		"plant_group_id":          f.PlantGroupID,
		"cultivar_id":             f.CultivarID,
		"lot_id":                  f.LotID,
		"combined_plant_group_id": f.CombinedPlantGroupID,
		"combined_cultivar_id":    f.CombinedCultivarID,
		"combined_lot_id":         f.CombinedLotID,
	})
}

// MarkFilter selects rows of the marks view.
type MarkFilter struct {
	AttributeID        *uint `mapstructure:"attribute_id"`
	MarkID             *uint `mapstructure:"mark_id"`
	TreeID             *uint `mapstructure:"tree_id"`
	CultivarID         *uint `mapstructure:"cultivar_id"`
	LotID              *uint `mapstructure:"lot_id"`
	CombinedCultivarID *uint `mapstructure:"combined_cultivar_id"`
	CombinedLotID      *uint `mapstructure:"combined_lot_id"`
}

// Conditions returns the set fields as column equality conditions.
func (f MarkFilter) Conditions() map[string]any {
	return conditions(map[string]*uint{
		"attribute_id":         f.AttributeID,
		"mark_id":              f.MarkID,
		"tree_id":              f.TreeID,
		"cultivar_id":          f.CultivarID,
		"lot_id":               f.LotID,
		"combined_cultivar_id": f.CombinedCultivarID,
		"combined_lot_id":      f.CombinedLotID,
	})
}

func conditions(fields map[string]*uint) map[string]any {
	res := make(map[string]any)
	for k, v := range fields {
		if v != nil {
			res[k] = *v
		}
	}
	return res
}
