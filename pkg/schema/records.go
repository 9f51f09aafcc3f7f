package schema

import "time"

// AttributionRecord is one attribution value joined with its attribute,
// attribution, form and the resolved hierarchy above it. The eager cache
// table and the lazy view share it.
type AttributionRecord struct {
	// ID is the id of the attribution value.
	ID uint `gorm:"primaryKey;autoIncrement:false" json:"id"`

	AttributeID   uint   `gorm:"not null;index" json:"attribute_id"`
	AttributeName string `gorm:"size:45;not null" json:"attribute_name"`
	DataType      string `gorm:"size:10;not null" json:"data_type"`
	AttributeType string `gorm:"size:12;not null" json:"attribute_type"`
	TypedValue
	TextNote    *string `json:"text_note"`
	PhotoNote   *string `json:"photo_note"`
	Exceptional bool    `gorm:"not null" json:"exceptional"`

	AttributionID       uint      `gorm:"not null;index" json:"attribution_id"`
	Author              string    `gorm:"size:45;not null" json:"author"`
	DateAttributed      time.Time `gorm:"not null" json:"date_attributed"`
	AttributionFormID   uint      `gorm:"not null" json:"attribution_form_id"`
	AttributionFormName string    `gorm:"size:45;not null" json:"attribution_form_name"`

	// PlantID, PlantGroupID, CultivarID and LotID are the direct
	// references of the attribution. At most one of them is set.
	PlantID      *uint `gorm:"index" json:"plant_id"`
	PlantGroupID *uint `gorm:"index" json:"plant_group_id"`
	CultivarID   *uint `gorm:"index" json:"cultivar_id"`
	LotID        *uint `gorm:"index" json:"lot_id"`

	// Combined ids roll the direct reference up the hierarchy: the
	// plant group of a plant, the cultivar of a plant group and the lot
	// of a cultivar.
	CombinedPlantGroupID *uint `gorm:"index" json:"combined_plant_group_id"`
	CombinedCultivarID   *uint `gorm:"index" json:"combined_cultivar_id"`
	CombinedLotID        *uint `gorm:"index" json:"combined_lot_id"`

	// Names of the plant and of the combined ancestors.
	PlantLabelID   *string `gorm:"size:9" json:"plant_label_id"`
	PlantGroupName *string `gorm:"size:255" json:"plant_group_name"`
	CultivarName   *string `gorm:"size:255" json:"cultivar_name"`
	LotName        *string `gorm:"size:255" json:"lot_name"`

	// Created is copied from the attribution value.
	Created time.Time `gorm:"not null" json:"created"`

	// Modified is the latest modification of value, attribute or
	// attribution.
	Modified *time.Time `json:"modified"`
}

// CachedAttribution is a row of the eager cache table. It is kept in sync
// by every write that touches its sources.
type CachedAttribution struct {
	AttributionRecord
}

func (CachedAttribution) TableName() string { return "cached_attributions" }

// ViewBookkeeping are the columns a refresh maintains for every view row.
type ViewBookkeeping struct {
	// Checksum identifies the content of the row.
	Checksum string `gorm:"size:36;not null" json:"checksum"`

	// LastCheck is the time of the last refresh that saw the row.
	LastCheck time.Time `gorm:"not null" json:"last_check"`

	// LastChange is the time of the last refresh that changed the row.
	LastChange time.Time `gorm:"not null" json:"last_change"`
}

// AttributionView is a row of the lazy attributions view. Rows change only
// on refresh.
type AttributionView struct {
	AttributionRecord
	ViewBookkeeping
}

func (AttributionView) TableName() string { return "attributions_view" }

// MarkRecord is one mark value joined with its attribute, mark and the
// resolved tree, cultivar and lot.
type MarkRecord struct {
	// ID is the id of the mark value.
	ID uint `gorm:"primaryKey;autoIncrement:false" json:"id"`

	AttributeID   uint   `gorm:"not null;index" json:"attribute_id"`
	AttributeName string `gorm:"size:45;not null" json:"attribute_name"`
	DataType      string `gorm:"size:10;not null" json:"data_type"`
	AttributeType string `gorm:"size:12;not null" json:"attribute_type"`
	TypedValue
	Exceptional bool `gorm:"not null" json:"exceptional"`

	MarkID     uint      `gorm:"not null;index" json:"mark_id"`
	Author     string    `gorm:"size:45;not null" json:"author"`
	DateMarked time.Time `gorm:"not null" json:"date_marked"`

	TreeID     *uint `gorm:"index" json:"tree_id"`
	CultivarID *uint `gorm:"index" json:"cultivar_id"`
	LotID      *uint `gorm:"index" json:"lot_id"`

	CombinedCultivarID *uint `gorm:"index" json:"combined_cultivar_id"`
	CombinedLotID      *uint `gorm:"index" json:"combined_lot_id"`

	TreeLabelID  *string `gorm:"size:9" json:"tree_label_id"`
	CultivarName *string `gorm:"size:255" json:"cultivar_name"`
	LotName      *string `gorm:"size:255" json:"lot_name"`

	Created  time.Time  `gorm:"not null" json:"created"`
	Modified *time.Time `json:"modified"`
}

// MarkView is a row of the lazy marks view.
type MarkView struct {
	MarkRecord
	ViewBookkeeping
}

func (MarkView) TableName() string { return "marks_view" }
