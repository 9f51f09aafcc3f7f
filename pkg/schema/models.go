// Package schema provides the database models of breedersdb.
// Models are mapped by GORM; derived columns are written by the store and
// never accepted from callers.
package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Crossing is the root of the breeding hierarchy.
type Crossing struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the short code of the crossing. It is the first segment of
	// every descendant full name.
	Name string `gorm:"size:8;not null" json:"name"`

	// IsVariety marks crossings that hold varieties instead of
	// seedlings. Descendants copy it.
	IsVariety bool `gorm:"not null" json:"is_variety"`

	// MotherCultivarID is the cultivar all mother plants must belong to.
	MotherCultivarID *uint `gorm:"index" json:"mother_cultivar_id"`

	// FatherCultivarID is the cultivar all pollen must belong to.
	FatherCultivarID *uint `gorm:"index" json:"father_cultivar_id"`

	Description *string    `json:"description"`
	Created     time.Time  `gorm:"not null" json:"created"`
	Modified    *time.Time `json:"modified"`
}

func (Crossing) TableName() string { return "crossings" }

// Lot is a batch of seeds or plants of a crossing.
type Lot struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CrossingID uint `gorm:"not null;index" json:"crossing_id"`

	// NameSegment is the lot part of the name, e.g. 24A.
	NameSegment string `gorm:"size:3;not null" json:"name_segment"`

	// FullName is crossing name and segment joined by a dot. Derived.
	FullName string `gorm:"size:255;not null" json:"full_name"`

	// DisplayName is NameOverride if set, FullName otherwise. Derived.
	DisplayName string `gorm:"size:255;not null" json:"display_name"`

	NameOverride *string `gorm:"size:45" json:"name_override"`

	// IsVariety is copied from the crossing. Derived.
	IsVariety bool `gorm:"not null" json:"is_variety"`

	// OrchardID is a plain reference, orchards are managed elsewhere.
	OrchardID *uint      `json:"orchard_id"`
	DateSowed *time.Time `json:"date_sowed"`
	Note      *string    `json:"note"`
	Created   time.Time  `gorm:"not null" json:"created"`
	Modified  *time.Time `json:"modified"`
}

func (Lot) TableName() string { return "lots" }

// Cultivar is a selection within a lot.
type Cultivar struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	LotID        uint       `gorm:"not null;index" json:"lot_id"`
	NameSegment  string     `gorm:"size:25;not null" json:"name_segment"`
	FullName     string     `gorm:"size:255;not null" json:"full_name"`
	DisplayName  string     `gorm:"size:255;not null" json:"display_name"`
	NameOverride *string    `gorm:"size:45" json:"name_override"`
	IsVariety    bool       `gorm:"not null" json:"is_variety"`
	Acronym      *string    `gorm:"size:10" json:"acronym"`
	Breeder      *string    `gorm:"size:255" json:"breeder"`
	Registration *string    `gorm:"size:255" json:"registration"`
	Note         *string    `json:"note"`
	Created      time.Time  `gorm:"not null" json:"created"`
	Modified     *time.Time `json:"modified"`
}

func (Cultivar) TableName() string { return "cultivars" }

// PlantGroup collects the plants of a cultivar that share a treatment.
type PlantGroup struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CultivarID uint `gorm:"not null;index" json:"cultivar_id"`

	// CultivarName is the display name of the cultivar. Derived.
	CultivarName string `gorm:"size:255;not null" json:"cultivar_name"`

	NameSegment  string     `gorm:"size:25;not null" json:"name_segment"`
	FullName     string     `gorm:"size:255;not null" json:"full_name"`
	DisplayName  string     `gorm:"size:255;not null" json:"display_name"`
	NameOverride *string    `gorm:"size:45" json:"name_override"`
	IsVariety    bool       `gorm:"not null" json:"is_variety"`
	Disabled     bool       `gorm:"not null" json:"disabled"`
	Note         *string    `json:"note"`
	Created      time.Time  `gorm:"not null" json:"created"`
	Modified     *time.Time `json:"modified"`
}

func (PlantGroup) TableName() string { return "plant_groups" }

// Plant is a single labelled plant.
type Plant struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// LabelID is an eight digit number, prefixed with # once the plant
	// is eliminated.
	LabelID      string `gorm:"size:9;not null" json:"label_id"`
	PlantGroupID uint   `gorm:"not null;index" json:"plant_group_id"`

	// PlantGroupName, CultivarID and CultivarName follow the plant group.
	// Derived.
	PlantGroupName string `gorm:"size:255;not null" json:"plant_group_name"`
	CultivarID     uint   `gorm:"not null;index" json:"cultivar_id"`
	CultivarName   string `gorm:"size:255;not null" json:"cultivar_name"`

	IsVariety      bool       `gorm:"not null" json:"is_variety"`
	DatePlanted    *time.Time `json:"date_planted"`
	DateEliminated *time.Time `json:"date_eliminated"`
	Disabled       bool       `gorm:"not null" json:"disabled"`
	Note           *string    `json:"note"`
	Created        time.Time  `gorm:"not null" json:"created"`
	Modified       *time.Time `json:"modified"`
}

func (Plant) TableName() string { return "plants" }

// Tree is a labelled tree of the older tree centric hierarchy. It belongs
// directly to a cultivar.
type Tree struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	LabelID        string     `gorm:"size:9;not null" json:"label_id"`
	CultivarID     uint       `gorm:"not null;index" json:"cultivar_id"`
	CultivarName   string     `gorm:"size:255;not null" json:"cultivar_name"`
	DatePlanted    *time.Time `json:"date_planted"`
	DateEliminated *time.Time `json:"date_eliminated"`
	Note           *string    `json:"note"`
	Created        time.Time  `gorm:"not null" json:"created"`
	Modified       *time.Time `json:"modified"`
}

func (Tree) TableName() string { return "trees" }

// Pollen is harvested pollen of a cultivar.
type Pollen struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:45;not null" json:"name"`
	CultivarID    uint       `gorm:"not null;index" json:"cultivar_id"`
	DateHarvested *time.Time `json:"date_harvested"`
	Note          *string    `json:"note"`
	Created       time.Time  `gorm:"not null" json:"created"`
	Modified      *time.Time `json:"modified"`
}

func (Pollen) TableName() string { return "pollen" }

// MotherPlant records a plant used as mother of a crossing.
type MotherPlant struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:45;not null" json:"name"`
	PlantID         uint       `gorm:"not null;index" json:"plant_id"`
	PollenID        *uint      `gorm:"index" json:"pollen_id"`
	CrossingID      uint       `gorm:"not null;index" json:"crossing_id"`
	DateImpregnated *time.Time `json:"date_impregnated"`
	NumbFlowers     *int       `json:"numb_flowers"`
	NumbFruits      *int       `json:"numb_fruits"`
	NumbSeeds       *int       `json:"numb_seeds"`
	Note            *string    `json:"note"`
	Created         time.Time  `gorm:"not null" json:"created"`
	Modified        *time.Time `json:"modified"`
}

func (MotherPlant) TableName() string { return "mother_plants" }

// MotherTree records a tree used as mother of a crossing.
type MotherTree struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Code           string     `gorm:"size:45;not null" json:"code"`
	TreeID         uint       `gorm:"not null;index" json:"tree_id"`
	CrossingID     uint       `gorm:"not null;index" json:"crossing_id"`
	DatePollinated *time.Time `json:"date_pollinated"`
	NumbFlowers    *int       `json:"numb_flowers"`
	NumbFruits     *int       `json:"numb_fruits"`
	NumbSeeds      *int       `json:"numb_seeds"`
	Note           *string    `json:"note"`
	Created        time.Time  `gorm:"not null" json:"created"`
	Modified       *time.Time `json:"modified"`
}

func (MotherTree) TableName() string { return "mother_trees" }

// Attribute defines a typed field that can be recorded on the hierarchy.
type Attribute struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:45;not null" json:"name"`

	// DataType is one of INTEGER, FLOAT, RATING, TEXT, BOOLEAN, DATE,
	// PHOTO.
	DataType string `gorm:"size:10;not null" json:"data_type"`

	// AttributeType is one of OBSERVATION, TREATMENT, SAMPLE, OTHER.
	AttributeType string `gorm:"size:12;not null" json:"attribute_type"`

	// ValidationRule is {"min":..,"max":..,"step":..} for numeric types
	// and NULL otherwise.
	ValidationRule datatypes.JSON `json:"validation_rule"`

	DefaultValue datatypes.JSON `json:"default_value"`

	// Legend holds one label per rating step.
	Legend      datatypes.JSON `json:"legend"`
	Description *string        `json:"description"`
	Disabled    bool           `gorm:"not null" json:"disabled"`
	Created     time.Time      `gorm:"not null" json:"created"`
	Modified    *time.Time     `json:"modified"`
}

func (Attribute) TableName() string { return "attributes" }

// AttributionForm groups attributes for data entry.
type AttributionForm struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:45;not null" json:"name"`
	Description *string    `json:"description"`
	Disabled    bool       `gorm:"not null" json:"disabled"`
	Created     time.Time  `gorm:"not null" json:"created"`
	Modified    *time.Time `json:"modified"`
}

func (AttributionForm) TableName() string { return "attribution_forms" }

// Attribution is an observation event on exactly one of plant, plant
// group, cultivar or lot.
type Attribution struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Author            string     `gorm:"size:45;not null" json:"author"`
	DateAttributed    time.Time  `gorm:"not null" json:"date_attributed"`
	AttributionFormID uint       `gorm:"not null;index" json:"attribution_form_id"`
	PlantID           *uint      `gorm:"index" json:"plant_id"`
	PlantGroupID      *uint      `gorm:"index" json:"plant_group_id"`
	CultivarID        *uint      `gorm:"index" json:"cultivar_id"`
	LotID             *uint      `gorm:"index" json:"lot_id"`
	Created           time.Time  `gorm:"not null" json:"created"`
	Modified          *time.Time `json:"modified"`
}

func (Attribution) TableName() string { return "attributions" }

// TypedValue holds the value columns. Exactly one of them is set.
type TypedValue struct {
	IntegerValue *int64     `json:"integer_value"`
	FloatValue   *float64   `json:"float_value"`
	TextValue    *string    `json:"text_value"`
	BooleanValue *bool      `json:"boolean_value"`
	DateValue    *time.Time `json:"date_value"`
}

// AttributionValue is a value of an attribute recorded by an attribution.
type AttributionValue struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AttributeID   uint `gorm:"not null;index" json:"attribute_id"`
	AttributionID uint `gorm:"not null;index" json:"attribution_id"`
	TypedValue
	TextNote    *string `json:"text_note"`
	PhotoNote   *string `gorm:"size:255" json:"photo_note"`
	Exceptional bool    `gorm:"not null" json:"exceptional"`

	// OfflineID is the UUID a client assigned while offline.
	OfflineID *string    `gorm:"size:36" json:"offline_id"`
	Created   time.Time  `gorm:"not null" json:"created"`
	Modified  *time.Time `json:"modified"`
}

func (AttributionValue) TableName() string { return "attribution_values" }

// Mark is an observation event on exactly one of tree, cultivar or lot.
type Mark struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Author     string     `gorm:"size:45;not null" json:"author"`
	DateMarked time.Time  `gorm:"not null" json:"date_marked"`
	TreeID     *uint      `gorm:"index" json:"tree_id"`
	CultivarID *uint      `gorm:"index" json:"cultivar_id"`
	LotID      *uint      `gorm:"index" json:"lot_id"`
	Created    time.Time  `gorm:"not null" json:"created"`
	Modified   *time.Time `json:"modified"`
}

func (Mark) TableName() string { return "marks" }

// MarkValue is a value of an attribute recorded by a mark.
type MarkValue struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	AttributeID uint `gorm:"not null;index" json:"attribute_id"`
	MarkID      uint `gorm:"not null;index" json:"mark_id"`
	TypedValue
	Exceptional bool       `gorm:"not null" json:"exceptional"`
	Created     time.Time  `gorm:"not null" json:"created"`
	Modified    *time.Time `json:"modified"`
}

func (MarkValue) TableName() string { return "mark_values" }
