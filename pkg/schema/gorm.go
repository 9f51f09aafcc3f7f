package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate. Referenced
// tables come first.
func AllModels() []any {
	return []any{
		&Crossing{},
		&Lot{},
		&Cultivar{},
		&PlantGroup{},
		&Plant{},
		&Tree{},
		&Pollen{},
		&MotherPlant{},
		&MotherTree{},
		&Attribute{},
		&AttributionForm{},
		&Attribution{},
		&AttributionValue{},
		&Mark{},
		&MarkValue{},
		&CachedAttribution{},
		&AttributionView{},
		&MarkView{},
	}
}

// Indexes returns the index DDL of all models in AllModels order.
func Indexes() []string {
	var res []string
	for _, m := range AllModels() {
		if idx, ok := m.(Indexer); ok {
			res = append(res, idx.IndexDDL()...)
		}
	}
	return res
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
