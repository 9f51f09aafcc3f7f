package schema

// Indexer is implemented by models that need indexes GORM tags can not
// express, such as case-insensitive unique indexes.
type Indexer interface {
	// TableName returns the table name of the model.
	TableName() string

	// IndexDDL returns CREATE INDEX statements for the model. Statements
	// are idempotent and valid for PostgreSQL and SQLite.
	IndexDDL() []string
}

func (Crossing) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_crossings_name " +
			"ON crossings (LOWER(name))",
	}
}

func (Lot) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_lots_segment " +
			"ON lots (crossing_id, name_segment)",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_lots_name_override " +
			"ON lots (LOWER(name_override))",
	}
}

func (Cultivar) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_cultivars_segment " +
			"ON cultivars (lot_id, name_segment)",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_cultivars_name_override " +
			"ON cultivars (LOWER(name_override))",
	}
}

func (PlantGroup) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_plant_groups_segment " +
			"ON plant_groups (cultivar_id, name_segment)",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_plant_groups_name_override " +
			"ON plant_groups (LOWER(name_override))",
	}
}

func (Plant) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_plants_label_id " +
			"ON plants (label_id)",
	}
}

func (Tree) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_trees_label_id " +
			"ON trees (label_id)",
	}
}

func (Attribute) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_attributes_name " +
			"ON attributes (LOWER(name))",
	}
}

func (AttributionForm) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_attribution_forms_name " +
			"ON attribution_forms (LOWER(name))",
	}
}

func (Pollen) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_pollen_name " +
			"ON pollen (LOWER(name))",
	}
}

func (AttributionValue) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_attribution_values_offline_id " +
			"ON attribution_values (offline_id)",
	}
}
