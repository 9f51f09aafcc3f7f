package schema_test

import (
	"strings"
	"testing"
	"time"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		model interface{ TableName() string }
		name  string
	}{
		{schema.Crossing{}, "crossings"},
		{schema.Lot{}, "lots"},
		{schema.Cultivar{}, "cultivars"},
		{schema.PlantGroup{}, "plant_groups"},
		{schema.Plant{}, "plants"},
		{schema.Tree{}, "trees"},
		{schema.Pollen{}, "pollen"},
		{schema.MotherPlant{}, "mother_plants"},
		{schema.MotherTree{}, "mother_trees"},
		{schema.Attribute{}, "attributes"},
		{schema.AttributionForm{}, "attribution_forms"},
		{schema.Attribution{}, "attributions"},
		{schema.AttributionValue{}, "attribution_values"},
		{schema.Mark{}, "marks"},
		{schema.MarkValue{}, "mark_values"},
		{schema.CachedAttribution{}, "cached_attributions"},
		{schema.AttributionView{}, "attributions_view"},
		{schema.MarkView{}, "marks_view"},
	}

	assert.Len(t, schema.AllModels(), len(tests))
	for _, v := range tests {
		assert.Equal(t, v.name, v.model.TableName())
	}
}

func TestIndexes(t *testing.T) {
	idx := strings.Join(schema.Indexes(), "\n")
	assert.Contains(t, idx, "ON crossings (LOWER(name))")
	assert.Contains(t, idx, "ON cultivars (LOWER(name_override))")
	assert.Contains(t, idx, "ON lots (crossing_id, name_segment)")
	assert.Contains(t, idx, "ON attributes (LOWER(name))")
	for _, v := range schema.Indexes() {
		assert.True(t, strings.HasPrefix(v, "CREATE UNIQUE INDEX IF NOT EXISTS"), v)
	}
}

func TestMigrate(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, schema.Migrate(db))
	for _, v := range schema.Indexes() {
		require.NoError(t, db.Exec(v).Error, v)
	}

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, schema.Migrate(db))
	})

	t.Run("embedded columns", func(t *testing.T) {
		m := db.Migrator()
		assert.True(t, m.HasColumn(&schema.AttributionValue{}, "integer_value"))
		assert.True(t, m.HasColumn(&schema.CachedAttribution{}, "combined_cultivar_id"))
		assert.True(t, m.HasColumn(&schema.AttributionView{}, "last_change"))
		assert.True(t, m.HasColumn(&schema.MarkView{}, "tree_label_id"))
	})

	t.Run("case insensitive crossing name", func(t *testing.T) {
		now := time.Now()
		require.NoError(t, db.Create(&schema.Crossing{Name: "Abcd", Created: now}).Error)
		err := db.Create(&schema.Crossing{Name: "ABCD", Created: now}).Error
		assert.Error(t, err)
	})
}
