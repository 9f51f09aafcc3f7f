package rollup_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/rollup"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

var (
	t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t0.Add(2 * time.Hour)
)

// sources has lot 1 > cultivar 2 > plant group 3 > plant 4, and tree 5 on
// cultivar 2.
func sources() *rollup.Sources {
	s := rollup.NewSources()
	s.Lots[1] = &schema.Lot{ID: 1, DisplayName: "Abcd.24A"}
	s.Cultivars[2] = &schema.Cultivar{ID: 2, LotID: 1, DisplayName: "Golden"}
	s.PlantGroups[3] = &schema.PlantGroup{ID: 3, CultivarID: 2,
		DisplayName: "Abcd.24A.Gala.grp"}
	s.Plants[4] = &schema.Plant{ID: 4, PlantGroupID: 3, CultivarID: 2,
		LabelID: "00000001"}
	s.Trees[5] = &schema.Tree{ID: 5, CultivarID: 2, LabelID: "00000007"}
	s.Attributes[10] = &schema.Attribute{ID: 10, Name: "Height",
		DataType: "INTEGER", AttributeType: "OBSERVATION", Modified: &t1}
	s.Forms[20] = &schema.AttributionForm{ID: 20, Name: "Field"}
	return s
}

func TestCombineAttribution(t *testing.T) {
	s := sources()
	tests := []struct {
		msg        string
		attr       schema.Attribution
		pg, cv, lt *uint
	}{
		{"plant", schema.Attribution{PlantID: ptr(uint(4))},
			ptr(uint(3)), ptr(uint(2)), ptr(uint(1))},
		{"plant group", schema.Attribution{PlantGroupID: ptr(uint(3))},
			ptr(uint(3)), ptr(uint(2)), ptr(uint(1))},
		{"cultivar", schema.Attribution{CultivarID: ptr(uint(2))},
			nil, ptr(uint(2)), ptr(uint(1))},
		{"lot", schema.Attribution{LotID: ptr(uint(1))},
			nil, nil, ptr(uint(1))},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := s.CombineAttribution(&v.attr)
			require.NoError(t, err)
			assert.Equal(t, v.pg, res.PlantGroupID)
			assert.Equal(t, v.cv, res.CultivarID)
			assert.Equal(t, v.lt, res.LotID)
		})
	}

	_, err := s.CombineAttribution(&schema.Attribution{PlantID: ptr(uint(99))})
	require.Error(t, err)
	assert.Equal(t, errcode.NotFoundError, errcode.Code(err))
}

func TestCombineMark(t *testing.T) {
	s := sources()
	res, err := s.CombineMark(&schema.Mark{TreeID: ptr(uint(5))})
	require.NoError(t, err)
	assert.Equal(t, uint(2), *res.CultivarID)
	assert.Equal(t, uint(1), *res.LotID)
	assert.Nil(t, res.PlantGroupID)

	res, err = s.CombineMark(&schema.Mark{LotID: ptr(uint(1))})
	require.NoError(t, err)
	assert.Nil(t, res.CultivarID)
}

func TestBuildAttribution(t *testing.T) {
	s := sources()
	s.Attributions[30] = &schema.Attribution{ID: 30, Author: "ann",
		DateAttributed: t0, AttributionFormID: 20, PlantID: ptr(uint(4)),
		Modified: &t2}
	v := &schema.AttributionValue{ID: 40, AttributeID: 10, AttributionID: 30,
		TypedValue: schema.TypedValue{IntegerValue: ptr(int64(7))},
		Created:    t0}

	rec, err := s.BuildAttribution(v)
	require.NoError(t, err)
	assert.Equal(t, uint(40), rec.ID)
	assert.Equal(t, "Height", rec.AttributeName)
	assert.Equal(t, int64(7), *rec.IntegerValue)
	assert.Equal(t, "Field", rec.AttributionFormName)
	assert.Equal(t, "00000001", *rec.PlantLabelID)
	assert.Equal(t, "Abcd.24A.Gala.grp", *rec.PlantGroupName)
	assert.Equal(t, "Golden", *rec.CultivarName)
	assert.Equal(t, "Abcd.24A", *rec.LotName)
	assert.Equal(t, uint(2), *rec.CombinedCultivarID)
	assert.Nil(t, rec.CultivarID)
	assert.Equal(t, t0, rec.Created)
	assert.Equal(t, t2, *rec.Modified)

	t.Run("missing form", func(t *testing.T) {
		s.Attributions[31] = &schema.Attribution{ID: 31, AttributionFormID: 99,
			LotID: ptr(uint(1))}
		_, err := s.BuildAttribution(&schema.AttributionValue{ID: 41,
			AttributeID: 10, AttributionID: 31})
		require.Error(t, err)
		assert.Equal(t, "attribution_form 99 not found.", errcode.Message(err))
	})
}

func TestBuildMark(t *testing.T) {
	s := sources()
	s.Marks[50] = &schema.Mark{ID: 50, Author: "bob", DateMarked: t0,
		TreeID: ptr(uint(5))}
	rec, err := s.BuildMark(&schema.MarkValue{ID: 60, AttributeID: 10,
		MarkID: 50, Created: t0, Modified: &t2})
	require.NoError(t, err)
	assert.Equal(t, "00000007", *rec.TreeLabelID)
	assert.Equal(t, "Golden", *rec.CultivarName)
	assert.Equal(t, uint(1), *rec.CombinedLotID)
	assert.Equal(t, t2, *rec.Modified)
}

func TestLatest(t *testing.T) {
	assert.Nil(t, rollup.Latest(nil, nil))
	assert.Equal(t, t2, *rollup.Latest(&t1, nil, &t2, &t0))
}

func TestChecksum(t *testing.T) {
	a := schema.AttributionRecord{ID: 1, AttributeName: "Height"}
	b := a
	sa, err := rollup.Checksum(a)
	require.NoError(t, err)
	sb, err := rollup.Checksum(b)
	require.NoError(t, err)
	assert.Equal(t, sa, sb)
	assert.Len(t, sa, 36)

	b.AttributeName = "Width"
	sb, err = rollup.Checksum(b)
	require.NoError(t, err)
	assert.NotEqual(t, sa, sb)
}

func TestDiff(t *testing.T) {
	current := map[uint]string{1: "a", 2: "b", 3: "c"}
	next := map[uint]string{2: "b", 3: "x", 5: "e", 4: "d"}

	plan := rollup.Diff(current, next)
	assert.Equal(t, []uint{4, 5}, plan.Insert)
	assert.Equal(t, []uint{3}, plan.Update)
	assert.Equal(t, []uint{1}, plan.Delete)
	assert.Equal(t, []uint{2}, plan.Unchanged)

	assert.Empty(t, rollup.Diff(nil, nil).Insert)
}

func TestBuildAll(t *testing.T) {
	in := make([]int, 101)
	for i := range in {
		in[i] = i
	}

	res, err := rollup.BuildAll(context.Background(), in, 4,
		func(i int) (int, error) { return i * 2, nil })
	require.NoError(t, err)
	require.Len(t, res, 101)
	for i, v := range res {
		assert.Equal(t, i*2, v)
	}

	boom := errors.New("boom")
	_, err = rollup.BuildAll(context.Background(), in, 3,
		func(i int) (int, error) {
			if i == 50 {
				return 0, boom
			}
			return i, nil
		})
	assert.ErrorIs(t, err, boom)

	res, err = rollup.BuildAll(context.Background(), []int{}, 0,
		func(i int) (int, error) { return i, nil })
	require.NoError(t, err)
	assert.Empty(t, res)
}
