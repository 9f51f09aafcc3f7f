package association_test

import (
	"testing"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/association"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(i uint) *uint { return &i }

func code(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "error should be of type *gn.Error")
	return gnErr.Code
}

func TestAttributionTarget(t *testing.T) {
	tests := []struct {
		msg    string
		target association.AttributionTarget
		ok     bool
	}{
		{"none", association.AttributionTarget{}, false},
		{"plant", association.AttributionTarget{PlantID: id(1)}, true},
		{"plant group", association.AttributionTarget{PlantGroupID: id(1)}, true},
		{"cultivar", association.AttributionTarget{CultivarID: id(1)}, true},
		{"lot", association.AttributionTarget{LotID: id(1)}, true},
		{"plant and lot",
			association.AttributionTarget{PlantID: id(1), LotID: id(2)}, false},
		{"all four", association.AttributionTarget{PlantID: id(1),
			PlantGroupID: id(1), CultivarID: id(1), LotID: id(1)}, false},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			err := v.target.Validate()
			if v.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, errcode.AssociationExclusivityError, code(t, err))
			assert.Equal(t,
				"An attribution must be associated with exactly one of "+
					"plant, plant_group, cultivar or lot.",
				errcode.Message(err))
		})
	}
}

func TestMarkTarget(t *testing.T) {
	assert.NoError(t, association.MarkTarget{TreeID: id(1)}.Validate())
	assert.NoError(t, association.MarkTarget{LotID: id(1)}.Validate())

	for _, v := range []association.MarkTarget{
		{},
		{TreeID: id(1), CultivarID: id(2)},
		{TreeID: id(1), CultivarID: id(2), LotID: id(3)},
	} {
		err := v.Validate()
		assert.Equal(t, errcode.AssociationExclusivityError, code(t, err))
		assert.Equal(t,
			"A mark must be associated with exactly one of tree, cultivar or lot.",
			errcode.Message(err))
	}
}

func TestCheckMotherAndFather(t *testing.T) {
	assert.NoError(t, association.CheckMother(nil, 4))
	assert.NoError(t, association.CheckMother(id(4), 4))
	assert.Equal(t, errcode.MotherCultivarError,
		code(t, association.CheckMother(id(4), 5)))

	assert.NoError(t, association.CheckFather(nil, 4))
	assert.NoError(t, association.CheckFather(id(4), 4))
	assert.Equal(t, errcode.FatherCultivarError,
		code(t, association.CheckFather(id(4), 5)))
}

func TestCheckMotherChange(t *testing.T) {
	tests := []struct {
		msg    string
		next   *uint
		linked []uint
		ok     bool
	}{
		{"nothing linked", id(9), nil, true},
		{"unset", nil, []uint{1, 2}, true},
		{"matches all", id(1), []uint{1, 1}, true},
		{"matches one only", id(1), []uint{1, 2}, false},
		{"matches none", id(3), []uint{1}, false},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			err := association.CheckMotherChange(v.next, v.linked)
			if v.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, errcode.MotherCultivarError, code(t, err))
			assert.Equal(t, errcode.ClassBusinessRule,
				errcode.ClassOf(errcode.Code(err)))
		})
	}

	err := association.CheckFatherChange(id(2), []uint{1})
	assert.Equal(t, errcode.FatherCultivarError, code(t, err))
	assert.NoError(t, association.CheckFatherChange(nil, []uint{1}))
}

func TestCheckMoves(t *testing.T) {
	assert.NoError(t, association.CheckMotherMove(2, []*uint{nil, id(2)}))
	assert.Equal(t, errcode.MotherCultivarError,
		code(t, association.CheckMotherMove(2, []*uint{id(1)})))

	assert.NoError(t, association.CheckPollenMove(2, nil))
	assert.Equal(t, errcode.FatherCultivarError,
		code(t, association.CheckPollenMove(2, []*uint{id(3)})))
}
