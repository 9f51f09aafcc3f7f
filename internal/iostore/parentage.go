package iostore

import (
	"strings"
	"unicode/utf8"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/breeding"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/association"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
	"gorm.io/gorm"
)

// nameMaxLength bounds the free names of pollen, mother plants, forms and
// the authors of attributions and marks.
const nameMaxLength = 45

// requireName trims a required short name.
func requireName(kind breeding.Kind, field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", RequiredError(kind, field)
	}
	if utf8.RuneCountInString(s) > nameMaxLength {
		return "", LengthError(kind, field, nameMaxLength)
	}
	return s, nil
}

func (s *store) writePollen(
	tx *gorm.DB,
	id uint,
	in *breeding.PollenInput,
) (*schema.Pollen, error) {
	name, err := requireName(breeding.Pollen, "name", in.Name)
	if err != nil {
		return nil, err
	}
	dup, err := exists(tx, &schema.Pollen{},
		foldEq(tx, "name")+" AND id <> ?", name, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, DuplicateError(breeding.Pollen, "name", name)
	}
	if _, err = first[schema.Cultivar](tx, breeding.Cultivars,
		in.CultivarID); err != nil {
		return nil, err
	}

	now := s.timestamp()
	rec := &schema.Pollen{Created: now}
	if id != 0 {
		if rec, err = first[schema.Pollen](tx, breeding.Pollen, id); err != nil {
			return nil, err
		}
		if rec.CultivarID != in.CultivarID {
			var fathers []*uint
			err = tx.Table("mother_plants").
				Joins("JOIN crossings ON crossings.id = mother_plants.crossing_id").
				Where("mother_plants.pollen_id = ?", id).
				Pluck("crossings.father_cultivar_id", &fathers).Error
			if err != nil {
				return nil, QueryError(err)
			}
			err = association.CheckPollenMove(in.CultivarID, fathers)
			if err != nil {
				return nil, err
			}
		}
		rec.Modified = &now
	}

	rec.Name = name
	rec.CultivarID = in.CultivarID
	rec.DateHarvested = in.DateHarvested
	rec.Note = in.Note
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *store) writeMotherPlant(
	tx *gorm.DB,
	id uint,
	in *breeding.MotherPlantInput,
) (*schema.MotherPlant, error) {
	name, err := requireName(breeding.MotherPlants, "name", in.Name)
	if err != nil {
		return nil, err
	}
	plant, err := first[schema.Plant](tx, breeding.Plants, in.PlantID)
	if err != nil {
		return nil, err
	}
	crossing, err := first[schema.Crossing](tx, breeding.Crossings,
		in.CrossingID)
	if err != nil {
		return nil, err
	}
	err = association.CheckMother(crossing.MotherCultivarID, plant.CultivarID)
	if err != nil {
		return nil, err
	}
	if in.PollenID != nil {
		pollen, err := first[schema.Pollen](tx, breeding.Pollen, *in.PollenID)
		if err != nil {
			return nil, err
		}
		err = association.CheckFather(crossing.FatherCultivarID,
			pollen.CultivarID)
		if err != nil {
			return nil, err
		}
	}

	now := s.timestamp()
	rec := &schema.MotherPlant{Created: now}
	if id != 0 {
		rec, err = first[schema.MotherPlant](tx, breeding.MotherPlants, id)
		if err != nil {
			return nil, err
		}
		rec.Modified = &now
	}

	rec.Name = name
	rec.PlantID = in.PlantID
	rec.PollenID = in.PollenID
	rec.CrossingID = in.CrossingID
	rec.DateImpregnated = in.DateImpregnated
	rec.NumbFlowers = in.NumbFlowers
	rec.NumbFruits = in.NumbFruits
	rec.NumbSeeds = in.NumbSeeds
	rec.Note = in.Note
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *store) writeMotherTree(
	tx *gorm.DB,
	id uint,
	in *breeding.MotherTreeInput,
) (*schema.MotherTree, error) {
	code, err := requireName(breeding.MotherTrees, "code", in.Code)
	if err != nil {
		return nil, err
	}
	tree, err := first[schema.Tree](tx, breeding.Trees, in.TreeID)
	if err != nil {
		return nil, err
	}
	crossing, err := first[schema.Crossing](tx, breeding.Crossings,
		in.CrossingID)
	if err != nil {
		return nil, err
	}
	err = association.CheckMother(crossing.MotherCultivarID, tree.CultivarID)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	rec := &schema.MotherTree{Created: now}
	if id != 0 {
		rec, err = first[schema.MotherTree](tx, breeding.MotherTrees, id)
		if err != nil {
			return nil, err
		}
		rec.Modified = &now
	}

	rec.Code = code
	rec.TreeID = in.TreeID
	rec.CrossingID = in.CrossingID
	rec.DatePollinated = in.DatePollinated
	rec.NumbFlowers = in.NumbFlowers
	rec.NumbFruits = in.NumbFruits
	rec.NumbSeeds = in.NumbSeeds
	rec.Note = in.Note
	if err = tx.Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}
