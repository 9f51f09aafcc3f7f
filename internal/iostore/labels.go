package iostore

import (
	"context"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/label"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
)

// NextFreeLabelID returns the lowest label id at or above seed that no
// plant in use carries. Labels of eliminated plants start with # and sort
// below every digit, so the range query skips them.
func (s *store) NextFreeLabelID(ctx context.Context, seed string) (string, error) {
	start, err := label.Normalize(seed)
	if err != nil {
		return "", err
	}

	var used []string
	err = s.db.WithContext(ctx).Model(&schema.Plant{}).
		Where("label_id >= ?", start).
		Order("label_id").
		Pluck("label_id", &used).Error
	if err != nil {
		return "", QueryError(err)
	}
	return label.NextFree(start, used)
}
