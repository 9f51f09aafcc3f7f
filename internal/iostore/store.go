// Package iostore implements breeding.Store on GORM. Every write runs in
// one transaction: input checks, existence and uniqueness checks, the
// write itself, the name cascade and the update of the attribution cache.
// This is an impure I/O package that implements contracts defined in
// pkg/.
package iostore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/breeding"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/config"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/db"
	"gorm.io/gorm"
)

// sqliteMaxBatch keeps inserts of wide view rows below the SQLite limit
// of bound variables.
const sqliteMaxBatch = 500

type store struct {
	db       *gorm.DB
	driver   string
	batch    int
	jobs     int
	now      func() time.Time
	progress bool

	// refreshMu serializes view refreshes and cache rebuilds within the
	// process. PostgreSQL advisory locks serialize across processes.
	refreshMu sync.Mutex
}

// Option configures the store.
type Option func(*store)

// OptNow sets the clock used for created, modified and view
// bookkeeping timestamps.
func OptNow(fn func() time.Time) Option {
	return func(s *store) {
		if fn != nil {
			s.now = fn
		}
	}
}

// OptProgress shows a progress bar while the cache is rebuilt.
func OptProgress(b bool) Option {
	return func(s *store) {
		s.progress = b
	}
}

// New creates a Store on a connected operator.
func New(
	op db.Operator,
	cfg *config.Config,
	opts ...Option,
) (breeding.Store, error) {
	gormDB := op.GORM()
	if gormDB == nil {
		return nil, NotConnectedError()
	}

	res := &store{
		db:     gormDB,
		driver: op.Driver(),
		batch:  cfg.Database.BatchSize,
		jobs:   cfg.JobsNumber,
		now:    func() time.Time { return time.Now() },
	}
	if res.driver == "sqlite" && res.batch > sqliteMaxBatch {
		res.batch = sqliteMaxBatch
	}
	if res.batch < 1 {
		res.batch = 1
	}
	for _, opt := range opts {
		opt(res)
	}
	return res, nil
}

// timestamp is the current time at the precision PostgreSQL keeps.
func (s *store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// transaction runs fn in a transaction. Errors that are not *gn.Error are
// classified on the way out.
func (s *store) transaction(
	ctx context.Context,
	fn func(tx *gorm.DB) error,
) error {
	err := s.db.WithContext(ctx).Transaction(fn)
	if err != nil {
		return dbError(err)
	}
	return nil
}

// first loads the record with the id or returns NotFoundError.
func first[T any](tx *gorm.DB, kind breeding.Kind, id uint) (*T, error) {
	var res T
	err := tx.First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundError(kind, id)
	}
	if err != nil {
		return nil, QueryError(err)
	}
	return &res, nil
}

// exists reports whether model has a row matching the condition.
func exists(tx *gorm.DB, model any, query string, args ...any) (bool, error) {
	var n int64
	err := tx.Model(model).Where(query, args...).Count(&n).Error
	if err != nil {
		return false, QueryError(err)
	}
	return n > 0, nil
}

// foldEq is a case-insensitive equality condition on column with one
// placeholder. SQLite compares through db.FoldFunc, its LOWER only folds
// ASCII letters.
func foldEq(tx *gorm.DB, column string) string {
	fn := "LOWER"
	if tx.Dialector.Name() == "sqlite" {
		fn = db.FoldFunc
	}
	return fn + "(" + column + ") = " + fn + "(?)"
}

// mustExist returns NotFoundError when id is set and has no row.
func mustExist[T any](tx *gorm.DB, kind breeding.Kind, id *uint) error {
	if id == nil {
		return nil
	}
	_, err := first[T](tx, kind, *id)
	return err
}

// findIn loads the rows whose column is in ids, in chunks of size batch.
func findIn[T any](
	tx *gorm.DB,
	column string,
	ids []uint,
	batch int,
) ([]T, error) {
	var res []T
	for _, chunk := range chunks(ids, batch) {
		var rows []T
		err := tx.Where(column+" IN ?", chunk).Find(&rows).Error
		if err != nil {
			return nil, QueryError(err)
		}
		res = append(res, rows...)
	}
	return res, nil
}

// pluckIn returns the distinct values of field over the rows whose
// column is in ids.
func pluckIn(
	tx *gorm.DB,
	model any,
	field, column string,
	ids []uint,
	batch int,
) ([]uint, error) {
	var res []uint
	for _, chunk := range chunks(ids, batch) {
		var rows []uint
		err := tx.Model(model).Where(column+" IN ?", chunk).
			Distinct().Pluck(field, &rows).Error
		if err != nil {
			return nil, QueryError(err)
		}
		res = append(res, rows...)
	}
	return unique(res), nil
}

func chunks(ids []uint, size int) [][]uint {
	var res [][]uint
	for start := 0; start < len(ids); start += size {
		res = append(res, ids[start:min(start+size, len(ids))])
	}
	return res
}

func unique(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	res := make([]uint, 0, len(ids))
	for _, v := range ids {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}

func ptr[T any](v T) *T {
	return &v
}
