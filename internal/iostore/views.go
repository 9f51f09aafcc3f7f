package iostore

import (
	"context"
	"log/slog"
	"time"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/breeding"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/rollup"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"gorm.io/gorm"
)

// Keys of the PostgreSQL advisory locks that serialize refreshes across
// processes.
const (
	lockAttributionsView int64 = 7_100_001
	lockMarksView        int64 = 7_100_002
	lockCache            int64 = 7_100_003
)

// CachedAttributions reads the eager cache table.
func (s *store) CachedAttributions(
	ctx context.Context,
	f breeding.AttributionFilter,
) ([]schema.CachedAttribution, error) {
	var res []schema.CachedAttribution
	err := s.where(ctx, f.Conditions()).Order("id").Find(&res).Error
	if err != nil {
		return nil, QueryError(err)
	}
	return res, nil
}

// AttributionsView reads the attributions view as of its last refresh.
func (s *store) AttributionsView(
	ctx context.Context,
	f breeding.AttributionFilter,
) ([]schema.AttributionView, error) {
	var res []schema.AttributionView
	err := s.where(ctx, f.Conditions()).Order("id").Find(&res).Error
	if err != nil {
		return nil, QueryError(err)
	}
	return res, nil
}

// MarksView reads the marks view as of its last refresh.
func (s *store) MarksView(
	ctx context.Context,
	f breeding.MarkFilter,
) ([]schema.MarkView, error) {
	var res []schema.MarkView
	err := s.where(ctx, f.Conditions()).Order("id").Find(&res).Error
	if err != nil {
		return nil, QueryError(err)
	}
	return res, nil
}

func (s *store) where(ctx context.Context, conds map[string]any) *gorm.DB {
	tx := s.db.WithContext(ctx)
	if len(conds) > 0 {
		tx = tx.Where(conds)
	}
	return tx
}

// RefreshAttributionsView recomputes the attributions view.
func (s *store) RefreshAttributionsView(
	ctx context.Context,
) (*breeding.RefreshResult, error) {
	return refreshView(ctx, s, "attributions_view", lockAttributionsView,
		s.attributionRecords,
		func(r schema.AttributionRecord) uint { return r.ID },
		func(r schema.AttributionRecord, bk schema.ViewBookkeeping) schema.AttributionView {
			return schema.AttributionView{AttributionRecord: r, ViewBookkeeping: bk}
		},
	)
}

// RefreshMarksView recomputes the marks view.
func (s *store) RefreshMarksView(
	ctx context.Context,
) (*breeding.RefreshResult, error) {
	return refreshView(ctx, s, "marks_view", lockMarksView,
		s.markRecords,
		func(r schema.MarkRecord) uint { return r.ID },
		func(r schema.MarkRecord, bk schema.ViewBookkeeping) schema.MarkView {
			return schema.MarkView{MarkRecord: r, ViewBookkeeping: bk}
		},
	)
}

// RebuildCache recomputes every row of the cache table.
func (s *store) RebuildCache(ctx context.Context) (int, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	var count int
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := s.lock(tx, lockCache); err != nil {
			return err
		}
		recs, err := s.attributionRecords(ctx, tx)
		if err != nil {
			return err
		}

		err = tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&schema.CachedAttribution{}).Error
		if err != nil {
			return QueryError(err)
		}

		var bar *pb.ProgressBar
		if s.progress {
			bar = pb.Full.Start(len(recs))
			bar.Set("prefix", "Rebuilding cache: ")
			bar.Set(pb.CleanOnFinish, true)
			defer bar.Finish()
		}

		for i := 0; i < len(recs); i += s.batch {
			end := min(i+s.batch, len(recs))
			rows := make([]schema.CachedAttribution, 0, end-i)
			for _, rec := range recs[i:end] {
				rows = append(rows, schema.CachedAttribution{AttributionRecord: rec})
			}
			if err = tx.Create(&rows).Error; err != nil {
				return QueryError(err)
			}
			if bar != nil {
				bar.Add(len(rows))
			}
		}
		count = len(recs)
		return nil
	})
	if err != nil {
		return 0, RefreshError("cached_attributions", err)
	}

	slog.Info("Rebuilt attribution cache",
		"rows", humanize.Comma(int64(count)),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return count, nil
}

// lock takes the transaction scoped advisory lock on PostgreSQL. SQLite
// allows one writer at a time anyway.
func (s *store) lock(tx *gorm.DB, key int64) error {
	if s.driver != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", key).Error; err != nil {
		return QueryError(err)
	}
	return nil
}

// attributionRecords builds the records of all attribution values.
func (s *store) attributionRecords(
	ctx context.Context,
	tx *gorm.DB,
) ([]schema.AttributionRecord, error) {
	var values []schema.AttributionValue
	if err := tx.Order("id").Find(&values).Error; err != nil {
		return nil, QueryError(err)
	}
	src, err := s.attributionSources(tx, values)
	if err != nil {
		return nil, err
	}
	return rollup.BuildAll(ctx, values, s.jobs,
		func(v schema.AttributionValue) (schema.AttributionRecord, error) {
			return src.BuildAttribution(&v)
		})
}

// markRecords builds the records of all mark values.
func (s *store) markRecords(
	ctx context.Context,
	tx *gorm.DB,
) ([]schema.MarkRecord, error) {
	var values []schema.MarkValue
	if err := tx.Order("id").Find(&values).Error; err != nil {
		return nil, QueryError(err)
	}
	src, err := s.markSources(tx, values)
	if err != nil {
		return nil, err
	}
	return rollup.BuildAll(ctx, values, s.jobs,
		func(v schema.MarkValue) (schema.MarkRecord, error) {
			return src.BuildMark(&v)
		})
}

// viewState is the bookkeeping of a view row before a refresh.
type viewState struct {
	ID         uint
	Checksum   string
	LastChange time.Time
}

// refreshView recomputes all records of a view and applies the
// difference to the stored rows in one transaction. Rows whose checksum
// did not change keep their last_change, every row gets a new
// last_check.
func refreshView[Rec, Row any](
	ctx context.Context,
	s *store,
	view string,
	lockKey int64,
	build func(context.Context, *gorm.DB) ([]Rec, error),
	idOf func(Rec) uint,
	rowOf func(Rec, schema.ViewBookkeeping) Row,
) (*breeding.RefreshResult, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	res := &breeding.RefreshResult{}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := s.lock(tx, lockKey); err != nil {
			return err
		}
		recs, err := build(ctx, tx)
		if err != nil {
			return err
		}
		sums, err := rollup.BuildAll(ctx, recs, s.jobs,
			func(r Rec) (string, error) { return rollup.Checksum(r) })
		if err != nil {
			return err
		}

		byID := make(map[uint]Rec, len(recs))
		next := make(map[uint]string, len(recs))
		for i, r := range recs {
			byID[idOf(r)] = r
			next[idOf(r)] = sums[i]
		}

		var states []viewState
		err = tx.Table(view).Select("id", "checksum", "last_change").
			Scan(&states).Error
		if err != nil {
			return QueryError(err)
		}
		current := make(map[uint]string, len(states))
		lastChange := make(map[uint]time.Time, len(states))
		for _, v := range states {
			current[v.ID] = v.Checksum
			lastChange[v.ID] = v.LastChange
		}

		plan := rollup.Diff(current, next)
		now := s.timestamp()

		for _, ids := range [][]uint{plan.Insert, plan.Update} {
			for _, chunk := range chunks(ids, s.batch) {
				rows := make([]Row, 0, len(chunk))
				for _, id := range chunk {
					rows = append(rows, rowOf(byID[id], schema.ViewBookkeeping{
						Checksum:   next[id],
						LastCheck:  now,
						LastChange: now,
					}))
				}
				err = tx.Where("id IN ?", chunk).Delete(new(Row)).Error
				if err != nil {
					return QueryError(err)
				}
				if err = tx.Create(&rows).Error; err != nil {
					return QueryError(err)
				}
			}
		}
		for _, chunk := range chunks(plan.Delete, s.batch) {
			err = tx.Where("id IN ?", chunk).Delete(new(Row)).Error
			if err != nil {
				return QueryError(err)
			}
		}
		for _, chunk := range chunks(plan.Unchanged, s.batch) {
			err = tx.Model(new(Row)).Where("id IN ?", chunk).
				Update("last_check", now).Error
			if err != nil {
				return QueryError(err)
			}
		}

		res.Inserted = len(plan.Insert)
		res.Updated = len(plan.Update)
		res.Deleted = len(plan.Delete)
		res.Unchanged = len(plan.Unchanged)
		res.Rows = make([]breeding.RowCheck, 0, len(recs))
		for _, r := range recs {
			id := idOf(r)
			change := now
			if t, ok := lastChange[id]; ok && current[id] == next[id] {
				change = t
			}
			res.Rows = append(res.Rows, breeding.RowCheck{
				ID:         id,
				LastCheck:  now,
				LastChange: change,
			})
		}
		return nil
	})
	if err != nil {
		return nil, RefreshError(view, err)
	}

	res.Duration = time.Since(start)
	slog.Info("Refreshed view",
		"view", view,
		"inserted", humanize.Comma(int64(res.Inserted)),
		"updated", humanize.Comma(int64(res.Updated)),
		"deleted", humanize.Comma(int64(res.Deleted)),
		"unchanged", humanize.Comma(int64(res.Unchanged)),
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, nil
}
