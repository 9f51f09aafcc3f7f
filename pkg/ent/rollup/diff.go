package rollup

import (
	"context"
	"slices"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"golang.org/x/sync/errgroup"
)

// Checksum identifies the content of a record. Equal records have equal
// checksums.
func Checksum(rec any) (string, error) {
	enc := gnfmt.GNjson{}
	bs, err := enc.Encode(rec)
	if err != nil {
		return "", ChecksumError(err)
	}
	return gnuuid.New(string(bs)).String(), nil
}

// Plan lists what a refresh has to do with the rows of a view.
type Plan struct {
	Insert    []uint
	Update    []uint
	Delete    []uint
	Unchanged []uint
}

// Diff compares the checksums of the rows in a view with the checksums
// of freshly built records. All id lists are sorted.
func Diff(current, next map[uint]string) Plan {
	var res Plan
	for id, sum := range next {
		old, ok := current[id]
		switch {
		case !ok:
			res.Insert = append(res.Insert, id)
		case old != sum:
			res.Update = append(res.Update, id)
		default:
			res.Unchanged = append(res.Unchanged, id)
		}
	}
	for id := range current {
		if _, ok := next[id]; !ok {
			res.Delete = append(res.Delete, id)
		}
	}
	slices.Sort(res.Insert)
	slices.Sort(res.Update)
	slices.Sort(res.Delete)
	slices.Sort(res.Unchanged)
	return res
}

// BuildAll runs build on every input using jobs workers and returns the
// results in input order. The first error cancels the remaining work.
func BuildAll[In, Out any](
	ctx context.Context,
	in []In,
	jobs int,
	build func(In) (Out, error),
) ([]Out, error) {
	if jobs < 1 {
		jobs = 1
	}
	res := make([]Out, len(in))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	chunk := (len(in) + jobs - 1) / jobs
	for start := 0; start < len(in); start += chunk {
		end := min(start+chunk, len(in))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gCtx.Err(); err != nil {
					return err
				}
				out, err := build(in[i])
				if err != nil {
					return err
				}
				res[i] = out
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
