/*
Copyright © 2025 Bolliger Tech <info@bolliger.tech>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"time"

	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iostore"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getRebuildCacheCmd returns the rebuild-cache command.
func getRebuildCacheCmd() *cobra.Command {
	rebuildCmd := &cobra.Command{
		Use:   "rebuild-cache",
		Short: "Recompute every row of the cached attributions",
		Long: `Rebuild-cache recomputes the cached attributions from the current
records. The cache is kept up to date by every write, use this command
after a bulk import or to repair the cache.

Examples:
  breedersdb rebuild-cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobsFlag(cmd)
			return runRebuildCache(cmd.Context())
		},
	}

	rebuildCmd.Flags().IntP("jobs", "j", 0,
		"number of workers building cache rows")

	return rebuildCmd
}

func runRebuildCache(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	op, err := connectExisting(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	st, err := iostore.New(op, cfg, iostore.OptProgress(true))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	start := time.Now()
	n, err := st.RebuildCache(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Cached <em>%s</em> attributions in %s",
		humanize.Comma(int64(n)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}
