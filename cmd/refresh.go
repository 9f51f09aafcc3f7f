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
	"os"

	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iostore"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/breeding"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getRefreshCmd returns the refresh command.
func getRefreshCmd() *cobra.Command {
	var marks bool

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute the attributions view",
		Long: `Refresh recomputes the attributions view from the current records.

Rows whose content did not change keep their last_change timestamp,
every row gets a new last_check timestamp. Concurrent refreshes are
serialized.

Use --marks to refresh the marks view of the tree centric records.

Examples:
  breedersdb refresh
  breedersdb refresh --marks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobsFlag(cmd)
			return runRefresh(cmd.Context(), marks)
		},
	}

	refreshCmd.Flags().BoolVarP(&marks, "marks", "m", false,
		"refresh the marks view instead of the attributions view")
	refreshCmd.Flags().IntP("jobs", "j", 0,
		"number of workers building view rows")

	return refreshCmd
}

func runRefresh(ctx context.Context, marks bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	op, err := connectExisting(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	st, err := iostore.New(op, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	view := "attributions_view"
	refresh := st.RefreshAttributionsView
	if marks {
		view = "marks_view"
		refresh = st.RefreshMarksView
	}

	gn.Info("Refreshing <em>%s</em>...", view)
	res, err := refresh(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Inserted %s, updated %s, deleted %s, unchanged %s rows",
		humanize.Comma(int64(res.Inserted)),
		humanize.Comma(int64(res.Updated)),
		humanize.Comma(int64(res.Deleted)),
		humanize.Comma(int64(res.Unchanged)),
	)
	return printSummary(res)
}

// printSummary writes the counts of a refresh as JSON to stdout.
func printSummary(res *breeding.RefreshResult) error {
	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(breeding.RefreshResult{
		Inserted:  res.Inserted,
		Updated:   res.Updated,
		Deleted:   res.Deleted,
		Unchanged: res.Unchanged,
	})
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(out, '\n'))
	return err
}
