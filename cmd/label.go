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
	"fmt"

	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iostore"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getLabelIDCmd returns the label-id command.
func getLabelIDCmd() *cobra.Command {
	labelCmd := &cobra.Command{
		Use:   "label-id SEED",
		Short: "Print the next free plant label id",
		Long: `Label-id prints the lowest label id at or above SEED that is not
used by a plant. Labels of eliminated plants are free again.

SEED has one to eight digits and is padded with zeros.

Examples:
  breedersdb label-id 1
  breedersdb label-id 24000000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLabelID(cmd.Context(), args[0])
		},
	}

	return labelCmd
}

func runLabelID(ctx context.Context, seed string) error {
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

	res, err := st.NextFreeLabelID(ctx, seed)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	fmt.Println(res)
	return nil
}
