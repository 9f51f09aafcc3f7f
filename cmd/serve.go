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
	"os/signal"
	"syscall"

	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iostore"
	"github.com/bolliger-tech/breedersdb.com-sub000/internal/ioweb"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Long: `Serve runs the HTTP gateway of BreedersDB.

Endpoints:
  /api/{kind}                         create records
  /api/{kind}/{id}                    get, replace, patch or delete records
  /api/cached_attributions            query the attribution cache
  /api/attributions_view[/refresh]    query or refresh the attributions view
  /api/marks_view[/refresh]           query or refresh the marks view
  /api/next_free_label_id?seed=N      next free plant label id
  /metrics                            Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM.

Examples:
  breedersdb serve
  breedersdb serve --addr :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addrFlag(cmd)
			return runServe(cmd.Context())
		},
	}

	serveCmd.Flags().StringP("addr", "a", "",
		"address to listen on, overrides server.address")

	return serveCmd
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	gn.Info("Listening on <em>%s</em>", cfg.Server.Address)
	if err = ioweb.New(st).Run(ctx, cfg.Server.Address); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Server stopped.")
	return nil
}
