package cmd

import (
	"fmt"
	"os"

	app "github.com/bolliger-tech/breedersdb.com-sub000/pkg"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/config"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// addrFlag overrides the listen address of the HTTP gateway.
func addrFlag(cmd *cobra.Command) {
	addr, _ := cmd.Flags().GetString("addr")
	if addr != "" {
		cfg.Update([]config.Option{config.OptServerAddress(addr)})
	}
}

// jobsFlag overrides the number of workers building view rows.
func jobsFlag(cmd *cobra.Command) {
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs > 0 {
		cfg.Update([]config.Option{config.OptJobsNumber(jobs)})
	}
}
