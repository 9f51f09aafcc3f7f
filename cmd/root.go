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
	"log/slog"
	"os"
	"strings"

	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iodb"
	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iofs"
	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iologger"
	app "github.com/bolliger-tech/breedersdb.com-sub000/pkg"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/config"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/db"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     = config.New()
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "breedersdb",
		Short:   "BreedersDB keeps breeding records of a fruit breeding program",
		Long: `BreedersDB keeps the records of a horticultural breeding program:
crossings, lots, cultivars, plant groups and plants, the attributes
observed on them and the values recorded during attribution.

Commands:
  - create: Create the database schema
  - migrate: Update the schema to the latest version
  - refresh: Recompute the attributions or marks view
  - rebuild-cache: Recompute the cached attributions
  - label-id: Print the next free plant label id
  - serve: Run the HTTP gateway

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (BREEDERSDB_*)
  3. Config file (~/.config/breedersdb/config.yaml)
  4. Built-in defaults

Environment Variables:
    BREEDERSDB_DATABASE_DRIVER      postgres or sqlite
    BREEDERSDB_DATABASE_HOST        PostgreSQL host
    BREEDERSDB_DATABASE_PORT        PostgreSQL port
    BREEDERSDB_DATABASE_PATH        SQLite file
    BREEDERSDB_LOG_LEVEL            Log level (debug/info/warn/error)
    BREEDERSDB_SERVER_ADDRESS       Address of the HTTP gateway`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for breedersdb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getRefreshCmd(),
		getRebuildCacheCmd(),
		getLabelIDCmd(),
		getServeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return bootstrapHome(homeDir)
}

// bootstrapHome prepares directories, logging and configuration in home.
func bootstrapHome(home string) error {
	var err error
	if err = iofs.EnsureDirs(home); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// defaults until the config file is read
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(home), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(home); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.CheckConfigFile(home); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(home); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(home)})

	if err = iologger.Init(config.LogDir(home), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(home),
		"driver", cfg.Database.Driver,
	)
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// initEnvVars binds the environment variables of all persistent fields
// of config.ToOptions.
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("BREEDERSDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("database.driver", "BREEDERSDB_DATABASE_DRIVER")
	v.BindEnv("database.host", "BREEDERSDB_DATABASE_HOST")
	v.BindEnv("database.port", "BREEDERSDB_DATABASE_PORT")
	v.BindEnv("database.user", "BREEDERSDB_DATABASE_USER")
	v.BindEnv("database.password", "BREEDERSDB_DATABASE_PASSWORD")
	v.BindEnv("database.database", "BREEDERSDB_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "BREEDERSDB_DATABASE_SSL_MODE")
	v.BindEnv("database.path", "BREEDERSDB_DATABASE_PATH")
	v.BindEnv("database.batch_size", "BREEDERSDB_DATABASE_BATCH_SIZE")

	v.BindEnv("log.level", "BREEDERSDB_LOG_LEVEL")
	v.BindEnv("log.format", "BREEDERSDB_LOG_FORMAT")
	v.BindEnv("log.destination", "BREEDERSDB_LOG_DESTINATION")

	v.BindEnv("server.address", "BREEDERSDB_SERVER_ADDRESS")

	v.BindEnv("jobs_number", "BREEDERSDB_JOBS_NUMBER")

	v.AutomaticEnv()
}

// connect opens the configured database.
func connect(ctx context.Context) (db.Operator, error) {
	op, err := iodb.New(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	if op.Driver() == "sqlite" {
		gn.Info("Connected to database: <em>%s</em>", cfg.Database.Path)
	} else {
		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	}
	return op, nil
}

// connectExisting opens the configured database and fails when it has no
// schema yet.
func connectExisting(ctx context.Context) (db.Operator, error) {
	op, err := connect(ctx)
	if err != nil {
		return nil, err
	}
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		op.Close()
		return nil, err
	}
	if !hasTables {
		op.Close()
		return nil, EmptyDatabaseError()
	}
	return op, nil
}
