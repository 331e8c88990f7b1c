package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"switrs-db/internal/dialect"
	"switrs-db/internal/errs"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dsn        string
	driverName string
	cfgFile    string

	DB      *sql.DB
	Dialect dialect.Dialect
)

var RootCmd = &cobra.Command{
	Use:   "switrs-db",
	Short: "Build a SWITRS collision database from CSV extracts",
	Long: `switrs-db creates the SWITRS lookup tables and primary tables described by
a build spec (Schemas.toml) and bulk loads them from their CSV extracts.

Every run is a full rebuild: lookup tables are created and loaded first,
then the primary tables that reference them.`,
	SilenceUsage: true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if DB != nil {
			return DB.Close()
		}
		return nil
	},
}

// connectDB opens the database for commands that need one. It is attached
// to RootCmd in init to avoid an initialization cycle through resolveDBConfig.
func connectDB(cmd *cobra.Command, args []string) error {
	if !needsDB(cmd) {
		return nil
	}

	config, err := resolveDBConfig()
	if err != nil {
		return err
	}

	db, d, err := dialect.Open(cmd.Context(), config.Driver, config.DSN)
	if err != nil {
		return err
	}
	DB, Dialect = db, d
	log.Printf("Connected to %s (%s)", config.Name, d.Name())
	return nil
}

// needsDB reports whether cmd talks to the database. A dry run only reads
// the build spec.
func needsDB(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup("dry-run")
	return f == nil || f.Value.String() != "true"
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(errorLine(err))
		os.Exit(1)
	}
}

// errorLine prefixes err with its kind, e.g. "config error: ...".
func errorLine(err error) string {
	if kind := errs.KindOf(err); kind != nil {
		return fmt.Sprintf("%v: %v", kind, err)
	}
	return err.Error()
}

func init() {
	RootCmd.PersistentPreRunE = connectDB
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./switrs-db.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN)")
	RootCmd.PersistentFlags().StringVar(&driverName, "driver", "", "database driver: sqlite, postgres, pgx, mysql, sqlserver, oracle (default: detected from DSN)")

	// Bind flags to viper
	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
	viper.BindPFlag("database.driver", RootCmd.PersistentFlags().Lookup("driver"))

	// Set default for Viper (fallback if no config/flag)
	viper.SetDefault("database.dsn", "switrs.db")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("switrs-db")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SWITRS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
}
