package cmd

import (
	"fmt"
	"log"
	"path/filepath"

	"switrs-db/internal/dialect"
	"switrs-db/internal/schema"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// GetActiveDBConfig returns the currently active database configuration from
// the databases list. It returns nil, nil when no list is configured.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}
	if len(configs) == 0 {
		return nil, nil
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	return activeConfig, nil
}

// resolveDBConfig picks the database to build into. Explicit --dsn/--driver
// flags win over the databases list, which wins over database.* keys.
func resolveDBConfig() (*DBConfig, error) {
	flags := RootCmd.PersistentFlags()
	if !flags.Changed("dsn") && !flags.Changed("driver") {
		active, err := GetActiveDBConfig()
		if err != nil {
			return nil, err
		}
		if active != nil {
			if active.Driver == "" {
				active.Driver = dialect.DetectDriver(active.DSN)
			}
			return active, nil
		}
	}

	config := &DBConfig{
		Name:   "CLI",
		Driver: viper.GetString("database.driver"),
		DSN:    viper.GetString("database.dsn"),
		Active: true,
	}
	if config.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required (via flag or config)")
	}
	if config.Driver == "" {
		config.Driver = dialect.DetectDriver(config.DSN)
	}
	return config, nil
}

// loadSchema reads the build spec named by build.spec and resolves its paths
// against build.base_dir, or the spec's own directory when unset.
func loadSchema() (*schema.Schema, error) {
	path := viper.GetString("build.spec")
	s, err := schema.Load(path)
	if err != nil {
		return nil, err
	}

	base := viper.GetString("build.base_dir")
	if base == "" {
		base = filepath.Dir(path)
	}
	log.Printf("Loaded %s: %s", path, s)
	return s.Resolve(base), nil
}

func init() {
	RootCmd.PersistentFlags().String("spec", "Schemas.toml", "build spec listing tables and lookup tables")
	RootCmd.PersistentFlags().String("base-dir", "", "directory spec paths are relative to (default: the spec's directory)")
	RootCmd.PersistentFlags().Bool("dash-null", false, `also store a lone "-" cell as NULL`)

	viper.BindPFlag("build.spec", RootCmd.PersistentFlags().Lookup("spec"))
	viper.BindPFlag("build.base_dir", RootCmd.PersistentFlags().Lookup("base-dir"))
	viper.BindPFlag("build.dash_as_null", RootCmd.PersistentFlags().Lookup("dash-null"))
}
