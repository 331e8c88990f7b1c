package cmd

import (
	"fmt"

	"switrs-db/internal/engine"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var pkType string

var createCmd = &cobra.Command{
	Use:   "create <table> <ddl-template>",
	Short: "Create one table from a DDL template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b := engine.New(DB, Dialect, engine.Options{})
		if err := b.CreateTable(cmd.Context(), args[0], pkType, args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ created %s\n", args[0])
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <table> <csv>",
	Short: "Bulk load one CSV file into an existing table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b := engine.New(DB, Dialect, engine.Options{
			Nulls: engine.NullPolicy{DashAsNull: viper.GetBool("build.dash_as_null")},
		})
		count, err := b.LoadData(cmd.Context(), args[0], args[1])
		fmt.Printf("%s: %d rows inserted\n", args[0], count)
		return err
	},
}

func init() {
	RootCmd.AddCommand(createCmd)
	RootCmd.AddCommand(loadCmd)

	createCmd.Flags().StringVar(&pkType, "pk-type", "", "SQL type substituted for {pk_type}")
}
