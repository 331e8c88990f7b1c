package cmd

import (
	"log"

	"switrs-db/internal/engine"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop every table named in the build spec",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSchema()
		if err != nil {
			return err
		}

		b := engine.New(DB, Dialect, engine.Options{})
		dropped := b.Drop(cmd.Context(), s)

		log.Printf("Database Cleaned: dropped %d/%d tables", dropped, len(s.Tables)+len(s.LookupTables))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cleanCmd)
}
