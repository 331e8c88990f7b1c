package cmd

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"switrs-db/internal/engine"
	"switrs-db/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	clean     bool
	dryRun    bool
	dataFiles []string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Create and load every lookup table, then every primary table",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := loadSchema()
		if err != nil {
			return err
		}
		s, err = withDataFiles(s, dataFiles)
		if err != nil {
			return err
		}

		// 1. Analyze
		log.Println("Analyzing build spec...")
		plan, err := schema.Analyze(s)
		if err != nil {
			return err
		}
		if err := schema.CheckOrder(plan); err != nil {
			return err
		}

		// Dry Run
		if dryRun {
			log.Println("[SIMULATION] Dry-Run Mode Active: No tables will be created.")
			fmt.Printf("🔍 Build Plan:\n")
			for i, t := range plan {
				data := t.Data
				if data == "" {
					data = "(no data)"
				}
				fmt.Printf("[%02d] %-8s %-24s %s <- %s (References: %v)\n", i+1, t.Kind, t.Name, t.DDL, data, t.Dependencies)
			}
			return nil
		}

		// 2. Setup Progress Bar
		uiprogress.Start()
		bar := uiprogress.AddBar(len(plan)).AppendCompleted().PrependElapsed()
		var current tableLabel
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("Built %-20s", current.String())
		})

		b := engine.New(DB, Dialect, engine.Options{
			Nulls: engine.NullPolicy{DashAsNull: viper.GetBool("build.dash_as_null")},
			OnTable: func(name string) {
				current.Set(name)
				bar.Incr()
			},
		})

		if clean {
			log.Println("Dropping existing tables...")
			b.Drop(ctx, s)
		}

		start := time.Now()

		// 3. Build
		results, buildErr := b.Build(ctx, s)
		uiprogress.Stop()

		// 4. Verification Step
		verified := b.Verify(ctx, results)
		elapsed := time.Since(start)

		// 5. Final Report
		printReport(verified, len(plan))
		log.Printf("Build Done! Time Elapsed: %s", elapsed)

		if buildErr != nil {
			return fmt.Errorf("build aborted: %w", buildErr)
		}
		return nil
	},
}

// tableLabel is the last table built. The progress bar reads it from its own
// render goroutine.
type tableLabel struct{ v atomic.Value }

func (l *tableLabel) Set(name string) { l.v.Store(name) }

func (l *tableLabel) String() string {
	name, _ := l.v.Load().(string)
	return name
}

func printReport(results []schema.BuildResult, planned int) {
	fmt.Println("\n📊 Summary Report (Build Order):")
	total := 0
	for i, r := range results {
		icon := "✓"
		if r.Status != engine.StatusVerified {
			icon = "!"
		}
		fmt.Printf("[%s] [%02d/%02d] %-8s %-24s : %d rows - %s\n",
			icon, i+1, planned, r.Kind, r.TableName, r.Actual, r.Status)
		if r.ErrorMsg != "" {
			fmt.Printf("    └ Error: %s\n", r.ErrorMsg)
		}
		total += r.Actual
	}
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Total Rows: %d\n", total)
}

// withDataFiles returns a copy of s whose primary tables take their data
// file from table=path overrides.
func withDataFiles(s *schema.Schema, overrides []string) (*schema.Schema, error) {
	if len(overrides) == 0 {
		return s, nil
	}

	paths := make(map[string]string, len(overrides))
	for _, o := range overrides {
		name, path, ok := strings.Cut(o, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid --data %q: want table=path", o)
		}
		paths[name] = path
	}

	out := *s
	out.Tables = make([]schema.PrimaryTable, len(s.Tables))
	for i, t := range s.Tables {
		if p, ok := paths[t.Name]; ok {
			t.Data = p
			delete(paths, t.Name)
		}
		out.Tables[i] = t
	}
	if unknown := schema.SortedNames(paths); len(unknown) > 0 {
		return nil, fmt.Errorf("--data names %q which is not a primary table in the build spec", unknown[0])
	}
	return &out, nil
}

func init() {
	RootCmd.AddCommand(buildCmd)

	// CLI Flags
	buildCmd.Flags().BoolVar(&clean, "clean", false, "Drop the spec's tables before building")
	buildCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the build plan without touching the database")
	buildCmd.Flags().StringArrayVar(&dataFiles, "data", nil, "Primary table data file as table=path (repeatable)")
}
