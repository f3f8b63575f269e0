package cmd

import (
	"fmt"
	"log"

	"gacha-tracker/core/config"
	"gacha-tracker/core/database"
	"gacha-tracker/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// expectedSchema lists the columns every deployed table must carry. Checked
// against the live database to catch releases deployed without migrations.
var expectedSchema = map[string][]string{
	"pull_events": {
		"global_id", "uid", "game", "category",
		"item_kind", "item_id", "rarity", "timestamp", "provenance", "updated_at",
	},
	"stat_records": {
		"uid", "game", "category", "count",
		"luck4", "luck5", "win_rate", "win_streak", "loss_streak",
		"count_pct", "luck4_pct", "luck5_pct", "computed_at",
	},
	"achievement_completions": {"username", "achievement_id", "marked_at"},
	"achievement_favorites":   {"username", "achievement_id", "marked_at"},
	"reference_pool_items":    {"game", "item_id"},
}

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the database schema",
	Long:  `Compares the live database schema against the expected tables and columns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}

		drift := 0
		for table, columns := range expectedSchema {
			missing, err := database.VerifyColumns(db, table, columns)
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				drift++
				logg.Warn("Schema drift",
					zap.String("table", table),
					zap.Strings("missing_columns", missing),
				)
			}
		}

		if drift > 0 {
			return fmt.Errorf("%d table(s) out of sync, run the server once to migrate", drift)
		}
		logg.Info("Schema up to date", zap.Int("tables", len(expectedSchema)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
