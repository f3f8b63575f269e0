package cmd

import (
	"context"
	"log"
	"time"

	"gacha-tracker/core/config"
	"gacha-tracker/core/database"
	"gacha-tracker/core/logger"
	"gacha-tracker/feature/ledger"
	"gacha-tracker/feature/stats"

	"github.com/spf13/cobra"
)

// recomputeCmd represents the recompute command
var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Recompute all statistics once",
	Long: `Runs one full statistics refresh pass over every game and category,
then exits. Useful after bulk imports or schema changes.`,
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

		ledgerStore := ledger.NewStore(db)
		if err := ledgerStore.Migrate(); err != nil {
			return err
		}
		statsStore := stats.NewStore(db)
		if err := statsStore.Migrate(); err != nil {
			return err
		}

		refresher := stats.NewRefresher(ledgerStore, statsStore, logg, time.Minute)
		if err := refresher.RefreshAll(context.Background()); err != nil {
			return err
		}
		logg.Info("Statistics recomputed")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(recomputeCmd)
}
