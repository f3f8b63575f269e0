package cmd

import (
	"context"
	"log"
	"strconv"

	"gacha-tracker/core/config"
	"gacha-tracker/core/database"
	"gacha-tracker/core/logger"
	"gacha-tracker/feature/catalog"
	"gacha-tracker/feature/ledger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var purgeUnofficialOnly bool

// purgeCmd represents the purge command
var purgeCmd = &cobra.Command{
	Use:   "purge <game> <category> <uid>",
	Short: "Delete a user's pull records in one category",
	Long: `Deletes pull records for one user and category. With --unofficial only
community-submitted records are removed and official ones survive.`,
	Args: cobra.ExactArgs(3),
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

		uid64, err := strconv.ParseInt(args[2], 10, 32)
		if err != nil {
			return err
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		svc := ledger.NewService(db, logg)

		game := catalog.Game(args[0])
		category := catalog.Category(args[1])
		if err := svc.Purge(context.Background(), int32(uid64), game, category, purgeUnofficialOnly); err != nil {
			return err
		}

		logg.Info("Purge finished",
			zap.String("game", args[0]),
			zap.String("category", args[1]),
			zap.Int64("uid", uid64),
			zap.Bool("unofficial_only", purgeUnofficialOnly),
		)
		return nil
	},
}

func init() {
	purgeCmd.Flags().BoolVar(&purgeUnofficialOnly, "unofficial", false, "only delete community-submitted records")
	RootCmd.AddCommand(purgeCmd)
}
