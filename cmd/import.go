package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gacha-tracker/core/config"
	"gacha-tracker/core/database"
	"gacha-tracker/core/logger"
	"gacha-tracker/feature/catalog"
	"gacha-tracker/feature/ledger"
	"gacha-tracker/feature/ledger/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportFile is the on-disk shape of an official export: one user, one game,
// records grouped per category.
type exportFile struct {
	UID        int32                         `json:"uid"`
	Game       string                        `json:"game"`
	Provenance string                        `json:"provenance"`
	Categories map[string][]ledger.RawRecord `json:"categories"`
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <export.json>",
	Short: "Import an official export file into the ledger",
	Long: `Reads an export JSON file and ingests its records per category,
applying the same validation and reconciliation as the HTTP import.`,
	Args: cobra.ExactArgs(1),
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

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read export file: %w", err)
		}
		var export exportFile
		if err := json.Unmarshal(raw, &export); err != nil {
			return fmt.Errorf("parse export file: %w", err)
		}

		provenance := models.ProvenanceOfficial
		if export.Provenance != "" {
			var ok bool
			if provenance, ok = models.ParseProvenance(export.Provenance); !ok {
				return fmt.Errorf("invalid provenance %q", export.Provenance)
			}
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		svc := ledger.NewService(db, logg)
		if err := svc.Migrate(); err != nil {
			return err
		}

		ctx := context.Background()
		total := 0
		for category, records := range export.Categories {
			count, err := svc.Ingest(ctx, ledger.Import{
				UID:        export.UID,
				Game:       catalog.Game(export.Game),
				Category:   catalog.Category(category),
				Provenance: provenance,
				Records:    records,
			})
			if err != nil {
				return fmt.Errorf("category %s: %w", category, err)
			}
			logg.Info("Category imported",
				zap.String("category", category),
				zap.Int("records", count),
			)
			total += count
		}

		logg.Info("Import finished",
			zap.Int32("uid", export.UID),
			zap.String("game", export.Game),
			zap.Int("records", total),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(importCmd)
}
