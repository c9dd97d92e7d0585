// Package main seeds a demo adjustment draft for local development.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"stockadmin/internal/core/config"
	"stockadmin/internal/core/id"
	"stockadmin/internal/core/tx"
	"stockadmin/internal/domain/adjustment"
	"stockadmin/internal/infrastructure/storage/postgres"
	"stockadmin/internal/infrastructure/storage/postgres/adjustment_repo"
	"stockadmin/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL, 2))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	programID := envID("PROGRAM_ID")
	facilityID := envID("FACILITY_ID")

	txManager := postgres.NewTxManager(pool)
	draftID, err := seedDemoDraft(ctx, adjustment_repo.NewDraftRepo(txManager), txManager, programID, facilityID)
	if err != nil {
		log.Fatalw("failed to seed demo draft", "error", err)
	}

	log.Infow("seeding completed successfully",
		"draft_id", draftID,
		"program_id", programID,
		"facility_id", facilityID,
	)
}

// envID parses key as a UUID, generating one when it is unset.
func envID(key string) id.ID {
	raw := os.Getenv(key)
	if raw == "" {
		return id.New()
	}
	return id.MustParse(raw)
}

func seedDemoDraft(ctx context.Context, repo adjustment.Repository, txm tx.Manager, programID, facilityID id.ID) (id.ID, error) {
	// No sender: the seeded draft is never submitted from here.
	svc := adjustment.NewService(repo, txm, adjustment.NewSubmitter(nil))

	draft, err := svc.CreateDraft(ctx, programID, facilityID)
	if err != nil {
		return id.ID{}, err
	}

	for _, item := range demoLineItems() {
		if _, err := svc.AddLineItem(ctx, draft.ID, item); err != nil {
			return id.ID{}, fmt.Errorf("add %s: %w", item.Orderable.ProductCode, err)
		}
	}
	return draft.ID, nil
}

func demoLineItems() []adjustment.LineItem {
	intPtr := func(v int) *int { return &v }
	strPtr := func(v string) *string { return &v }

	vaccine := adjustment.Orderable{ID: id.New(), ProductCode: "C1", FullProductName: "Vaccine"}
	syringe := adjustment.Orderable{ID: id.New(), ProductCode: "C2", FullProductName: "Syringe"}

	return []adjustment.LineItem{
		{
			Orderable:      vaccine,
			StockOnHand:    intPtr(100),
			Quantity:       intPtr(233),
			Reason:         adjustment.Reason{ID: id.New(), Name: "clinic return"},
			ReasonFreeText: strPtr("free"),
			OccurredDate:   time.Date(2016, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Orderable:    syringe,
			Quantity:     intPtr(4),
			Reason:       adjustment.Reason{ID: id.New(), Name: "donate"},
			OccurredDate: time.Date(2017, 4, 1, 4, 23, 34, 0, time.UTC),
		},
		{
			Orderable:    syringe,
			StockOnHand:  intPtr(1000),
			Reason:       adjustment.Reason{ID: id.New(), Name: "damage"},
			OccurredDate: time.Date(2017, 4, 1, 5, 23, 34, 0, time.UTC),
		},
	}
}
