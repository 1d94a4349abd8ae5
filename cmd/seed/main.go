package main

import (
	"context"
	"encoding/json"
	"log"

	"prep-tool-be/internal/config"
	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/entity"
	"prep-tool-be/internal/pkg/logger"
	"prep-tool-be/internal/repository/memory"
	"prep-tool-be/internal/repository/unitofwork"
	"prep-tool-be/internal/service"
	"prep-tool-be/pkg/database"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Seeds one sample session per type. Sessions whose title already exists are skipped.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	sessions := service.NewSessionService(
		unitofwork.NewRepositoryFactory(db),
		memory.NewSummaryCache(0),
		service.NewPublisherService("seed", pubSub),
		logger.NewNopLogger(),
	)

	ctx := context.Background()
	existing, err := sessions.List(ctx, nil)
	if err != nil {
		log.Fatalf("Error: Failed to list sessions: %v", err)
	}
	seen := map[string]bool{}
	for _, s := range existing {
		seen[s.Title] = true
	}

	for _, sample := range samples() {
		if seen[sample.Title] {
			log.Printf("Session '%s' already exists, skipping...", sample.Title)
			continue
		}

		created, err := sessions.Create(ctx, &dto.CreateSessionRequest{
			Type:     sample.Type,
			Title:    sample.Title,
			Subtitle: sample.Subtitle,
			Date:     sample.Date,
			Format:   sample.Format,
		})
		if err != nil {
			log.Printf("Error creating session '%s': %v", sample.Title, err)
			continue
		}

		patch, err := contentPatch(sample)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		if _, err := sessions.Update(ctx, created.Id, patch); err != nil {
			log.Printf("Error filling session '%s': %v", sample.Title, err)
			continue
		}
		log.Printf("Created session: %s (%s, %s)", sample.Title, sample.Type, created.Id)
	}

	log.Println("Session seeding completed!")
}

// contentPatch carries every collection of sample, metadata excluded.
func contentPatch(s *entity.Session) (entity.SessionPatch, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	patch := entity.SessionPatch{}
	if err := json.Unmarshal(raw, &patch); err != nil {
		return nil, err
	}
	for _, k := range []string{"id", "type", "title", "subtitle", "date", "format", "created", "modified"} {
		delete(patch, k)
	}
	return patch, nil
}
