package main

import (
	"context"
	"flag"
	"time"

	"reviewdesk/internal/app"
	"reviewdesk/internal/config"
	"reviewdesk/internal/logger"
)

type sample struct {
	Rating int
	Review string
}

var samples = []sample{
	{5, "This is amazing, thank you!"},
	{3, "How do I reset my password?"},
	{1, "The app crashed twice while I was checking out and I lost my cart."},
	{4, "Delivery was quick and the packaging was neat."},
	{2, "Support took three days to answer my email."},
	{5, "Love the new dark mode, it looks great on my phone."},
	{3, "Could you explain how the loyalty points work?"},
	{2, "Prices went up but nothing else changed."},
}

func main() {
	dryRun := flag.Bool("dry-run", false, "list the sample submissions without sending them")
	flag.Parse()

	log, err := logger.New("dev")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *dryRun {
		for _, s := range samples {
			log.Info("sample", "rating", s.Rating, "review", s.Review)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "error", err)
	}
	// every sample should be stored before the process exits
	cfg.FinalizeAsync = false

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", "error", err)
	}
	defer application.Close(context.Background())

	stored := 0
	for _, s := range samples {
		resp, err := application.FeedbackService.Submit(ctx, s.Rating, s.Review)
		if err != nil {
			log.Error("sample rejected", "review", s.Review, "error", err)
			continue
		}
		if resp.Persisted {
			stored++
		}
		log.Info("seeded",
			"rating", s.Rating,
			"classification", resp.Classification,
			"reply", resp.Reply,
			"persisted", resp.Persisted,
		)
	}

	log.Info("seeding complete", "stored", stored, "total", len(samples))
}
