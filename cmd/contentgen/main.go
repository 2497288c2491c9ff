package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/toptours/api-go/utils"
)

var (
	flagDestinations []string
	flagRegion       string
	flagCategories   []string
	flagCheckpoint   string
	flagRPM          float64
	flagAPIBase      string
	flagModel        string
	flagRestaurants  bool
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "contentgen",
		Short: "Batch-generate SEO guides for destinations",
		Long: "contentgen walks destinations and categories, asks the generative API for\n" +
			"guide content, and upserts the results through the admin API. Progress is\n" +
			"checkpointed to a JSON file so interrupted runs resume where they stopped.",
	}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate guides for the selected destinations",
		RunE:  runGenerate,
	}
	generate.Flags().StringSliceVar(&flagDestinations, "destination", nil, "destination slug (repeatable)")
	generate.Flags().StringVar(&flagRegion, "region", "", "generate for every destination in a country/region")
	generate.Flags().StringSliceVar(&flagCategories, "categories", []string{"things-to-do", "day-trips", "food-and-drink"}, "category slugs to generate")
	generate.Flags().StringVar(&flagCheckpoint, "checkpoint", "contentgen-checkpoint.json", "checkpoint file path")
	generate.Flags().Float64Var(&flagRPM, "rpm", 10, "generative API requests per minute")
	generate.Flags().StringVar(&flagAPIBase, "api-base", "http://localhost:8080", "TopTours API base URL")
	generate.Flags().StringVar(&flagModel, "model", "gemini-1.5-flash", "generative model name")
	generate.Flags().BoolVar(&flagRestaurants, "restaurants", false, "generate restaurant guides instead of category guides")
	root.AddCommand(generate)

	if err := root.Execute(); err != nil {
		logger.Error("contentgen failed", "error", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(flagDestinations) == 0 && flagRegion == "" {
		return fmt.Errorf("either --destination or --region is required")
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}
	adminToken := os.Getenv("CONTENTGEN_ADMIN_TOKEN")
	if adminToken == "" {
		return fmt.Errorf("CONTENTGEN_ADMIN_TOKEN is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := newAPIClient(flagAPIBase, adminToken)
	gemini := newGeminiClient(geminiKey, flagModel)
	bucket := utils.NewTokenBucket(1, flagRPM)

	checkpoint, err := loadCheckpoint(flagCheckpoint)
	if err != nil {
		return err
	}

	destinations, err := resolveDestinations(ctx, api)
	if err != nil {
		return err
	}
	slog.Info("generation plan", "destinations", len(destinations), "categories", len(flagCategories))

	for _, dest := range destinations {
		for _, category := range flagCategories {
			key := checkpointKey(dest.Slug, category, flagRestaurants)
			if checkpoint.Done(key) {
				continue
			}

			if err := bucket.Wait(ctx); err != nil {
				return err
			}

			content, err := generateWithRetry(ctx, gemini, dest, category)
			if err != nil {
				return fmt.Errorf("generation failed for %s/%s: %w", dest.Slug, category, err)
			}

			if err := api.UpsertGuide(ctx, dest.ID, category, content, flagModel, flagRestaurants); err != nil {
				return fmt.Errorf("guide upload failed for %s/%s: %w", dest.Slug, category, err)
			}

			checkpoint.Mark(key)
			if err := checkpoint.Save(flagCheckpoint); err != nil {
				return err
			}
			slog.Info("guide written", "destination", dest.Slug, "category", category)
		}
	}

	slog.Info("generation complete")
	return nil
}

func resolveDestinations(ctx context.Context, api *apiClient) ([]destination, error) {
	if len(flagDestinations) > 0 {
		out := make([]destination, 0, len(flagDestinations))
		for _, slug := range flagDestinations {
			dest, err := api.GetDestination(ctx, utils.NormalizeSlug(slug))
			if err != nil {
				return nil, err
			}
			out = append(out, *dest)
		}
		return out, nil
	}
	return api.ListDestinations(ctx, flagRegion)
}

const (
	maxAttempts  = 3
	retryBackoff = 5 * time.Second
)

// generateWithRetry retries transient generation failures with a growing
// backoff, giving up after maxAttempts.
func generateWithRetry(ctx context.Context, gemini *geminiClient, dest destination, category string) (*guideContent, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		content, err := gemini.GenerateGuide(ctx, dest, category)
		if err == nil {
			return content, nil
		}
		lastErr = err
		slog.Warn("generation attempt failed", "destination", dest.Slug, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	return nil, lastErr
}
