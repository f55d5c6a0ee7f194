package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"wellmart/backend/internal/config"
	"wellmart/backend/internal/logging"
	"wellmart/backend/internal/repository"
	"wellmart/backend/internal/services"
	"wellmart/backend/pkg/models"
)

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "wellmart-seed",
		Short: "Apply the schema and seed sample products for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configFile)
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Server.Mode)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Sync()

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, repository.Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info("Schema applied")

	store := repository.NewPostgresStore(pool)
	productService := services.NewProductService(store, logger)

	// Check for existing products to prevent duplicates
	existing, err := store.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list existing products: %w", err)
	}
	existingMap := make(map[string]bool)
	for _, p := range existing {
		existingMap[p.Name] = true
	}

	seeds := []struct {
		Name           string
		Ingredients    []string
		WorkflowStatus models.WorkflowStatus
	}{
		{"Organic Granola", []string{"whole grain oats", "organic honey", "fiber blend"}, models.WorkflowStatusDraft},
		{"Peanut Protein Bar", []string{"protein isolate", "sugar", "natural peanut butter"}, models.WorkflowStatusPendingReview},
		{"Masala Crackers", []string{"maida", "refined oil", "preservatives"}, models.WorkflowStatusPendingReview},
		{"Cold-Pressed Olive Oil", []string{"olive oil"}, models.WorkflowStatusDraft},
	}

	for _, seed := range seeds {
		if existingMap[seed.Name] {
			logger.Info("Skipping existing product", "name", seed.Name)
			continue
		}

		product, err := productService.Create(ctx, &models.Product{
			Name:           seed.Name,
			Ingredients:    seed.Ingredients,
			WorkflowStatus: seed.WorkflowStatus,
		})
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", seed.Name, err)
		}
		logger.Info("Seeded product",
			"id", product.ID,
			"name", product.Name,
			"workflow_status", product.WorkflowStatus,
			"health_score", product.HealthScore)
	}

	logger.Info("Seeding complete")
	return nil
}
