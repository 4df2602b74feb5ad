package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yashrajoria/streetwear-backend/auth"
	"github.com/yashrajoria/streetwear-backend/common/logger"
	"github.com/yashrajoria/streetwear-backend/config"
	"github.com/yashrajoria/streetwear-backend/database"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
	"github.com/yashrajoria/streetwear-backend/services"
)

var (
	timeout  time.Duration
	logLevel string

	adminEmail    string
	adminName     string
	adminPassword string
)

var rootCmd = &cobra.Command{
	Use:           "storectl",
	Short:         "Administer the streetwear storefront",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the relational schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := connect()
		if err != nil {
			return err
		}
		defer database.ClosePostgres(db)

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("Schema is up to date")
		return nil
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin user, or promote an existing user",
	Long: `Create an admin user with a local password.

If a user with the email already exists it is promoted to admin and its
password is replaced. The password may also be passed through
STORECTL_ADMIN_PASSWORD to keep it out of shell history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := adminPassword
		if password == "" {
			password = os.Getenv("STORECTL_ADMIN_PASSWORD")
		}
		if adminEmail == "" || password == "" {
			return fmt.Errorf("--email and a password are required")
		}

		db, log, err := connect()
		if err != nil {
			return err
		}
		defer database.ClosePostgres(db)

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		// Admin creation never issues a session.
		svc := services.NewAdminAuthService(repository.NewGormUserRepository(db), auth.NewJWTSessionManager("", time.Minute), log)
		user, svcErr := svc.CreateAdmin(ctx, adminEmail, adminName, password)
		if svcErr != nil {
			return svcErr
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin %s ready (id %s)\n", user.Email, user.ID)
		return nil
	},
}

var seedCategoriesCmd = &cobra.Command{
	Use:   "seed-categories",
	Short: "Create the default catalog categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := connect()
		if err != nil {
			return err
		}
		defer database.ClosePostgres(db)

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		svc := services.NewCategoryService(repository.NewGormCategoryRepository(db), nil, log)
		return seedCategories(ctx, svc, cmd.OutOrStdout())
	},
}

// defaultCategories is the launch catalog.
var defaultCategories = []models.CategoryInput{
	{Name: "Oversized Tees", SortOrder: 1},
	{Name: "Hoodies", SortOrder: 2},
	{Name: "Sweatshirts", SortOrder: 3},
	{Name: "Joggers", SortOrder: 4},
	{Name: "Caps", SortOrder: 5},
	{Name: "Accessories", SortOrder: 6},
}

// seedCategories creates each default category, skipping ones whose slug
// already exists.
func seedCategories(ctx context.Context, svc services.CategoryService, out io.Writer) error {
	for i := range defaultCategories {
		input := defaultCategories[i]
		category, svcErr := svc.CreateCategory(ctx, &input)
		switch {
		case svcErr == nil:
			fmt.Fprintf(out, "created %s (%s)\n", category.Name, category.Slug)
		case svcErr.StatusCode == http.StatusConflict:
			fmt.Fprintf(out, "skipped %s: already exists\n", input.Name)
		default:
			return fmt.Errorf("seed %s: %w", input.Name, svcErr)
		}
	}
	return nil
}

func connect() (*gorm.DB, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Env, "storectl", logLevel, nil)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.ConnectPostgres(cfg.PostgresDSN(), log)
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level")

	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password (or STORECTL_ADMIN_PASSWORD)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(seedCategoriesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
