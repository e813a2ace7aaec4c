package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/user"
	userPostgres "github.com/frahmantamala/sistema-extras/internal/user/postgres"
	"github.com/frahmantamala/sistema-extras/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the first admin account",
	Long:  `Create the admin account used to log in for the first time. With --clear every business table is emptied first.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		lg := logger.LoggerWrapper()

		db, err := initDB(ctx, cfg.Database, lg)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			if err := clearTables(gormDB); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared recibos, extras, employees, companies and users")
		}

		service := user.NewService(userPostgres.NewUserRepository(gormDB), cfg.Security.BCryptCost, lg)
		admin, err := service.CreateUser(ctx, user.CreateUserDTO{
			Email:    seedEmail,
			Password: seedPassword,
			Name:     seedName,
			Role:     internal.RoleAdmin,
		})
		switch {
		case errors.Is(err, internal.ErrUserExists):
			fmt.Println("admin user already exists:", seedEmail)
		case err != nil:
			log.Fatalf("failed to insert admin user: %v", err)
		default:
			fmt.Println("Seeded admin user:", admin.Email)
		}
	},
}

// clearTables deletes children before parents so foreign keys never block.
func clearTables(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"recibos", "extras", "employees", "companies", "users"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}
