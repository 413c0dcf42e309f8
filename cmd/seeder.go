package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/arifwid/opstrack/internal/asset"
	assetPostgres "github.com/arifwid/opstrack/internal/asset/postgres"
	"github.com/arifwid/opstrack/internal/auth"
	authPostgres "github.com/arifwid/opstrack/internal/auth/postgres"
	"github.com/arifwid/opstrack/internal/core/events"
	"github.com/arifwid/opstrack/internal/deployment"
	deploymentPostgres "github.com/arifwid/opstrack/internal/deployment/postgres"
	"github.com/arifwid/opstrack/internal/incident"
	incidentPostgres "github.com/arifwid/opstrack/internal/incident/postgres"
	"github.com/arifwid/opstrack/internal/task"
	taskPostgres "github.com/arifwid/opstrack/internal/task/postgres"
	"github.com/arifwid/opstrack/internal/user"
	userPostgres "github.com/arifwid/opstrack/internal/user/postgres"
	"github.com/arifwid/opstrack/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the bootstrap super admin",
	Long:  `Create the initial super admin account, and optionally a set of sample records for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		lg := logger.L()
		bus := events.NewEventBus(lg)

		tokenGen := auth.NewJWTTokenGenerator(
			cfg.Security.AccessTokenSecret,
			cfg.Security.RefreshTokenSecret,
			cfg.Security.AccessTokenDuration,
			cfg.Security.RefreshTokenDuration,
		)
		authService := auth.NewService(authPostgres.NewAuthRepository(gormDB), tokenGen, cfg.Security.BCryptCost)
		userService := user.NewService(userPostgres.NewUserRepository(gormDB), authService, bus, lg)

		adminUsername := getenvDefault("SEED_ADMIN_USERNAME", "admin")
		adminEmail := getenvDefault("SEED_ADMIN_EMAIL", "admin@opstrack.local")
		adminPassword := getenvDefault("SEED_ADMIN_PASSWORD", "changeme-now")

		admin, err := userService.EnsureSuperAdmin(adminUsername, adminEmail, adminPassword)
		if err != nil {
			log.Fatalf("failed to bootstrap super admin: %v", err)
		}
		if admin == nil {
			fmt.Println("super admin already exists; nothing to do")
		} else {
			fmt.Println("seeded super admin:", adminUsername)
		}

		if seedSampleData {
			if err := seedSampleRecords(gormDB); err != nil {
				log.Fatalf("failed to seed sample data: %v", err)
			}
			fmt.Println("seeded sample records")
		}
	},
}

// seedSampleRecords inserts a handful of records owned by the first super
// admin so a fresh environment has something to look at.
func seedSampleRecords(db *gorm.DB) error {
	var adminID int64
	if err := db.Raw("SELECT id FROM users WHERE role = 'super_admin' ORDER BY id LIMIT 1").Row().Scan(&adminID); err != nil {
		return fmt.Errorf("no super admin to own sample records: %w", err)
	}

	var taskCount int64
	if err := db.Model(&task.Task{}).Count(&taskCount).Error; err != nil {
		return err
	}
	if taskCount > 0 {
		return nil
	}

	now := time.Now()
	due := now.Add(72 * time.Hour)

	sampleTask := &task.Task{
		Name:        "Review backup rotation",
		Description: "Verify the nightly backup rotation completed for all production databases.",
		Priority:    task.PriorityHigh,
		Status:      task.StatusPending,
		DueDate:     &due,
		CreatedBy:   adminID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := taskPostgres.NewTaskRepository(db).Create(sampleTask); err != nil {
		return err
	}

	sampleDeployment := &deployment.Deployment{
		Name:           "api v1.4.2",
		Description:    "Rollout of the v1.4.2 API build to production.",
		Status:         deployment.StatusSuccessful,
		DeploymentDate: now.Add(-24 * time.Hour),
		Environment:    "production",
		Version:        "1.4.2",
		DeployedBy:     adminID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := deploymentPostgres.NewDeploymentRepository(db).Create(sampleDeployment); err != nil {
		return err
	}

	sampleIncident := &incident.Incident{
		Name:         "Elevated API latency",
		Description:  "p99 latency above threshold on the orders endpoint.",
		Severity:     incident.SeverityHigh,
		Status:       incident.StatusOpen,
		IncidentDate: now.Add(-2 * time.Hour),
		CreatedBy:    adminID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := incidentPostgres.NewIncidentRepository(db).Create(sampleIncident); err != nil {
		return err
	}

	sampleAsset := &asset.Asset{
		ServerName: "db-primary-01",
		AssetID:    "AST-0001",
		HostName:   "db-primary-01.internal",
		IPAddress:  "10.0.1.10",
		AssetType:  "database server",
		Purpose:    "Primary PostgreSQL instance",
		OwnerID:    adminID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return assetPostgres.NewAssetRepository(db).Create(sampleAsset)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
