package search

import (
	"log/slog"
	"testing"
	"time"

	"github.com/arifwid/opstrack/internal/asset"
	assetPostgres "github.com/arifwid/opstrack/internal/asset/postgres"
	"github.com/arifwid/opstrack/internal/auth"
	"github.com/arifwid/opstrack/internal/deployment"
	deploymentPostgres "github.com/arifwid/opstrack/internal/deployment/postgres"
	"github.com/arifwid/opstrack/internal/incident"
	incidentPostgres "github.com/arifwid/opstrack/internal/incident/postgres"
	"github.com/arifwid/opstrack/internal/rbac"
	"github.com/arifwid/opstrack/internal/rca"
	rcaPostgres "github.com/arifwid/opstrack/internal/rca/postgres"
	"github.com/arifwid/opstrack/internal/task"
	taskPostgres "github.com/arifwid/opstrack/internal/task/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSearchService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SearchService Suite")
}

var _ = Describe("SearchService", func() {
	var (
		db      *gorm.DB
		service *Service

		manager *auth.Actor
		member  *auth.Actor
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(
			&task.Task{},
			&deployment.Deployment{},
			&incident.Incident{},
			&rca.RCA{},
			&asset.Asset{},
		)).To(Succeed())

		service = NewService(
			taskPostgres.NewTaskRepository(db),
			deploymentPostgres.NewDeploymentRepository(db),
			incidentPostgres.NewIncidentRepository(db),
			rcaPostgres.NewRCARepository(db),
			assetPostgres.NewAssetRepository(db),
			slog.Default(),
		)

		manager = &auth.Actor{ID: 1, Username: "mira", Role: rbac.RoleManager}
		member = &auth.Actor{ID: 10, Username: "mel", Role: rbac.RoleMember}

		now := time.Now()
		Expect(db.Create(&task.Task{
			Name: "Prod gateway rollout", Description: "ship it",
			Priority: task.PriorityHigh, Status: task.StatusPending,
			CreatedBy: member.ID, CreatedAt: now, UpdatedAt: now,
		}).Error).To(Succeed())
		Expect(db.Create(&task.Task{
			Name: "prod cleanup", Description: "remove stale nodes",
			Priority: task.PriorityLow, Status: task.StatusPending,
			CreatedBy: 99, CreatedAt: now, UpdatedAt: now,
		}).Error).To(Succeed())
		Expect(db.Create(&deployment.Deployment{
			Name: "prod api v2", Description: "major release",
			Status: deployment.StatusSuccessful, DeploymentDate: now,
			DeployedBy: 99, CreatedAt: now, UpdatedAt: now,
		}).Error).To(Succeed())
		Expect(db.Create(&incident.Incident{
			Name: "prod outage", Description: "gateway down",
			Severity: incident.SeverityCritical, Status: incident.StatusOpen,
			IncidentDate: now, CreatedBy: 99, CreatedAt: now, UpdatedAt: now,
		}).Error).To(Succeed())
		Expect(db.Create(&asset.Asset{
			ServerName: "prod-db-01", AssetID: "AST-1",
			OwnerID: member.ID, CreatedAt: now, UpdatedAt: now,
		}).Error).To(Succeed())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("rejects an empty query", func() {
		_, err := service.Search(manager, "   ", TypeAll)
		Expect(err).To(MatchError(ErrEmptyQuery))
	})

	It("rejects an unknown type", func() {
		_, err := service.Search(manager, "prod", "tickets")
		Expect(err).To(MatchError(ErrInvalidType))
	})

	It("matches case-insensitively across every entity for a manager", func() {
		results, err := service.Search(manager, "PROD", TypeAll)
		Expect(err).NotTo(HaveOccurred())

		Expect(results.Tasks).To(HaveLen(2))
		Expect(results.Deployments).To(HaveLen(1))
		Expect(results.Incidents).To(HaveLen(1))
		Expect(results.Assets).To(HaveLen(1))
		Expect(results.Total).To(Equal(5))
	})

	It("re-applies the member scope per entity type", func() {
		results, err := service.Search(member, "prod", TypeAll)
		Expect(err).NotTo(HaveOccurred())

		Expect(results.Tasks).To(HaveLen(1))
		Expect(results.Tasks[0].Name).To(Equal("Prod gateway rollout"))
		Expect(results.Deployments).To(BeEmpty())
		Expect(results.Incidents).To(BeEmpty())
		Expect(results.Assets).To(HaveLen(1))
		Expect(results.Total).To(Equal(2))
	})

	It("restricts results to the requested type", func() {
		results, err := service.Search(manager, "prod", TypeIncidents)
		Expect(err).NotTo(HaveOccurred())

		Expect(results.Incidents).To(HaveLen(1))
		Expect(results.Tasks).To(BeEmpty())
		Expect(results.Total).To(Equal(1))
	})

	It("recomputes task overdue status in results", func() {
		past := time.Now().Add(-48 * time.Hour)
		Expect(db.Create(&task.Task{
			Name: "prod overdue audit", Description: "late",
			Priority: task.PriorityMedium, Status: task.StatusPending,
			DueDate: &past, CreatedBy: 99,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}).Error).To(Succeed())

		results, err := service.Search(manager, "overdue audit", TypeTasks)
		Expect(err).NotTo(HaveOccurred())
		Expect(results.Tasks).To(HaveLen(1))
		Expect(results.Tasks[0].Status).To(Equal(task.StatusOverdue))
	})
})
