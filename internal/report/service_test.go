package report

import (
	"bytes"
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

func TestReportService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ReportService Suite")
}

var _ = Describe("ReportService", func() {
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
			map[string]Renderer{FormatCSV: NewCSVRenderer()},
			slog.Default(),
		)

		manager = &auth.Actor{ID: 1, Username: "mira", Role: rbac.RoleManager}
		member = &auth.Actor{ID: 10, Username: "mel", Role: rbac.RoleMember}

		now := time.Now()
		past := now.Add(-24 * time.Hour)

		Expect(db.Create(&task.Task{
			Name: "scoped task", Priority: task.PriorityLow, Status: task.StatusPending,
			CreatedBy: member.ID, CreatedAt: now, UpdatedAt: now,
		}).Error).To(Succeed())
		Expect(db.Create(&task.Task{
			Name: "late task", Priority: task.PriorityHigh, Status: task.StatusPending,
			DueDate: &past, CreatedBy: 99, CreatedAt: now, UpdatedAt: now,
		}).Error).To(Succeed())
		Expect(db.Create(&deployment.Deployment{
			Name: "release", Status: deployment.StatusSuccessful, Environment: "production",
			DeploymentDate: now, DeployedBy: 99, CreatedAt: now, UpdatedAt: now,
		}).Error).To(Succeed())
		Expect(db.Create(&incident.Incident{
			Name: "outage", Description: "down", Severity: incident.SeverityHigh,
			Status: incident.StatusOpen, IncidentDate: now,
			CreatedBy: 99, CreatedAt: now, UpdatedAt: now,
		}).Error).To(Succeed())
		Expect(db.Create(&asset.Asset{
			ServerName: "db-01", AssetID: "AST-1", AssetType: "database",
			AssetValueRating: asset.RatingCritical, OwnerID: member.ID,
			CreatedAt: now, UpdatedAt: now,
		}).Error).To(Succeed())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Dashboard", func() {
		It("sums status counts to the scoped totals", func() {
			d, err := service.Dashboard(manager)
			Expect(err).NotTo(HaveOccurred())

			taskSum := 0
			for _, n := range d.Tasks.ByStatus {
				taskSum += n
			}
			Expect(taskSum).To(Equal(d.Tasks.Total))
			Expect(d.Tasks.Total).To(Equal(2))

			deploySum := 0
			for _, n := range d.Deployments.ByStatus {
				deploySum += n
			}
			Expect(deploySum).To(Equal(d.Deployments.Total))
		})

		It("counts overdue from the derived status, not the stored one", func() {
			d, err := service.Dashboard(manager)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Tasks.ByStatus[task.StatusOverdue]).To(Equal(1))
			Expect(d.Tasks.ByStatus[task.StatusPending]).To(Equal(1))
		})

		It("scopes member dashboards to their own rows", func() {
			d, err := service.Dashboard(member)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Tasks.Total).To(Equal(1))
			Expect(d.Deployments.Total).To(Equal(0))
			Expect(d.Incidents.Total).To(Equal(0))
			Expect(d.Assets.Total).To(Equal(1))
		})
	})

	Describe("Analytics", func() {
		It("breaks entities down on both dimensions", func() {
			a, err := service.Analytics(manager)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.TaskByPriority[task.PriorityLow]).To(Equal(1))
			Expect(a.TaskByPriority[task.PriorityHigh]).To(Equal(1))
			Expect(a.DeploymentByEnv["production"]).To(Equal(1))
			Expect(a.IncidentBySeverity[incident.SeverityHigh]).To(Equal(1))
			Expect(a.AssetByType["database"]).To(Equal(1))
			Expect(a.AssetByValueRating[asset.RatingCritical]).To(Equal(1))
		})
	})

	Describe("Export", func() {
		It("rejects an unknown entity type", func() {
			_, _, err := service.Export(manager, "tickets", FormatCSV)
			Expect(err).To(MatchError(ErrInvalidExportType))
		})

		It("rejects a format with no renderer", func() {
			_, _, err := service.Export(manager, ExportTasks, FormatPDF)
			Expect(err).To(MatchError(ErrFormatUnavailable))
		})

		It("renders scoped task rows as CSV", func() {
			doc, renderer, err := service.Export(manager, ExportTasks, FormatCSV)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Rows).To(HaveLen(2))

			var buf bytes.Buffer
			Expect(renderer.Render(&buf, *doc)).To(Succeed())

			out := buf.String()
			Expect(out).To(ContainSubstring("id,name,priority,status"))
			Expect(out).To(ContainSubstring("scoped task"))
			Expect(out).To(ContainSubstring("late task"))
		})

		It("scopes member exports to their own rows", func() {
			doc, _, err := service.Export(member, ExportAssets, FormatCSV)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Rows).To(HaveLen(1))
			Expect(doc.Rows[0][1]).To(Equal("AST-1"))
		})
	})
})
