package postgres

import (
	"testing"
	"time"

	"github.com/arifwid/opstrack/internal/incident"
	"github.com/arifwid/opstrack/internal/rbac"
	"github.com/arifwid/opstrack/internal/rca"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRCARepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RCARepository Suite")
}

var _ = Describe("RCARepository", func() {
	var (
		db   *gorm.DB
		repo rca.Repository
		inc  *incident.Incident
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&incident.Incident{}, &rca.RCA{})).To(Succeed())

		inc = &incident.Incident{
			Name:         "database outage",
			Description:  "primary down",
			Severity:     incident.SeverityCritical,
			Status:       incident.StatusResolved,
			IncidentDate: time.Now().Add(-4 * time.Hour),
			CreatedBy:    1,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		Expect(db.Create(inc).Error).To(Succeed())

		repo = NewRCARepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	newRCA := func(incidentID, assignedTo int64) *rca.RCA {
		return &rca.RCA{
			IncidentID: incidentID,
			RootCause:  "failed disk in the primary",
			Status:     rca.StatusDraft,
			AssignedTo: assignedTo,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
	}

	Describe("Create", func() {
		It("rejects an rca for a missing incident", func() {
			err := repo.Create(newRCA(9999, 1))
			Expect(err).To(MatchError(rca.ErrIncidentNotFound))
		})

		It("allows exactly one rca per incident", func() {
			Expect(repo.Create(newRCA(inc.ID, 1))).To(Succeed())

			err := repo.Create(newRCA(inc.ID, 2))
			Expect(err).To(MatchError(rca.ErrDuplicateRCA))

			var count int64
			Expect(db.Model(&rca.RCA{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("GetByIncident", func() {
		It("resolves the attached rca", func() {
			created := newRCA(inc.ID, 5)
			Expect(repo.Create(created)).To(Succeed())

			got, err := repo.GetByIncident(inc.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(created.ID))
		})

		It("returns not found when no rca exists", func() {
			_, err := repo.GetByIncident(inc.ID)
			Expect(err).To(MatchError(rca.ErrRCANotFound))
		})
	})

	Describe("List scoping", func() {
		It("limits members to rcas assigned to them", func() {
			Expect(repo.Create(newRCA(inc.ID, 10))).To(Succeed())

			mine, err := repo.List(rbac.ScopeFor(rbac.RoleMember, 10), rca.ListFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(mine).To(HaveLen(1))

			theirs, err := repo.List(rbac.ScopeFor(rbac.RoleMember, 99), rca.ListFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(theirs).To(BeEmpty())
		})
	})

	Describe("Search", func() {
		It("matches root cause text case-insensitively", func() {
			Expect(repo.Create(newRCA(inc.ID, 1))).To(Succeed())

			hits, err := repo.Search(rbac.ScopeFor(rbac.RoleManager, 1), "FAILED DISK")
			Expect(err).NotTo(HaveOccurred())
			Expect(hits).To(HaveLen(1))
		})
	})
})
