package postgres

import (
	"testing"
	"time"

	"github.com/arifwid/opstrack/internal/rbac"
	"github.com/arifwid/opstrack/internal/task"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestTaskRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TaskRepository Suite")
}

var _ = Describe("TaskRepository", func() {
	var (
		db   *gorm.DB
		repo task.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&task.Task{})).To(Succeed())

		repo = NewTaskRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	seed := func(name string, createdBy int64, assignedTo *int64, status, priority string) *task.Task {
		t := &task.Task{
			Name:        name,
			Description: name + " description",
			Priority:    priority,
			Status:      status,
			CreatedBy:   createdBy,
			AssignedTo:  assignedTo,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		Expect(repo.Create(t)).To(Succeed())
		return t
	}

	Describe("List scoping", func() {
		var memberID int64

		BeforeEach(func() {
			memberID = 10
			seed("own task", memberID, nil, task.StatusPending, task.PriorityLow)
			seed("assigned task", 99, &memberID, task.StatusPending, task.PriorityHigh)
			seed("foreign task", 99, nil, task.StatusPending, task.PriorityMedium)
		})

		It("returns only created or assigned rows for a member scope", func() {
			tasks, err := repo.List(rbac.ScopeFor(rbac.RoleMember, memberID), task.ListFilters{})
			Expect(err).NotTo(HaveOccurred())

			names := []string{}
			for _, t := range tasks {
				names = append(names, t.Name)
			}
			Expect(names).To(ConsistOf("own task", "assigned task"))
		})

		It("returns everything for a manager scope", func() {
			tasks, err := repo.List(rbac.ScopeFor(rbac.RoleManager, 1), task.ListFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(tasks).To(HaveLen(3))
		})

		It("applies the priority filter inside the scope", func() {
			tasks, err := repo.List(rbac.ScopeFor(rbac.RoleMember, memberID), task.ListFilters{Priority: task.PriorityHigh})
			Expect(err).NotTo(HaveOccurred())
			Expect(tasks).To(HaveLen(1))
			Expect(tasks[0].Name).To(Equal("assigned task"))
		})
	})

	Describe("Search", func() {
		BeforeEach(func() {
			seed("Deploy PROD gateway", 10, nil, task.StatusPending, task.PriorityHigh)
			seed("update staging docs", 10, nil, task.StatusPending, task.PriorityLow)
			seed("prod cleanup", 99, nil, task.StatusPending, task.PriorityLow)
		})

		It("matches case-insensitively on name", func() {
			tasks, err := repo.Search(rbac.ScopeFor(rbac.RoleManager, 1), "prod")
			Expect(err).NotTo(HaveOccurred())
			Expect(tasks).To(HaveLen(2))
		})

		It("keeps member scope applied", func() {
			tasks, err := repo.Search(rbac.ScopeFor(rbac.RoleMember, 10), "prod")
			Expect(err).NotTo(HaveOccurred())
			Expect(tasks).To(HaveLen(1))
			Expect(tasks[0].Name).To(Equal("Deploy PROD gateway"))
		})
	})

	Describe("Delete", func() {
		It("removes the row", func() {
			t := seed("to delete", 10, nil, task.StatusPending, task.PriorityLow)
			Expect(repo.Delete(t.ID)).To(Succeed())

			_, err := repo.GetByID(t.ID)
			Expect(err).To(MatchError(task.ErrTaskNotFound))
		})
	})
})
