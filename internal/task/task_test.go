package task

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTask(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Task Suite")
}

var _ = Describe("RefreshDerivedStatus", func() {
	var now time.Time

	BeforeEach(func() {
		now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	})

	It("marks a pending task overdue once its due date passes", func() {
		due := now.Add(-time.Hour)
		t := &Task{Status: StatusPending, DueDate: &due}

		Expect(t.RefreshDerivedStatus(now)).To(BeTrue())
		Expect(t.Status).To(Equal(StatusOverdue))
	})

	It("reverts overdue to pending when the due date moves into the future", func() {
		due := now.Add(48 * time.Hour)
		t := &Task{Status: StatusOverdue, DueDate: &due}

		Expect(t.RefreshDerivedStatus(now)).To(BeTrue())
		Expect(t.Status).To(Equal(StatusPending))
	})

	It("never touches completed tasks", func() {
		due := now.Add(-time.Hour)
		t := &Task{Status: StatusCompleted, DueDate: &due}

		Expect(t.RefreshDerivedStatus(now)).To(BeFalse())
		Expect(t.Status).To(Equal(StatusCompleted))
	})

	It("leaves tasks without a due date alone", func() {
		t := &Task{Status: StatusInProgress}

		Expect(t.RefreshDerivedStatus(now)).To(BeFalse())
		Expect(t.Status).To(Equal(StatusInProgress))
	})

	It("is idempotent", func() {
		due := now.Add(-time.Hour)
		t := &Task{Status: StatusPending, DueDate: &due}

		Expect(t.RefreshDerivedStatus(now)).To(BeTrue())
		Expect(t.RefreshDerivedStatus(now)).To(BeFalse())
		Expect(t.Status).To(Equal(StatusOverdue))
	})
})

var _ = Describe("Complete and Reopen", func() {
	It("sets completed_at exactly when completed", func() {
		now := time.Now()
		t := &Task{Status: StatusInProgress}

		t.Complete(now)
		Expect(t.Status).To(Equal(StatusCompleted))
		Expect(t.CompletedAt).NotTo(BeNil())

		t.Reopen(StatusPending, now)
		Expect(t.Status).To(Equal(StatusPending))
		Expect(t.CompletedAt).To(BeNil())
	})
})

var _ = Describe("OwnerIDs", func() {
	It("includes the creator and the assignee", func() {
		assignee := int64(9)
		t := &Task{CreatedBy: 3, AssignedTo: &assignee}
		Expect(t.OwnerIDs()).To(ConsistOf(int64(3), int64(9)))
	})

	It("includes only the creator when unassigned", func() {
		t := &Task{CreatedBy: 3}
		Expect(t.OwnerIDs()).To(ConsistOf(int64(3)))
	})
})
