package incident

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIncident(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Incident Suite")
}

var _ = Describe("NormalizeResolvedAt", func() {
	var now time.Time

	BeforeEach(func() {
		now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	})

	It("stamps resolved_at when the incident becomes resolved", func() {
		i := &Incident{Status: StatusResolved}
		i.NormalizeResolvedAt(now)

		Expect(i.ResolvedAt).NotTo(BeNil())
		Expect(*i.ResolvedAt).To(Equal(now))
	})

	It("keeps the original timestamp on repeated writes", func() {
		earlier := now.Add(-time.Hour)
		i := &Incident{Status: StatusClosed, ResolvedAt: &earlier}
		i.NormalizeResolvedAt(now)

		Expect(i.ResolvedAt).To(Equal(&earlier))
	})

	It("clears resolved_at when an incident reopens", func() {
		stamp := now.Add(-time.Hour)
		i := &Incident{Status: StatusInvestigating, ResolvedAt: &stamp}
		i.NormalizeResolvedAt(now)

		Expect(i.ResolvedAt).To(BeNil())
	})

	It("leaves open incidents without a timestamp", func() {
		i := &Incident{Status: StatusOpen}
		i.NormalizeResolvedAt(now)

		Expect(i.ResolvedAt).To(BeNil())
	})
})
