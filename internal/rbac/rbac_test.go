package rbac

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRBAC(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Suite")
}

var _ = Describe("CanCreateRole", func() {
	It("lets super admins create managers and supervisors only", func() {
		Expect(CanCreateRole(RoleSuperAdmin, RoleManager)).To(BeTrue())
		Expect(CanCreateRole(RoleSuperAdmin, RoleSupervisor)).To(BeTrue())
		Expect(CanCreateRole(RoleSuperAdmin, RoleMember)).To(BeFalse())
		Expect(CanCreateRole(RoleSuperAdmin, RoleSuperAdmin)).To(BeFalse())
	})

	It("lets managers and supervisors create members only", func() {
		Expect(CanCreateRole(RoleManager, RoleMember)).To(BeTrue())
		Expect(CanCreateRole(RoleManager, RoleManager)).To(BeFalse())
		Expect(CanCreateRole(RoleSupervisor, RoleMember)).To(BeTrue())
		Expect(CanCreateRole(RoleSupervisor, RoleSupervisor)).To(BeFalse())
	})

	It("lets members create nobody", func() {
		Expect(CanCreateRole(RoleMember, RoleMember)).To(BeFalse())
		Expect(CanCreateRole(RoleMember, RoleManager)).To(BeFalse())
	})
})

var _ = Describe("CanPerform on records", func() {
	const actorID = int64(7)

	It("allows anyone to create records", func() {
		Expect(CanPerform(RoleMember, actorID, ActionCreate, RecordResource(KindTask))).To(BeTrue())
		Expect(CanPerform(RoleSuperAdmin, actorID, ActionCreate, RecordResource(KindAsset))).To(BeTrue())
	})

	It("restricts member views to owned records", func() {
		owned := RecordResource(KindTask, actorID)
		foreign := RecordResource(KindTask, 99)

		Expect(CanPerform(RoleMember, actorID, ActionView, owned)).To(BeTrue())
		Expect(CanPerform(RoleMember, actorID, ActionView, foreign)).To(BeFalse())
	})

	It("lets higher roles view and manage everything", func() {
		foreign := RecordResource(KindIncident, 99)

		for _, role := range []Role{RoleSuperAdmin, RoleManager, RoleSupervisor} {
			Expect(CanPerform(role, actorID, ActionView, foreign)).To(BeTrue())
			Expect(CanPerform(role, actorID, ActionUpdate, foreign)).To(BeTrue())
			Expect(CanPerform(role, actorID, ActionDelete, foreign)).To(BeTrue())
		}
	})

	It("lets members edit and delete records they own", func() {
		owned := RecordResource(KindDeployment, actorID)
		foreign := RecordResource(KindDeployment, 99)

		Expect(CanPerform(RoleMember, actorID, ActionUpdate, owned)).To(BeTrue())
		Expect(CanPerform(RoleMember, actorID, ActionDelete, owned)).To(BeTrue())
		Expect(CanPerform(RoleMember, actorID, ActionUpdate, foreign)).To(BeFalse())
		Expect(CanPerform(RoleMember, actorID, ActionDelete, foreign)).To(BeFalse())
	})

	It("only lets managers and supervisors assign to others", func() {
		res := RecordResource(KindTask)

		Expect(CanPerform(RoleManager, actorID, ActionAssign, res)).To(BeTrue())
		Expect(CanPerform(RoleSupervisor, actorID, ActionAssign, res)).To(BeTrue())
		Expect(CanPerform(RoleSuperAdmin, actorID, ActionAssign, res)).To(BeFalse())
		Expect(CanPerform(RoleMember, actorID, ActionAssign, res)).To(BeFalse())
	})

	It("rejects unknown roles outright", func() {
		Expect(CanPerform(Role("intern"), actorID, ActionView, RecordResource(KindTask, actorID))).To(BeFalse())
	})
})

var _ = Describe("CanPerform on users", func() {
	const actorID = int64(3)

	It("applies the creation matrix", func() {
		Expect(CanPerform(RoleSuperAdmin, actorID, ActionCreate, UserResource(0, RoleManager))).To(BeTrue())
		Expect(CanPerform(RoleManager, actorID, ActionCreate, UserResource(0, RoleMember))).To(BeTrue())
		Expect(CanPerform(RoleMember, actorID, ActionCreate, UserResource(0, RoleMember))).To(BeFalse())
	})

	It("always allows viewing and editing your own profile", func() {
		self := UserResource(actorID, RoleMember)
		Expect(CanPerform(RoleMember, actorID, ActionView, self)).To(BeTrue())
		Expect(CanPerform(RoleMember, actorID, ActionUpdate, self)).To(BeTrue())
	})

	It("blocks members from other profiles", func() {
		other := UserResource(42, RoleMember)
		Expect(CanPerform(RoleMember, actorID, ActionView, other)).To(BeFalse())
		Expect(CanPerform(RoleMember, actorID, ActionUpdate, other)).To(BeFalse())
	})

	It("never allows deleting super admins or yourself", func() {
		Expect(CanPerform(RoleSuperAdmin, actorID, ActionDelete, UserResource(42, RoleSuperAdmin))).To(BeFalse())
		Expect(CanPerform(RoleSuperAdmin, actorID, ActionDelete, UserResource(actorID, RoleManager))).To(BeFalse())
		Expect(CanPerform(RoleManager, actorID, ActionDelete, UserResource(42, RoleMember))).To(BeTrue())
	})
})

var _ = Describe("Scope", func() {
	It("is unrestricted for super admin, manager and supervisor", func() {
		Expect(ScopeFor(RoleSuperAdmin, 1).Unrestricted()).To(BeTrue())
		Expect(ScopeFor(RoleManager, 1).Unrestricted()).To(BeTrue())
		Expect(ScopeFor(RoleSupervisor, 1).Unrestricted()).To(BeTrue())
	})

	It("is restricted for members", func() {
		Expect(ScopeFor(RoleMember, 1).Unrestricted()).To(BeFalse())
	})
})
