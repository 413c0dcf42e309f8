package user

import (
	"log/slog"
	"testing"

	"github.com/arifwid/opstrack/internal/auth"
	"github.com/arifwid/opstrack/internal/core/events"
	"github.com/arifwid/opstrack/internal/rbac"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "UserService Suite")
}

type fakeRepo struct {
	users  map[int64]*User
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]*User{}, nextID: 1}
}

func (r *fakeRepo) Create(u *User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return ErrDuplicateUser
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) GetByID(id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetByUsername(username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepo) List() ([]*User, error) {
	out := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeRepo) Update(u *User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) Deactivate(id int64) error {
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.IsActive = false
	return nil
}

func (r *fakeRepo) CountByRole(role rbac.Role) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeHasher struct{}

func (fakeHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

var _ = Describe("UserService", func() {
	var (
		repo    *fakeRepo
		service *Service

		superAdmin *auth.Actor
		manager    *auth.Actor
		member     *auth.Actor
	)

	BeforeEach(func() {
		repo = newFakeRepo()
		bus := events.NewEventBus(slog.Default())
		service = NewService(repo, fakeHasher{}, bus, slog.Default())

		superAdmin = &auth.Actor{ID: 1, Username: "root", Role: rbac.RoleSuperAdmin}
		manager = &auth.Actor{ID: 2, Username: "mira", Role: rbac.RoleManager}
		member = &auth.Actor{ID: 3, Username: "mel", Role: rbac.RoleMember}
	})

	Describe("CreateUser", func() {
		It("lets a super admin create a manager and records the creator", func() {
			u, err := service.CreateUser(superAdmin, CreateUserDTO{
				Username: "new.manager",
				Email:    "nm@example.com",
				Password: "longenough",
				Role:     "manager",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(u.Role).To(Equal(rbac.RoleManager))
			Expect(u.CreatedBy).NotTo(BeNil())
			Expect(*u.CreatedBy).To(Equal(superAdmin.ID))
			Expect(u.PasswordHash).To(Equal("hashed:longenough"))
		})

		It("denies a super admin creating a member", func() {
			_, err := service.CreateUser(superAdmin, CreateUserDTO{
				Username: "m",
				Email:    "m@example.com",
				Password: "longenough",
				Role:     "member",
			})

			Expect(err).To(MatchError(ErrRoleDenied))
		})

		It("lets a manager create a member", func() {
			u, err := service.CreateUser(manager, CreateUserDTO{
				Username: "new.member",
				Email:    "nmem@example.com",
				Password: "longenough",
				Role:     "member",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(u.Role).To(Equal(rbac.RoleMember))
		})

		It("denies members creating anyone", func() {
			_, err := service.CreateUser(member, CreateUserDTO{
				Username: "x",
				Email:    "x@example.com",
				Password: "longenough",
				Role:     "member",
			})

			Expect(err).To(MatchError(ErrRoleDenied))
		})

		It("rejects short passwords before touching the repo", func() {
			_, err := service.CreateUser(superAdmin, CreateUserDTO{
				Username: "x",
				Email:    "x@example.com",
				Password: "short",
				Role:     "manager",
			})

			Expect(err).To(HaveOccurred())
			Expect(repo.users).To(BeEmpty())
		})

		It("surfaces duplicates from the repository", func() {
			dto := CreateUserDTO{
				Username: "dupe",
				Email:    "dupe@example.com",
				Password: "longenough",
				Role:     "manager",
			}
			_, err := service.CreateUser(superAdmin, dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateUser(superAdmin, dto)
			Expect(err).To(MatchError(ErrDuplicateUser))
		})
	})

	Describe("UpdateUser role changes", func() {
		var target *User

		BeforeEach(func() {
			target = &User{Username: "t", Email: "t@example.com", Role: rbac.RoleMember, IsActive: true}
			Expect(repo.Create(target)).To(Succeed())
		})

		It("denies promoting past what the actor could create", func() {
			role := "manager"
			_, err := service.UpdateUser(manager, target.ID, UpdateUserDTO{Role: &role})
			Expect(err).To(MatchError(ErrRoleDenied))
		})

		It("denies changing a super admin's role", func() {
			sa := &User{Username: "boss", Email: "boss@example.com", Role: rbac.RoleSuperAdmin, IsActive: true}
			Expect(repo.Create(sa)).To(Succeed())

			role := "manager"
			_, err := service.UpdateUser(superAdmin, sa.ID, UpdateUserDTO{Role: &role})
			Expect(err).To(MatchError(ErrProtected))
		})

		It("denies changing your own role", func() {
			self := &User{Username: "selfie", Email: "s@example.com", Role: rbac.RoleManager, IsActive: true}
			Expect(repo.Create(self)).To(Succeed())
			actor := &auth.Actor{ID: self.ID, Username: self.Username, Role: self.Role}

			role := "member"
			_, err := service.UpdateUser(actor, self.ID, UpdateUserDTO{Role: &role})
			Expect(err).To(MatchError(ErrProtected))
		})
	})

	Describe("DeactivateUser", func() {
		It("denies deleting a super admin account", func() {
			sa := &User{Username: "boss", Email: "boss@example.com", Role: rbac.RoleSuperAdmin, IsActive: true}
			Expect(repo.Create(sa)).To(Succeed())

			Expect(service.DeactivateUser(superAdmin, sa.ID)).To(MatchError(ErrProtected))
		})

		It("denies deleting yourself", func() {
			self := &User{Username: "mira", Email: "mira@example.com", Role: rbac.RoleManager, IsActive: true}
			Expect(repo.Create(self)).To(Succeed())
			actor := &auth.Actor{ID: self.ID, Username: self.Username, Role: self.Role}

			Expect(service.DeactivateUser(actor, self.ID)).To(MatchError(ErrProtected))
		})

		It("soft-deletes an ordinary member", func() {
			target := &User{Username: "gone", Email: "g@example.com", Role: rbac.RoleMember, IsActive: true}
			Expect(repo.Create(target)).To(Succeed())

			Expect(service.DeactivateUser(manager, target.ID)).To(Succeed())
			Expect(repo.users[target.ID].IsActive).To(BeFalse())
		})
	})

	Describe("EnsureSuperAdmin", func() {
		It("creates the first super admin then becomes a no-op", func() {
			u, err := service.EnsureSuperAdmin("root", "root@example.com", "bootstrap-pass")
			Expect(err).NotTo(HaveOccurred())
			Expect(u).NotTo(BeNil())
			Expect(u.Role).To(Equal(rbac.RoleSuperAdmin))

			again, err := service.EnsureSuperAdmin("root2", "root2@example.com", "bootstrap-pass")
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(BeNil())
		})
	})
})
