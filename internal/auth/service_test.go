package auth

import (
	"testing"
	"time"

	"github.com/arifwid/opstrack/internal/rbac"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AuthService Suite")
}

type fakeCredentialRepo struct {
	hash   string
	actor  *Actor
	active bool
}

func (r *fakeCredentialRepo) GetCredentials(username string) (string, *Actor, bool, error) {
	if r.actor == nil || r.actor.Username != username {
		return "", nil, false, ErrInvalidCredentials
	}
	return r.hash, r.actor, r.active, nil
}

func (r *fakeCredentialRepo) GetActorByID(userID int64) (*Actor, error) {
	if r.actor == nil || r.actor.ID != userID {
		return nil, ErrInvalidToken
	}
	return r.actor, nil
}

var _ = Describe("AuthService", func() {
	var (
		repo    *fakeCredentialRepo
		service *Service
	)

	BeforeEach(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		repo = &fakeCredentialRepo{
			hash:   string(hash),
			actor:  &Actor{ID: 7, Username: "mel", Email: "mel@example.com", Role: rbac.RoleMember},
			active: true,
		}

		tokenGen := NewJWTTokenGenerator(
			"access-secret-at-least-32-characters!",
			"refresh-secret-at-least-32-characters",
			15*time.Minute,
			7*24*time.Hour,
		)
		service = NewService(repo, tokenGen, bcrypt.MinCost)
	})

	Describe("Authenticate", func() {
		It("returns a token pair for valid credentials", func() {
			tokens, err := service.Authenticate(LoginDTO{Username: "mel", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(LoginDTO{Username: "mel", Password: "wrong"})
			Expect(err).To(MatchError(ErrInvalidCredentials))
		})

		It("rejects an unknown username", func() {
			_, err := service.Authenticate(LoginDTO{Username: "ghost", Password: "correct-horse"})
			Expect(err).To(MatchError(ErrInvalidCredentials))
		})

		It("rejects a deactivated account even with valid credentials", func() {
			repo.active = false
			_, err := service.Authenticate(LoginDTO{Username: "mel", Password: "correct-horse"})
			Expect(err).To(MatchError(ErrUserInactive))
		})
	})

	Describe("token round trip", func() {
		It("validates an issued access token and carries the role", func() {
			tokens, err := service.Authenticate(LoginDTO{Username: "mel", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("7"))
			Expect(claims.Role).To(Equal("member"))
		})

		It("rejects garbage tokens", func() {
			_, err := service.ValidateAccessToken("not.a.token")
			Expect(err).To(MatchError(ErrInvalidToken))
		})

		It("rotates the pair on refresh with the current role", func() {
			tokens, err := service.Authenticate(LoginDTO{Username: "mel", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())

			repo.actor.Role = rbac.RoleSupervisor

			rotated, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(rotated.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Role).To(Equal("supervisor"))
		})
	})

	Describe("HashPassword", func() {
		It("produces a hash that CheckPassword accepts", func() {
			hash, err := service.HashPassword("another-pass")
			Expect(err).NotTo(HaveOccurred())
			Expect(service.CheckPassword(hash, "another-pass")).To(BeTrue())
			Expect(service.CheckPassword(hash, "different")).To(BeFalse())
		})
	})
})
