package postgres

import (
	"testing"
	"time"

	"github.com/arifwid/opstrack/internal/asset"
	"github.com/arifwid/opstrack/internal/rbac"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAssetRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AssetRepository Suite")
}

var _ = Describe("AssetRepository", func() {
	var (
		db   *gorm.DB
		repo asset.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&asset.Asset{})).To(Succeed())

		repo = NewAssetRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	newAsset := func(assetID string, ownerID int64) *asset.Asset {
		return &asset.Asset{
			ServerName: "srv-" + assetID,
			AssetID:    assetID,
			HostName:   "host-" + assetID,
			OwnerID:    ownerID,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
	}

	Describe("Create", func() {
		It("rejects a duplicate asset_id and leaves the register unchanged", func() {
			Expect(repo.Create(newAsset("AST-100", 1))).To(Succeed())

			err := repo.Create(newAsset("AST-100", 2))
			Expect(err).To(MatchError(asset.ErrDuplicateAssetID))

			var count int64
			Expect(db.Model(&asset.Asset{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("accepts distinct asset ids", func() {
			Expect(repo.Create(newAsset("AST-101", 1))).To(Succeed())
			Expect(repo.Create(newAsset("AST-102", 1))).To(Succeed())
		})
	})

	Describe("List scoping", func() {
		BeforeEach(func() {
			Expect(repo.Create(newAsset("AST-200", 10))).To(Succeed())
			Expect(repo.Create(newAsset("AST-201", 99))).To(Succeed())
		})

		It("limits members to assets they own", func() {
			assets, err := repo.List(rbac.ScopeFor(rbac.RoleMember, 10), asset.ListFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(assets).To(HaveLen(1))
			Expect(assets[0].AssetID).To(Equal("AST-200"))
		})

		It("shows supervisors everything", func() {
			assets, err := repo.List(rbac.ScopeFor(rbac.RoleSupervisor, 1), asset.ListFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(assets).To(HaveLen(2))
		})
	})

	Describe("Search", func() {
		It("matches on host name and vendor", func() {
			a := newAsset("AST-300", 1)
			a.Vendor = "Dell"
			Expect(repo.Create(a)).To(Succeed())

			byVendor, err := repo.Search(rbac.ScopeFor(rbac.RoleManager, 1), "dell")
			Expect(err).NotTo(HaveOccurred())
			Expect(byVendor).To(HaveLen(1))

			byHost, err := repo.Search(rbac.ScopeFor(rbac.RoleManager, 1), "HOST-AST-300")
			Expect(err).NotTo(HaveOccurred())
			Expect(byHost).To(HaveLen(1))
		})
	})
})
