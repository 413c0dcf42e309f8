package postgres

import (
	"strings"
	"time"

	"github.com/arifwid/opstrack/internal/asset"
	"github.com/arifwid/opstrack/internal/rbac"
	"gorm.io/gorm"
)

// AssetRepository implements the asset.Repository interface using GORM
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) asset.Repository {
	return &AssetRepository{db: db}
}

// Create enforces asset_id uniqueness inside one transaction so a duplicate
// tag never reaches the insert and the register stays unchanged.
func (r *AssetRepository) Create(a *asset.Asset) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&asset.Asset{}).Where("asset_id = ?", a.AssetID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return asset.ErrDuplicateAssetID
		}
		return tx.Create(a).Error
	})
}

func (r *AssetRepository) GetByID(id int64) (*asset.Asset, error) {
	var a asset.Asset
	err := r.db.Where("id = ?", id).First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, asset.ErrAssetNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepository) List(scope rbac.Scope, f asset.ListFilters) ([]*asset.Asset, error) {
	q := scoped(r.db, scope)

	if f.AssetType != "" {
		q = q.Where("asset_type = ?", f.AssetType)
	}
	if f.AssetValueRating != "" {
		q = q.Where("asset_value_rating = ?", f.AssetValueRating)
	}
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}

	var assets []*asset.Asset
	err := q.Order("created_at DESC").Find(&assets).Error
	return assets, err
}

func (r *AssetRepository) Update(a *asset.Asset) error {
	a.UpdatedAt = time.Now()
	return r.db.Save(a).Error
}

func (r *AssetRepository) Delete(id int64) error {
	return r.db.Delete(&asset.Asset{}, id).Error
}

func (r *AssetRepository) Search(scope rbac.Scope, query string) ([]*asset.Asset, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var assets []*asset.Asset
	err := scoped(r.db, scope).
		Where("LOWER(server_name) LIKE ? OR LOWER(asset_id) LIKE ? OR LOWER(host_name) LIKE ? OR LOWER(ip_address) LIKE ? OR LOWER(vendor) LIKE ? OR LOWER(asset_type) LIKE ?",
			pattern, pattern, pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&assets).Error
	return assets, err
}

// scoped applies the visibility rule: members only see assets they own.
func scoped(db *gorm.DB, scope rbac.Scope) *gorm.DB {
	q := db.Model(&asset.Asset{})
	if scope.Unrestricted() {
		return q
	}
	return q.Where("owner_id = ?", scope.UserID)
}
