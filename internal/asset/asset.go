package asset

import (
	"time"

	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/rbac"
)

// Asset is an IT asset register entry. AssetID is the human-assigned tag and
// must be unique; the repository enforces that inside the create transaction.
type Asset struct {
	ID                     int64     `json:"id" gorm:"primaryKey"`
	ServerName             string    `json:"server_name" gorm:"column:server_name;not null"`
	AssetID                string    `json:"asset_id" gorm:"column:asset_id;uniqueIndex;not null"`
	SerialNumber           string    `json:"serial_number" gorm:"column:serial_number"`
	IPAddress              string    `json:"ip_address" gorm:"column:ip_address"`
	RackNumber             string    `json:"rack_number" gorm:"column:rack_number"`
	SlotNumber             string    `json:"slot_number" gorm:"column:slot_number"`
	HostName               string    `json:"host_name" gorm:"column:host_name"`
	OperatingSystem        string    `json:"operating_system" gorm:"column:operating_system"`
	ServicePacks           string    `json:"service_packs" gorm:"column:service_packs"`
	SoftwareDetails        string    `json:"software_details" gorm:"column:software_details"`
	BusinessRequirements   string    `json:"business_requirements" gorm:"column:business_requirements"`
	TechnicalContact       string    `json:"technical_contact" gorm:"column:technical_contact"`
	Vendor                 string    `json:"vendor" gorm:"column:vendor"`
	MakeModel              string    `json:"make_model" gorm:"column:make_model"`
	CPU                    string    `json:"cpu" gorm:"column:cpu"`
	RAM                    string    `json:"ram" gorm:"column:ram"`
	HDD                    string    `json:"hdd" gorm:"column:hdd"`
	Purpose                string    `json:"purpose" gorm:"column:purpose"`
	AssetType              string    `json:"asset_type" gorm:"column:asset_type"`
	Dependency             string    `json:"dependency" gorm:"column:dependency"`
	RedundancyRequirements string    `json:"redundancy_requirements" gorm:"column:redundancy_requirements"`
	StoredInformation      string    `json:"stored_information" gorm:"column:stored_information"`
	BackupSchedule         string    `json:"backup_schedule" gorm:"column:backup_schedule"`
	ConfidentialityReq     string    `json:"confidentiality_req" gorm:"column:confidentiality_req"`
	IntegrityReq           string    `json:"integrity_req" gorm:"column:integrity_req"`
	AvailabilityReq        string    `json:"availability_req" gorm:"column:availability_req"`
	AssetValue             *float64  `json:"asset_value,omitempty" gorm:"column:asset_value"`
	AssetValueRating       string    `json:"asset_value_rating" gorm:"column:asset_value_rating;type:varchar(20)"`
	Classification         string    `json:"classification" gorm:"column:classification"`
	OwnerID                int64     `json:"owner_id" gorm:"column:owner_id;not null"`
	Custodian              string    `json:"custodian" gorm:"column:custodian"`
	Users                  string    `json:"users" gorm:"column:users"`
	CreatedAt              time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt              time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

const (
	RatingLow      = "low"
	RatingMedium   = "medium"
	RatingHigh     = "high"
	RatingCritical = "critical"
)

func ValidRating(s string) bool {
	switch s {
	case RatingLow, RatingMedium, RatingHigh, RatingCritical:
		return true
	}
	return false
}

func (a *Asset) OwnerIDs() []int64 {
	return []int64{a.OwnerID}
}

type ListFilters struct {
	AssetType        string
	AssetValueRating string
	OwnerID          *int64
}

type Repository interface {
	Create(a *Asset) error
	GetByID(id int64) (*Asset, error)
	List(scope rbac.Scope, f ListFilters) ([]*Asset, error)
	Update(a *Asset) error
	Delete(id int64) error
	Search(scope rbac.Scope, q string) ([]*Asset, error)
}

var (
	ErrAssetNotFound    = internal.NewNotFoundError("asset not found", internal.ErrCodeAssetNotFound)
	ErrDuplicateAssetID = internal.NewDuplicateError("asset_id already exists", internal.ErrCodeDuplicateAssetID)
	ErrAssetViewDenied  = internal.NewForbiddenError("not allowed to view this asset", internal.ErrCodePermissionDenied)
	ErrAssetEditDenied  = internal.NewForbiddenError("not allowed to modify this asset", internal.ErrCodePermissionDenied)
)
