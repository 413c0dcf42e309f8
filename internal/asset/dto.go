package asset

import "github.com/arifwid/opstrack/internal"

type CreateAssetDTO struct {
	ServerName             string   `json:"server_name"`
	AssetID                string   `json:"asset_id"`
	SerialNumber           string   `json:"serial_number,omitempty"`
	IPAddress              string   `json:"ip_address,omitempty"`
	RackNumber             string   `json:"rack_number,omitempty"`
	SlotNumber             string   `json:"slot_number,omitempty"`
	HostName               string   `json:"host_name,omitempty"`
	OperatingSystem        string   `json:"operating_system,omitempty"`
	ServicePacks           string   `json:"service_packs,omitempty"`
	SoftwareDetails        string   `json:"software_details,omitempty"`
	BusinessRequirements   string   `json:"business_requirements,omitempty"`
	TechnicalContact       string   `json:"technical_contact,omitempty"`
	Vendor                 string   `json:"vendor,omitempty"`
	MakeModel              string   `json:"make_model,omitempty"`
	CPU                    string   `json:"cpu,omitempty"`
	RAM                    string   `json:"ram,omitempty"`
	HDD                    string   `json:"hdd,omitempty"`
	Purpose                string   `json:"purpose,omitempty"`
	AssetType              string   `json:"asset_type,omitempty"`
	Dependency             string   `json:"dependency,omitempty"`
	RedundancyRequirements string   `json:"redundancy_requirements,omitempty"`
	StoredInformation      string   `json:"stored_information,omitempty"`
	BackupSchedule         string   `json:"backup_schedule,omitempty"`
	ConfidentialityReq     string   `json:"confidentiality_req,omitempty"`
	IntegrityReq           string   `json:"integrity_req,omitempty"`
	AvailabilityReq        string   `json:"availability_req,omitempty"`
	AssetValue             *float64 `json:"asset_value,omitempty"`
	AssetValueRating       string   `json:"asset_value_rating,omitempty"`
	Classification         string   `json:"classification,omitempty"`
	Custodian              string   `json:"custodian,omitempty"`
	Users                  string   `json:"users,omitempty"`
}

func (dto CreateAssetDTO) Validate() error {
	if dto.ServerName == "" {
		return internal.NewValidationError("server_name is required", internal.ErrCodeValidationFailed)
	}
	if dto.AssetID == "" {
		return internal.NewValidationError("asset_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.AssetValueRating != "" && !ValidRating(dto.AssetValueRating) {
		return internal.NewValidationError("asset_value_rating must be one of low, medium, high, critical", internal.ErrCodeInvalidEnum)
	}
	return nil
}

type UpdateAssetDTO struct {
	ServerName             *string  `json:"server_name,omitempty"`
	SerialNumber           *string  `json:"serial_number,omitempty"`
	IPAddress              *string  `json:"ip_address,omitempty"`
	RackNumber             *string  `json:"rack_number,omitempty"`
	SlotNumber             *string  `json:"slot_number,omitempty"`
	HostName               *string  `json:"host_name,omitempty"`
	OperatingSystem        *string  `json:"operating_system,omitempty"`
	ServicePacks           *string  `json:"service_packs,omitempty"`
	SoftwareDetails        *string  `json:"software_details,omitempty"`
	BusinessRequirements   *string  `json:"business_requirements,omitempty"`
	TechnicalContact       *string  `json:"technical_contact,omitempty"`
	Vendor                 *string  `json:"vendor,omitempty"`
	MakeModel              *string  `json:"make_model,omitempty"`
	CPU                    *string  `json:"cpu,omitempty"`
	RAM                    *string  `json:"ram,omitempty"`
	HDD                    *string  `json:"hdd,omitempty"`
	Purpose                *string  `json:"purpose,omitempty"`
	AssetType              *string  `json:"asset_type,omitempty"`
	Dependency             *string  `json:"dependency,omitempty"`
	RedundancyRequirements *string  `json:"redundancy_requirements,omitempty"`
	StoredInformation      *string  `json:"stored_information,omitempty"`
	BackupSchedule         *string  `json:"backup_schedule,omitempty"`
	ConfidentialityReq     *string  `json:"confidentiality_req,omitempty"`
	IntegrityReq           *string  `json:"integrity_req,omitempty"`
	AvailabilityReq        *string  `json:"availability_req,omitempty"`
	AssetValue             *float64 `json:"asset_value,omitempty"`
	AssetValueRating       *string  `json:"asset_value_rating,omitempty"`
	Classification         *string  `json:"classification,omitempty"`
	Custodian              *string  `json:"custodian,omitempty"`
	Users                  *string  `json:"users,omitempty"`
}

func (dto UpdateAssetDTO) Validate() error {
	if dto.ServerName != nil && *dto.ServerName == "" {
		return internal.NewValidationError("server_name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.AssetValueRating != nil && !ValidRating(*dto.AssetValueRating) {
		return internal.NewValidationError("asset_value_rating must be one of low, medium, high, critical", internal.ErrCodeInvalidEnum)
	}
	return nil
}
