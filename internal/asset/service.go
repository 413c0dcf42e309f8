package asset

import (
	"log/slog"
	"time"

	"github.com/arifwid/opstrack/internal/auth"
	"github.com/arifwid/opstrack/internal/rbac"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateAsset(actor *auth.Actor, dto CreateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("asset validation failed", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	now := time.Now()
	a := &Asset{
		ServerName:             dto.ServerName,
		AssetID:                dto.AssetID,
		SerialNumber:           dto.SerialNumber,
		IPAddress:              dto.IPAddress,
		RackNumber:             dto.RackNumber,
		SlotNumber:             dto.SlotNumber,
		HostName:               dto.HostName,
		OperatingSystem:        dto.OperatingSystem,
		ServicePacks:           dto.ServicePacks,
		SoftwareDetails:        dto.SoftwareDetails,
		BusinessRequirements:   dto.BusinessRequirements,
		TechnicalContact:       dto.TechnicalContact,
		Vendor:                 dto.Vendor,
		MakeModel:              dto.MakeModel,
		CPU:                    dto.CPU,
		RAM:                    dto.RAM,
		HDD:                    dto.HDD,
		Purpose:                dto.Purpose,
		AssetType:              dto.AssetType,
		Dependency:             dto.Dependency,
		RedundancyRequirements: dto.RedundancyRequirements,
		StoredInformation:      dto.StoredInformation,
		BackupSchedule:         dto.BackupSchedule,
		ConfidentialityReq:     dto.ConfidentialityReq,
		IntegrityReq:           dto.IntegrityReq,
		AvailabilityReq:        dto.AvailabilityReq,
		AssetValue:             dto.AssetValue,
		AssetValueRating:       dto.AssetValueRating,
		Classification:         dto.Classification,
		OwnerID:                actor.ID,
		Custodian:              dto.Custodian,
		Users:                  dto.Users,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Warn("failed to create asset", "error", err, "asset_id", dto.AssetID, "actor_id", actor.ID)
		return nil, err
	}

	s.logger.Info("asset created", "id", a.ID, "asset_id", a.AssetID, "owner_id", actor.ID)
	return a, nil
}

func (s *Service) GetAsset(actor *auth.Actor, id int64) (*Asset, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrAssetNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionView, rbac.RecordResource(rbac.KindAsset, a.OwnerIDs()...)) {
		return nil, ErrAssetViewDenied
	}

	return a, nil
}

func (s *Service) ListAssets(actor *auth.Actor, f ListFilters) ([]*Asset, error) {
	assets, err := s.repo.List(actor.Scope(), f)
	if err != nil {
		s.logger.Error("failed to list assets", "error", err, "actor_id", actor.ID)
		return nil, err
	}
	return assets, nil
}

func (s *Service) UpdateAsset(actor *auth.Actor, id int64, dto UpdateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrAssetNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionUpdate, rbac.RecordResource(rbac.KindAsset, a.OwnerIDs()...)) {
		return nil, ErrAssetEditDenied
	}

	applyAssetUpdate(a, dto)
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to update asset", "error", err, "id", id)
		return nil, err
	}

	s.logger.Info("asset updated", "id", id, "actor_id", actor.ID)
	return a, nil
}

func (s *Service) DeleteAsset(actor *auth.Actor, id int64) error {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return ErrAssetNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionDelete, rbac.RecordResource(rbac.KindAsset, a.OwnerIDs()...)) {
		return ErrAssetEditDenied
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete asset", "error", err, "id", id)
		return err
	}

	s.logger.Info("asset deleted", "id", id, "actor_id", actor.ID)
	return nil
}

func applyAssetUpdate(a *Asset, dto UpdateAssetDTO) {
	if dto.ServerName != nil {
		a.ServerName = *dto.ServerName
	}
	if dto.SerialNumber != nil {
		a.SerialNumber = *dto.SerialNumber
	}
	if dto.IPAddress != nil {
		a.IPAddress = *dto.IPAddress
	}
	if dto.RackNumber != nil {
		a.RackNumber = *dto.RackNumber
	}
	if dto.SlotNumber != nil {
		a.SlotNumber = *dto.SlotNumber
	}
	if dto.HostName != nil {
		a.HostName = *dto.HostName
	}
	if dto.OperatingSystem != nil {
		a.OperatingSystem = *dto.OperatingSystem
	}
	if dto.ServicePacks != nil {
		a.ServicePacks = *dto.ServicePacks
	}
	if dto.SoftwareDetails != nil {
		a.SoftwareDetails = *dto.SoftwareDetails
	}
	if dto.BusinessRequirements != nil {
		a.BusinessRequirements = *dto.BusinessRequirements
	}
	if dto.TechnicalContact != nil {
		a.TechnicalContact = *dto.TechnicalContact
	}
	if dto.Vendor != nil {
		a.Vendor = *dto.Vendor
	}
	if dto.MakeModel != nil {
		a.MakeModel = *dto.MakeModel
	}
	if dto.CPU != nil {
		a.CPU = *dto.CPU
	}
	if dto.RAM != nil {
		a.RAM = *dto.RAM
	}
	if dto.HDD != nil {
		a.HDD = *dto.HDD
	}
	if dto.Purpose != nil {
		a.Purpose = *dto.Purpose
	}
	if dto.AssetType != nil {
		a.AssetType = *dto.AssetType
	}
	if dto.Dependency != nil {
		a.Dependency = *dto.Dependency
	}
	if dto.RedundancyRequirements != nil {
		a.RedundancyRequirements = *dto.RedundancyRequirements
	}
	if dto.StoredInformation != nil {
		a.StoredInformation = *dto.StoredInformation
	}
	if dto.BackupSchedule != nil {
		a.BackupSchedule = *dto.BackupSchedule
	}
	if dto.ConfidentialityReq != nil {
		a.ConfidentialityReq = *dto.ConfidentialityReq
	}
	if dto.IntegrityReq != nil {
		a.IntegrityReq = *dto.IntegrityReq
	}
	if dto.AvailabilityReq != nil {
		a.AvailabilityReq = *dto.AvailabilityReq
	}
	if dto.AssetValue != nil {
		a.AssetValue = dto.AssetValue
	}
	if dto.AssetValueRating != nil {
		a.AssetValueRating = *dto.AssetValueRating
	}
	if dto.Classification != nil {
		a.Classification = *dto.Classification
	}
	if dto.Custodian != nil {
		a.Custodian = *dto.Custodian
	}
	if dto.Users != nil {
		a.Users = *dto.Users
	}
}
