package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"gear-system/internal/dto"
	"gear-system/internal/entities"
	"gear-system/internal/repositories"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/filestorage"
	"gear-system/pkg/utils"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, params utils.QueryParams) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, data dto.CreateEquipmentDTO) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, data dto.UpdateEquipmentDTO) error
	DeleteEquipment(ctx context.Context, id uint64) error
	UploadImage(ctx context.Context, id uint64, file io.Reader, fileName string) (string, error)
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	fileStorage   filestorage.FileStorageInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, params utils.QueryParams) ([]entities.Equipment, uint64, error) {
	return s.equipmentRepo.GetEquipments(ctx, params)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return s.equipmentRepo.FindEquipment(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, data dto.CreateEquipmentDTO) (uint64, error) {
	return s.equipmentRepo.CreateEquipment(ctx, data)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, data dto.UpdateEquipmentDTO) error {
	return s.equipmentRepo.UpdateEquipment(ctx, id, data)
}

// DeleteEquipment soft-deletes. Items that are out in the field stay on the
// books until they come back.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	item, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return err
	}
	if item.Status != entities.EquipmentAvailable && item.Status != entities.EquipmentUnderRepair {
		return apperrors.NewInvalidInputError("equipment cannot be deleted while checked out or awaiting check-in")
	}
	return s.equipmentRepo.SoftDeleteEquipment(ctx, id)
}

func (s *EquipmentService) UploadImage(ctx context.Context, id uint64, file io.Reader, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", apperrors.NewInvalidInputError("unsupported image type %q", ext)
	}

	item, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return "", err
	}

	path, err := s.fileStorage.Save(file, fileName, "equipment")
	if err != nil {
		return "", err
	}
	imageURL := "/uploads/" + path

	update := dto.UpdateEquipmentDTO{ImageURL: null.StringFrom(imageURL)}
	if err := s.equipmentRepo.UpdateEquipment(ctx, id, update); err != nil {
		return "", err
	}

	// Replaced image files are not kept around.
	if item.ImageURL.Valid && item.ImageURL.String != "" {
		if err := s.fileStorage.Delete(item.ImageURL.String); err != nil {
			s.logger.Warn("failed to delete previous equipment image",
				zap.Uint64("equipmentID", id), zap.Error(err))
		}
	}

	return imageURL, nil
}
