package service

import (
	"context"
	"errors"
	"strings"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
)

// ProfessionalStore persists professionals
type ProfessionalStore interface {
	ProfessionalChecker
	ListActiveProfessionals(ctx context.Context) ([]models.Professional, error)
	LicenseExists(ctx context.Context, license string) (bool, error)
	CreateProfessional(ctx context.Context, professional *models.Professional) error
}

type ProfessionalService struct {
	professionals ProfessionalStore
}

func NewProfessionalService(professionals ProfessionalStore) *ProfessionalService {
	return &ProfessionalService{professionals: professionals}
}

// ProfessionalInput carries a new professional
type ProfessionalInput struct {
	Name          string
	Specialty     string
	LicenseNumber string
	Phone         string
	Email         string
	Kind          string
}

// ListProfessionals returns active professionals
func (s *ProfessionalService) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	professionals, err := s.professionals.ListActiveProfessionals(ctx)
	if err != nil {
		return nil, apperror.Unexpected("failed to list professionals", err)
	}
	return professionals, nil
}

// CreateProfessional registers a professional with a unique license number
func (s *ProfessionalService) CreateProfessional(ctx context.Context, in ProfessionalInput) (*models.Professional, error) {
	name := strings.TrimSpace(in.Name)
	license := strings.TrimSpace(in.LicenseNumber)
	if name == "" || license == "" || in.Kind == "" {
		return nil, apperror.Validation("name, license_number and kind are required")
	}
	kind := models.ProfessionalKind(in.Kind)
	if !kind.Valid() {
		return nil, apperror.Validation("invalid kind: must be one of physician, nurse, technician")
	}

	exists, err := s.professionals.LicenseExists(ctx, license)
	if err != nil {
		return nil, apperror.Unexpected("failed to check license number", err)
	}
	if exists {
		return nil, apperror.Conflict(apperror.CodeDuplicateKey, "license number already registered")
	}

	professional := &models.Professional{
		Name:          name,
		Specialty:     in.Specialty,
		LicenseNumber: license,
		Phone:         in.Phone,
		Email:         in.Email,
		Kind:          kind,
		Active:        true,
	}
	if err := s.professionals.CreateProfessional(ctx, professional); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(apperror.CodeDuplicateKey, "license number already registered")
		}
		return nil, apperror.Unexpected("failed to create professional", err)
	}
	return professional, nil
}
