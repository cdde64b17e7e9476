package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/dto"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/repository"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/validation"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SupplierService interface {
	Create(ctx context.Context, orgID uint, req dto.SupplierRequest) (*dto.SupplierResponse, error)
	ListActive(ctx context.Context, orgID uint) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, orgID, id uint, req dto.SupplierRequest) (*dto.SupplierResponse, error)
	Deactivate(ctx context.Context, orgID, id uint) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, orgID uint, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	req = normalizeSupplier(req)
	if v := validation.Struct(req); !v.Empty() {
		return nil, &ValidationError{Fields: v}
	}
	if err := s.ensureAFMFree(ctx, orgID, req.AFM, 0); err != nil {
		return nil, err
	}

	sup := &model.Supplier{OrgID: orgID, IsActive: true}
	applySupplier(sup, req)
	if err := s.repo.Create(ctx, sup); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSupplier
		}
		log.Error().Err(err).Uint("org_id", orgID).Msg("suppliers: create failed")
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	resp := supplierToResponse(sup)
	return &resp, nil
}

func (s *supplierService) ListActive(ctx context.Context, orgID uint) ([]dto.SupplierResponse, error) {
	list, err := s.repo.ListActive(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for i := range list {
		out = append(out, supplierToResponse(&list[i]))
	}
	return out, nil
}

func (s *supplierService) Update(ctx context.Context, orgID, id uint, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	req = normalizeSupplier(req)
	if v := validation.Struct(req); !v.Empty() {
		return nil, &ValidationError{Fields: v}
	}
	sup, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup supplier: %w", err)
	}
	if sup.AFM != req.AFM {
		if err := s.ensureAFMFree(ctx, orgID, req.AFM, id); err != nil {
			return nil, err
		}
	}

	applySupplier(sup, req)
	if err := s.repo.Update(ctx, sup); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSupplier
		}
		log.Error().Err(err).Uint("supplier_id", id).Msg("suppliers: update failed")
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	resp := supplierToResponse(sup)
	return &resp, nil
}

func (s *supplierService) Deactivate(ctx context.Context, orgID, id uint) error {
	if err := s.repo.SoftDelete(ctx, orgID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deactivate supplier: %w", err)
	}
	return nil
}

// ensureAFMFree fails with ErrDuplicateSupplier naming the current holder.
func (s *supplierService) ensureAFMFree(ctx context.Context, orgID uint, afm string, selfID uint) error {
	existing, err := s.repo.FindByAFM(ctx, orgID, afm)
	if err != nil {
		return fmt.Errorf("lookup supplier: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("%w: %s", ErrDuplicateSupplier, existing.Name)
	}
	return nil
}

func normalizeSupplier(req dto.SupplierRequest) dto.SupplierRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.AFM = strings.TrimSpace(req.AFM)
	return req
}

func applySupplier(sup *model.Supplier, req dto.SupplierRequest) {
	sup.Name = req.Name
	sup.AFM = req.AFM
	sup.Phone = req.Phone
	sup.Email = req.Email
	sup.Address = req.Address
	sup.ContactPerson = req.ContactPerson
	sup.PaymentTerms = req.PaymentTerms
	sup.Notes = req.Notes
}

func supplierToResponse(s *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:            s.ID,
		OrgID:         s.OrgID,
		Name:          s.Name,
		AFM:           s.AFM,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		ContactPerson: s.ContactPerson,
		PaymentTerms:  s.PaymentTerms,
		Notes:         s.Notes,
		IsActive:      s.IsActive,
	}
}
