package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/api/response"
	"github.com/spec-kit/records-service/internal/auth"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/multipart"
	"github.com/spec-kit/records-service/internal/repository"
)

// ResourceService manages the partitioned tea catalog.
type ResourceService struct {
	teas   repository.TeaRepository
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewResourceService builds the service.
func NewResourceService(teas repository.TeaRepository, tokens *auth.TokenManager, logger *zap.Logger) *ResourceService {
	return &ResourceService{teas: teas, tokens: tokens, logger: logger}
}

// TeaInput carries the add-tea form fields.
type TeaInput struct {
	Name        string
	Category    string
	Subcategory string
	Description string
	Price       string
	Quantity    string
}

// Add stores a new catalog item in its category/subcategory partition.
func (s *ResourceService) Add(ctx context.Context, token string, in TeaInput, image multipart.File) response.Result {
	if _, failure := authorize(s.tokens, token); failure != nil {
		return *failure
	}

	item := domain.TeaItem{
		Name:        in.Name,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
	}
	if err := s.teas.Add(ctx, item, image); err != nil {
		if repository.IsDuplicate(err) {
			return response.New(409, 3)
		}
		if repository.IsInvalidInput(err) {
			return response.New(400, 2)
		}
		s.logger.Error("tea add failed", zap.Error(err))
		return response.New(500, 1)
	}
	return response.New(200, 7)
}

// Delete removes one catalog item from its partition together with its image.
func (s *ResourceService) Delete(ctx context.Context, token, category, subcategory, name string) response.Result {
	if _, failure := authorize(s.tokens, token); failure != nil {
		return *failure
	}

	removed, err := s.teas.Delete(ctx, category, subcategory, name)
	if err != nil {
		if repository.IsInvalidInput(err) {
			return response.New(400, 2)
		}
		s.logger.Error("tea delete failed", zap.Error(err))
		return response.New(500, 1)
	}
	if !removed {
		return response.New(200, 4)
	}
	return response.New(200, 10)
}

// List aggregates every partition into one catalog listing.
func (s *ResourceService) List(ctx context.Context, token string) response.Result {
	if _, failure := authorize(s.tokens, token); failure != nil {
		return *failure
	}

	listings, err := s.teas.ListAll(ctx)
	if err != nil {
		s.logger.Error("tea list failed", zap.Error(err))
		return response.New(500, 2)
	}
	return response.WithData(200, 8, listings)
}
