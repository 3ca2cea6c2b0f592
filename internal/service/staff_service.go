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

// StaffService manages staff records and their images.
type StaffService struct {
	staff  repository.StaffRepository
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewStaffService builds the service.
func NewStaffService(staff repository.StaffRepository, tokens *auth.TokenManager, logger *zap.Logger) *StaffService {
	return &StaffService{staff: staff, tokens: tokens, logger: logger}
}

// StaffInput carries the add-staff form fields.
type StaffInput struct {
	Name        string
	Position    string
	Description string
	StartDate   string
}

// Add stores a new staff record with its image.
func (s *StaffService) Add(ctx context.Context, token string, in StaffInput, image multipart.File) response.Result {
	if _, failure := authorize(s.tokens, token); failure != nil {
		return *failure
	}

	staff := domain.Staff{
		Name:        in.Name,
		Position:    in.Position,
		Description: in.Description,
		StartDate:   in.StartDate,
	}
	if err := s.staff.Add(ctx, staff, image); err != nil {
		if repository.IsDuplicate(err) {
			return response.New(409, 3)
		}
		s.logger.Error("staff add failed", zap.Error(err))
		return response.New(500, 1)
	}
	return response.New(200, 7)
}

// Delete removes the staff record with the given name together with its image.
func (s *StaffService) Delete(ctx context.Context, token, name string) response.Result {
	if _, failure := authorize(s.tokens, token); failure != nil {
		return *failure
	}

	removed, err := s.staff.Delete(ctx, name)
	if err != nil {
		s.logger.Error("staff delete failed", zap.Error(err))
		return response.New(500, 1)
	}
	if !removed {
		return response.New(200, 4)
	}
	return response.New(200, 9)
}

// List returns every staff record with a servable image URL.
func (s *StaffService) List(ctx context.Context, token string) response.Result {
	if _, failure := authorize(s.tokens, token); failure != nil {
		return *failure
	}

	staff, recovered, err := s.staff.List(ctx)
	if err != nil {
		s.logger.Error("staff list failed", zap.Error(err))
		return response.New(500, 2)
	}
	if recovered {
		s.logger.Warn("staff store recovered as empty")
	}

	listings := make([]map[string]string, 0, len(staff))
	for _, member := range staff {
		listings = append(listings, map[string]string{
			"name":        member.Name,
			"position":    member.Position,
			"description": member.Description,
			"startDate":   member.StartDate,
			"imageUrl":    repository.ImageURL(member.ImagePath),
		})
	}
	return response.WithData(200, 8, listings)
}
