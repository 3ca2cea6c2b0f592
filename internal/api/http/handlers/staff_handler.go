package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/api/response"
	"github.com/spec-kit/records-service/internal/service"
)

// StaffHandler exposes the staff record operations.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs the handler.
func NewStaffHandler(staff *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// Add handles action "addStaff". The request must be multipart with an
// image attachment.
func (h *StaffHandler) Add(c *fiber.Ctx, req *dto.Request) error {
	image, hasImage := req.Files["image"]
	if !req.HasFields("name", "position", "description", "startDate") || !hasImage {
		return response.Write(c, response.New(400, 2))
	}
	result := h.staff.Add(c.Context(), req.Token, service.StaffInput{
		Name:        req.Field("name"),
		Position:    req.Field("position"),
		Description: req.Field("description"),
		StartDate:   req.Field("startDate"),
	}, image)
	return response.Write(c, result)
}

// Delete handles action "deleteStaff".
func (h *StaffHandler) Delete(c *fiber.Ctx, req *dto.Request) error {
	name := req.Field("name")
	if name == "" {
		return response.Write(c, response.New(400, 5))
	}
	result := h.staff.Delete(c.Context(), req.Token, name)
	return response.Write(c, result)
}

// List handles action "getStaff".
func (h *StaffHandler) List(c *fiber.Ctx, req *dto.Request) error {
	result := h.staff.List(c.Context(), req.Token)
	return response.Write(c, result)
}
