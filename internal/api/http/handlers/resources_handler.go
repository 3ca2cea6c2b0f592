package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/api/response"
	"github.com/spec-kit/records-service/internal/service"
)

// ResourcesHandler exposes the tea catalog operations.
type ResourcesHandler struct {
	resources *service.ResourceService
}

// NewResourcesHandler constructs the handler.
func NewResourcesHandler(resources *service.ResourceService) *ResourcesHandler {
	return &ResourcesHandler{resources: resources}
}

// Add handles action "addTea". The request must be multipart with an image
// attachment.
func (h *ResourcesHandler) Add(c *fiber.Ctx, req *dto.Request) error {
	image, hasImage := req.Files["image"]
	if !req.HasFields("name", "category", "subcategory", "description", "price", "quantity") || !hasImage {
		return response.Write(c, response.New(400, 2))
	}
	result := h.resources.Add(c.Context(), req.Token, service.TeaInput{
		Name:        req.Field("name"),
		Category:    req.Field("category"),
		Subcategory: req.Field("subcategory"),
		Description: req.Field("description"),
		Price:       req.Field("price"),
		Quantity:    req.Field("quantity"),
	}, image)
	return response.Write(c, result)
}

// Delete handles action "deleteTea".
func (h *ResourcesHandler) Delete(c *fiber.Ctx, req *dto.Request) error {
	if !req.HasFields("category", "subcategory", "name") {
		return response.Write(c, response.New(400, 2))
	}
	result := h.resources.Delete(c.Context(), req.Token,
		req.Field("category"), req.Field("subcategory"), req.Field("name"))
	return response.Write(c, result)
}

// List handles action "getTeas": the aggregate catalog listing.
func (h *ResourcesHandler) List(c *fiber.Ctx, req *dto.Request) error {
	result := h.resources.List(c.Context(), req.Token)
	return response.Write(c, result)
}
