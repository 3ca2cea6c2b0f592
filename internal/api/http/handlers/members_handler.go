package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/api/response"
	"github.com/spec-kit/records-service/internal/service"
)

// MembersHandler exposes the member account operations.
type MembersHandler struct {
	members *service.MemberService
}

// NewMembersHandler constructs the handler.
func NewMembersHandler(members *service.MemberService) *MembersHandler {
	return &MembersHandler{members: members}
}

// Login handles action "login".
func (h *MembersHandler) Login(c *fiber.Ctx, req *dto.Request) error {
	result := h.members.Login(c.Context(), req.Field("email"), req.Field("password"))
	return response.Write(c, result)
}

// Signup handles action "signup".
func (h *MembersHandler) Signup(c *fiber.Ctx, req *dto.Request) error {
	if !req.HasFields("firstName", "lastName", "phoneNumber", "email", "password", "inviteCode", "emailcode") {
		return response.Write(c, response.New(400, 2))
	}
	result := h.members.Signup(c.Context(), service.SignupInput{
		FirstName:   req.Field("firstName"),
		LastName:    req.Field("lastName"),
		PhoneNumber: req.Field("phoneNumber"),
		Email:       req.Field("email"),
		Password:    req.Field("password"),
		InviteCode:  req.Field("inviteCode"),
		EmailCode:   req.Field("emailcode"),
	})
	return response.Write(c, result)
}

// EmailVerify handles action "emailVerify": issue and mail a one-time code.
func (h *MembersHandler) EmailVerify(c *fiber.Ctx, req *dto.Request) error {
	result := h.members.SendVerificationCode(c.Context(), req.Field("email"))
	return response.Write(c, result)
}

// Update handles action "update".
func (h *MembersHandler) Update(c *fiber.Ctx, req *dto.Request) error {
	if !req.HasFields("originalEmail", "firstName", "lastName", "phoneNumber", "email", "password", "emailcode") {
		return response.Write(c, response.New(400, 2))
	}
	result := h.members.Update(c.Context(), service.UpdateInput{
		OriginalEmail: req.Field("originalEmail"),
		FirstName:     req.Field("firstName"),
		LastName:      req.Field("lastName"),
		PhoneNumber:   req.Field("phoneNumber"),
		Email:         req.Field("email"),
		Password:      req.Field("password"),
		EmailCode:     req.Field("emailcode"),
	})
	return response.Write(c, result)
}

// GetUserInfo handles action "getUserInfo".
func (h *MembersHandler) GetUserInfo(c *fiber.Ctx, req *dto.Request) error {
	result := h.members.GetUserInfo(c.Context(), req.Token)
	return response.Write(c, result)
}

// CheckIdentity handles action "checkIdentity".
func (h *MembersHandler) CheckIdentity(c *fiber.Ctx, req *dto.Request) error {
	result := h.members.CheckIdentity(c.Context(), req.Token)
	return response.Write(c, result)
}

// GetProjects handles action "getProjects".
func (h *MembersHandler) GetProjects(c *fiber.Ctx, req *dto.Request) error {
	result := h.members.GetProjects(c.Context(), req.Token)
	return response.Write(c, result)
}
