package http

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/api/http/handlers"
	"github.com/spec-kit/records-service/internal/api/response"
	"github.com/spec-kit/records-service/internal/multipart"
	"github.com/spec-kit/records-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Members   *handlers.MembersHandler
	Staff     *handlers.StaffHandler
	Resources *handlers.ResourcesHandler
	Metrics   *observability.Metrics
	ImagesDir string
}

// RegisterRoutes wires the action dispatcher, static image serving and the
// preflight/not-found fallbacks.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Static("/images", cfg.ImagesDir)

	// Preflight: 204 carries no body, only the CORS headers set upstream.
	app.Options("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Post("/", dispatch(cfg))

	app.Use(func(c *fiber.Ctx) error {
		return response.Write(c, response.New(404, 1))
	})
}

// dispatch decodes the body, resolves the action, and routes to the typed
// handler. The switch is exhaustive over dto.Action; anything else is an
// unknown action.
func dispatch(cfg RouteConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, failure := decodeRequest(c)
		if failure != nil {
			return response.Write(c, *failure)
		}
		cfg.Metrics.RecordAction(string(req.Action))

		switch req.Action {
		case dto.ActionLogin:
			return cfg.Members.Login(c, req)
		case dto.ActionSignup:
			return cfg.Members.Signup(c, req)
		case dto.ActionEmailVerify, dto.ActionEmailVerifyLegacy:
			return cfg.Members.EmailVerify(c, req)
		case dto.ActionCheckIdentity:
			return cfg.Members.CheckIdentity(c, req)
		case dto.ActionGetUserInfo:
			return cfg.Members.GetUserInfo(c, req)
		case dto.ActionUpdate:
			return cfg.Members.Update(c, req)
		case dto.ActionGetProjects:
			return cfg.Members.GetProjects(c, req)
		case dto.ActionAddStaff:
			return cfg.Staff.Add(c, req)
		case dto.ActionDeleteStaff:
			return cfg.Staff.Delete(c, req)
		case dto.ActionGetStaff:
			return cfg.Staff.List(c, req)
		case dto.ActionAddTea:
			return cfg.Resources.Add(c, req)
		case dto.ActionDeleteTea:
			return cfg.Resources.Delete(c, req)
		case dto.ActionGetTeas:
			return cfg.Resources.List(c, req)
		default:
			return response.Write(c, response.New(400, 1))
		}
	}
}

// decodeRequest turns the raw body into the request envelope. Multipart
// bodies are handed to the decoder byte-for-byte with the boundary from the
// Content-Type header; JSON bodies become string fields. Anything else is an
// unsupported media type.
func decodeRequest(c *fiber.Ctx) (*dto.Request, *response.Result) {
	req := &dto.Request{
		Fields: map[string]string{},
		Files:  map[string]multipart.File{},
		Token:  bearerToken(c.Get(fiber.HeaderAuthorization)),
	}

	contentType := c.Get(fiber.HeaderContentType)
	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		boundary := boundaryFrom(contentType)
		if boundary == "" {
			r := response.New(400, 3)
			return nil, &r
		}
		form, err := multipart.Parse(c.Body(), boundary)
		if err != nil {
			r := response.New(400, 3)
			return nil, &r
		}
		req.Fields = form.Fields
		req.Files = form.Files
	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		var payload map[string]any
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			r := response.New(400, 4)
			return nil, &r
		}
		for key, value := range payload {
			if str, ok := value.(string); ok {
				req.Fields[key] = str
			}
		}
	default:
		r := response.New(415, 1)
		return nil, &r
	}

	req.Action = dto.Action(req.Fields["action"])
	return req, nil
}

func boundaryFrom(contentType string) string {
	for _, part := range strings.Split(contentType, ";") {
		part = strings.TrimSpace(part)
		if value, ok := strings.CutPrefix(part, "boundary="); ok {
			return strings.Trim(value, `"`)
		}
	}
	return ""
}

// bearerToken pulls the raw token out of an Authorization header value. An
// absent header yields "", which downstream reports as no-token.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return header
}
