package http

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/api/response"
	"github.com/spec-kit/records-service/internal/observability"
	apperrors "github.com/spec-kit/records-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares: CORS headers, error
// handling and request logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, allowedOrigins []string) {
	app.Use(corsMiddleware(allowedOrigins))
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

// corsMiddleware echoes origins from the allow-list and falls back to "*"
// for everything else.
func corsMiddleware(allowedOrigins []string) fiber.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if _, ok := allowed[origin]; ok {
			c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		} else {
			c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		}
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, Authorization")
		return c.Next()
	}
}

// errorHandlingMiddleware converts panics and stray errors into the response
// envelope. Handlers normally answer with a triple themselves, so anything
// arriving here is unexpected.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				err = response.Write(c, resultFor(domainErr))
			}
		}()
		return c.Next()
	}
}

// resultFor maps an escaped domain error onto the closest envelope pair.
func resultFor(domainErr *apperrors.DomainError) response.Result {
	switch domainErr.HTTPStatus {
	case 400:
		return response.New(400, 2)
	case 401:
		return response.New(401, 1)
	case 403:
		return response.New(403, 1)
	case 404:
		return response.New(404, 1)
	case 409:
		return response.New(409, 3)
	default:
		return response.New(500, 1)
	}
}
