// Package response defines the wire envelope shared by every operation:
// an HTTP status plus a code index, resolved against a fixed message table
// and serialized as {code, msg, data}.
package response

import "github.com/gofiber/fiber/v2"

// Result is the triple every domain operation produces. The router
// serializes it; nothing else crosses the service boundary.
type Result struct {
	Status    int
	CodeIndex int
	Data      any
}

// New builds a Result without a payload.
func New(status, codeIndex int) Result {
	return Result{Status: status, CodeIndex: codeIndex}
}

// WithData builds a Result carrying a payload.
func WithData(status, codeIndex int, data any) Result {
	return Result{Status: status, CodeIndex: codeIndex, Data: data}
}

// messages maps (status, codeIndex) to the user-facing message.
var messages = map[int]map[int]string{
	200: {
		0:  "login successful",
		1:  "information request successful",
		2:  "wrong password",
		3:  "email does not exist",
		4:  "unverifiable information anomaly, contact the administrator",
		5:  "identity verified",
		6:  "verification code sent",
		7:  "information stored",
		8:  "information request successful",
		9:  "staff member deleted",
		10: "tea item deleted",
	},
	201: {
		0: "user registered",
	},
	204: {
		1: "preflight check",
	},
	400: {
		1: "unknown action",
		2: "all fields are required",
		3: "request parsing failed",
		4: "invalid JSON",
		5: "missing staff id",
	},
	401: {
		1: "no token provided",
	},
	403: {
		1: "token invalid or expired",
		2: "wrong verification code",
		3: "wrong invite code",
		4: "no verification code issued, request one first",
		5: "verification code expired",
	},
	404: {
		1: "path not found",
	},
	409: {
		1: "email already registered",
		2: "invite code error",
		3: "record already exists",
	},
	415: {
		1: "unsupported media type",
	},
	500: {
		1: "unknown error",
		2: "unable to read file",
		3: "failed to store information",
	},
	999: {
		0: "unprecedented error",
	},
}

// Message resolves a (status, codeIndex) pair. Unmapped pairs resolve to a
// generic message rather than failing.
func Message(status, codeIndex int) string {
	if byStatus, ok := messages[status]; ok {
		if msg, ok := byStatus[codeIndex]; ok {
			return msg
		}
	}
	return "undefined error"
}

// Write serializes a Result onto the Fiber context as {code, msg, data}.
func Write(c *fiber.Ctx, result Result) error {
	return c.Status(result.Status).JSON(fiber.Map{
		"code": result.CodeIndex,
		"msg":  Message(result.Status, result.CodeIndex),
		"data": result.Data,
	})
}
