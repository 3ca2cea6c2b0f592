package dto

import "github.com/spec-kit/records-service/internal/multipart"

// Action enumerates the operation kinds the dispatcher accepts. The router
// switches over these exhaustively; an unrecognized action is rejected.
type Action string

const (
	ActionLogin         Action = "login"
	ActionSignup        Action = "signup"
	ActionEmailVerify   Action = "emailVerify"
	ActionCheckIdentity Action = "checkIdentity"
	ActionGetUserInfo   Action = "getUserInfo"
	ActionUpdate        Action = "update"
	ActionGetProjects   Action = "getProjects"
	ActionAddStaff      Action = "addStaff"
	ActionDeleteStaff   Action = "deleteStaff"
	ActionGetStaff      Action = "getStaff"
	ActionAddTea        Action = "addTea"
	ActionDeleteTea     Action = "deleteTea"
	ActionGetTeas       Action = "getTeas"

	// ActionEmailVerifyLegacy is the misspelled action name older clients
	// still send.
	ActionEmailVerifyLegacy Action = "emailVertify"
)

// Request is the decoded inbound request: action name, field map, optional
// binary attachments, and the bearer token pulled from the Authorization
// header (empty when no header was sent).
type Request struct {
	Action Action
	Fields map[string]string
	Files  map[string]multipart.File
	Token  string
}

// Field returns the named form field, or "" when absent.
func (r *Request) Field(name string) string {
	return r.Fields[name]
}

// HasFields reports whether every named field is present and non-empty.
func (r *Request) HasFields(names ...string) bool {
	for _, name := range names {
		if r.Fields[name] == "" {
			return false
		}
	}
	return true
}
