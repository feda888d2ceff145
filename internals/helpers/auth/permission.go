// file: internals/helpers/auth/permission.go
package helperAuth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "schoolku_backend/internals/helpers"
)

/* ============================================
   Permission gate.
   Pre-condition check only: the fee engine itself is
   permission-agnostic and assumes the caller passed here.
============================================ */

type Action string

const (
	ActionRead    Action = "read"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionAssign  Action = "assign"
	ActionApprove Action = "approve"
)

// resource → action → allowed roles
var permissionMatrix = map[string]map[Action][]string{
	"school_years": {
		ActionRead:   {"teacher", "admin", "bendahara"},
		ActionCreate: {"admin"},
		ActionUpdate: {"admin"},
		ActionDelete: {"admin"},
	},
	"students": {
		ActionRead:   {"teacher", "admin", "bendahara"},
		ActionCreate: {"admin"},
		ActionUpdate: {"admin"},
		ActionDelete: {"admin"},
	},
	"enrollments": {
		ActionRead:   {"teacher", "admin", "bendahara"},
		ActionCreate: {"admin"},
		ActionUpdate: {"admin"},
	},
	"fee_catalog": {
		ActionRead:   {"teacher", "admin", "bendahara"},
		ActionCreate: {"admin", "bendahara"},
		ActionUpdate: {"admin", "bendahara"},
		ActionDelete: {"admin", "bendahara"},
	},
	"discounts": {
		ActionRead:    {"teacher", "admin", "bendahara"},
		ActionCreate:  {"admin", "bendahara"},
		ActionUpdate:  {"admin", "bendahara"},
		ActionApprove: {"admin", "bendahara"},
	},
	"student_fees": {
		ActionRead:   {"teacher", "admin", "bendahara"},
		ActionAssign: {"admin", "bendahara"},
	},
}

// RequirePermission raises 403 before the operation runs if the caller
// lacks the (resource, action) right in this school.
func RequirePermission(c *fiber.Ctx, schoolID uuid.UUID, resource string, action Action) error {
	actions, ok := permissionMatrix[resource]
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "unknown resource")
	}
	roles, ok := actions[action]
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "action not permitted")
	}
	return ensureRolesInSchool(c, schoolID, roles, "Insufficient permission")
}
