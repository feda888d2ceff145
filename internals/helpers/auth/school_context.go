// file: internals/helpers/auth/school_context.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
	helper "schoolku_backend/internals/helpers"
)

/* ============================================
   Locals keys (middleware sets these)
============================================ */

const (
	LocUserID         = "user_id"          // string UUID
	LocActiveSchoolID = "active_school_id" // string UUID
	LocSchoolRoles    = "school_roles"     // []SchoolRolesEntry | []map[string]any
	LocRolesGlobal    = "roles_global"     // []string
	LocStudentID      = "student_id"       // string UUID (set when the token belongs to a student)
)

type SchoolRolesEntry struct {
	SchoolID uuid.UUID `json:"school_id"`
	Roles    []string  `json:"roles"`
}

/* ============================================
   Resolvers
============================================ */

// GetUserID reads the authenticated user id from locals.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	switch v := c.Locals(LocUserID).(type) {
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(v)
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
}

// GetStudentID reads the student record id bound to the token, if any.
func GetStudentID(c *fiber.Ctx) (uuid.UUID, bool) {
	switch v := c.Locals(LocStudentID).(type) {
	case uuid.UUID:
		return v, true
	case string:
		if id, err := uuid.Parse(v); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

// MustSchoolID resolves the tenant from the :school_id path param,
// falling back to the token's active school.
func MustSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	if raw := strings.TrimSpace(c.Params("school_id")); raw != "" {
		return uuid.Parse(raw)
	}
	if raw, ok := c.Locals(LocActiveSchoolID).(string); ok && raw != "" {
		return uuid.Parse(raw)
	}
	return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "missing school context")
}

/* ============================================
   Role checks
============================================ */

func rolesInSchool(c *fiber.Ctx, schoolID uuid.UUID) []string {
	switch entries := c.Locals(LocSchoolRoles).(type) {
	case []SchoolRolesEntry:
		for _, e := range entries {
			if e.SchoolID == schoolID {
				return e.Roles
			}
		}
	case []any: // raw JWT claim shape
		for _, raw := range entries {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			sid, _ := m["school_id"].(string)
			if id, err := uuid.Parse(sid); err != nil || id != schoolID {
				continue
			}
			var out []string
			if rr, ok := m["roles"].([]any); ok {
				for _, r := range rr {
					if s, ok := r.(string); ok {
						out = append(out, s)
					}
				}
			}
			return out
		}
	}
	return nil
}

func hasAnyRole(have []string, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func ensureRolesInSchool(c *fiber.Ctx, schoolID uuid.UUID, roles []string, forbidMessage string) error {
	if hasAnyRole(rolesInSchool(c, schoolID), roles) {
		return nil
	}
	if strings.TrimSpace(forbidMessage) == "" {
		forbidMessage = "Not allowed"
	}
	return helper.JsonError(c, fiber.StatusForbidden, forbidMessage)
}

/* ============================================
   Public guards
============================================ */

func EnsureMemberSchool(c *fiber.Ctx, schoolID uuid.UUID) error {
	roles := append([]string{constants.RoleStudent, constants.RoleParent}, constants.StaffRoles...)
	return ensureRolesInSchool(c, schoolID, roles, "Members of this school only")
}

func EnsureStaffSchool(c *fiber.Ctx, schoolID uuid.UUID) error {
	return ensureRolesInSchool(c, schoolID, constants.StaffRoles, "Staff only")
}

func EnsureFinanceSchool(c *fiber.Ctx, schoolID uuid.UUID) error {
	return ensureRolesInSchool(c, schoolID, constants.FinanceRoles, "Admin/treasurer only")
}
