package constants

/* ==============================
   Role names (school scope)
============================== */

const (
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
	RoleBendahara = "bendahara" // treasurer
	RoleTeacher   = "teacher"
	RoleStudent   = "student"
	RoleParent    = "parent"
)

// StaffRoles may manage school data; finance writes are
// further narrowed by the permission gate.
var StaffRoles = []string{RoleAdmin, RoleBendahara, RoleTeacher}

var FinanceRoles = []string{RoleAdmin, RoleBendahara}
