package entity

// Permission is an 8-bit capability set. A role grants a capability when
// every bit of the capability is present in its mask.
type Permission uint8

const (
	PermissionFollow Permission = 1 << iota
	PermissionWrite
	PermissionComment
	PermissionMark
	PermissionGrade
	PermissionVisit
	PermissionManage
	PermissionAdmin
)

const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
	RoleVisitor = "Visitor"
)

// HasCapability reports whether every bit of required is set in granted.
func HasCapability(granted, required Permission) bool {
	return granted&required == required
}

type Role struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Default     bool       `json:"default"`
	Permissions Permission `json:"permissions"`
}

func (r *Role) Can(p Permission) bool {
	if r == nil {
		return false
	}
	return HasCapability(r.Permissions, p)
}

const basePermissions = PermissionFollow | PermissionWrite | PermissionComment |
	PermissionMark | PermissionGrade

// RolePresets returns the named roles every deployment carries, in a stable
// order. Exactly one preset is the default for new users.
func RolePresets() []Role {
	return []Role{
		{Name: RoleAdmin, Permissions: basePermissions | PermissionManage | PermissionAdmin},
		{Name: RoleManager, Permissions: basePermissions | PermissionManage},
		{Name: RoleUser, Permissions: basePermissions, Default: true},
		{Name: RoleVisitor, Permissions: basePermissions | PermissionVisit},
	}
}
