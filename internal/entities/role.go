package entities

// Named permission units. SuperUser implies every other role.
const (
	RoleURLCreator       = "UrlCreator"
	RoleURLViewer        = "UrlViewer"
	RoleURLManager       = "UrlManager"
	RoleQRCreator        = "QrCreator"
	RoleQRViewer         = "QrViewer"
	RoleQRManager        = "QrManager"
	RoleAnalyticsViewer  = "AnalyticsViewer"
	RoleAnalyticsManager = "AnalyticsManager"
	RoleUserViewer       = "UserViewer"
	RoleUserManager      = "UserManager"
	RoleSystemAdmin      = "SystemAdmin"
	RoleSuperUser        = "SuperUser"
)

// AllRoles is the complete compile-time role set.
var AllRoles = []string{
	RoleURLCreator,
	RoleURLViewer,
	RoleURLManager,
	RoleQRCreator,
	RoleQRViewer,
	RoleQRManager,
	RoleAnalyticsViewer,
	RoleAnalyticsManager,
	RoleUserViewer,
	RoleUserManager,
	RoleSystemAdmin,
	RoleSuperUser,
}

// DefaultRoles is what a self-signup account starts with.
var DefaultRoles = []string{
	RoleURLCreator,
	RoleURLViewer,
	RoleQRCreator,
	RoleQRViewer,
	RoleAnalyticsViewer,
}

// IsValidRole reports whether name is one of the defined roles.
func IsValidRole(name string) bool {
	for _, r := range AllRoles {
		if r == name {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the held role set satisfies any of the required
// roles. SuperUser satisfies everything; an empty required set is satisfied
// by any authenticated caller.
func HasAnyRole(held []string, required ...string) bool {
	if len(required) == 0 {
		return true
	}
	for _, h := range held {
		if h == RoleSuperUser {
			return true
		}
		for _, r := range required {
			if h == r {
				return true
			}
		}
	}
	return false
}
