package types

type Role string

const (
	ROLE_ADMIN      Role = "admin"
	ROLE_MANAGER    Role = "manager"
	ROLE_FRONT_DESK Role = "front_desk"
	ROLE_GUEST      Role = "guest"
)

type Permission string

const (
	PERM_MANAGE_RESOURCES   Permission = "resources:manage"
	PERM_VIEW_RESOURCES     Permission = "resources:view"
	PERM_MANAGE_RATES       Permission = "rates:manage"
	PERM_VIEW_RATES         Permission = "rates:view"
	PERM_CREATE_ALLOCATION  Permission = "allocations:create"
	PERM_MANAGE_ALLOCATIONS Permission = "allocations:manage"
	PERM_VIEW_ALLOCATIONS   Permission = "allocations:view"
	PERM_MANAGE_SETTINGS    Permission = "settings:manage"
)

// rolePermissions is the closed role/permission matrix. Roles and permissions are
// fixed at compile time; there is no database-backed lookup.
var rolePermissions = map[Role][]Permission{
	ROLE_ADMIN: {
		PERM_MANAGE_RESOURCES,
		PERM_VIEW_RESOURCES,
		PERM_MANAGE_RATES,
		PERM_VIEW_RATES,
		PERM_CREATE_ALLOCATION,
		PERM_MANAGE_ALLOCATIONS,
		PERM_VIEW_ALLOCATIONS,
		PERM_MANAGE_SETTINGS,
	},
	ROLE_MANAGER: {
		PERM_MANAGE_RESOURCES,
		PERM_VIEW_RESOURCES,
		PERM_MANAGE_RATES,
		PERM_VIEW_RATES,
		PERM_CREATE_ALLOCATION,
		PERM_MANAGE_ALLOCATIONS,
		PERM_VIEW_ALLOCATIONS,
	},
	ROLE_FRONT_DESK: {
		PERM_VIEW_RESOURCES,
		PERM_VIEW_RATES,
		PERM_CREATE_ALLOCATION,
		PERM_MANAGE_ALLOCATIONS,
		PERM_VIEW_ALLOCATIONS,
	},
	ROLE_GUEST: {
		PERM_VIEW_RESOURCES,
		PERM_VIEW_RATES,
		PERM_CREATE_ALLOCATION,
	},
}

func ValidRole(r Role) bool {
	_, ok := rolePermissions[r]
	return ok
}

func HasPermission(r Role, p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

func PermissionsFor(r Role) []string {
	perms := rolePermissions[r]
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}
