package constant

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"

	DefaultUserRole = RoleUser
)
