package entity

// Role is the closed set of authorization roles. Anonymous is the zero
// value so an unauthenticated request carries no capabilities by default.
type Role int

const (
	RoleAnonymous Role = iota
	RoleEditor
	RoleAdmin
)

// ParseRole maps a stored or claimed role string to a Role.
// Unknown strings map to RoleAnonymous.
func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "editor":
		return RoleEditor
	default:
		return RoleAnonymous
	}
}

// String returns the wire representation of the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleEditor:
		return "editor"
	case RoleAnonymous:
		return "anonymous"
	default:
		return "anonymous"
	}
}

// Identity is the acting user attached to a request after authentication.
type Identity struct {
	UserID int64
	Role   Role
}

// CanAuthorArticles reports whether the identity may create articles.
func (id Identity) CanAuthorArticles() bool {
	switch id.Role {
	case RoleAdmin, RoleEditor:
		return true
	case RoleAnonymous:
		return false
	default:
		return false
	}
}

// CanManageArticle reports whether the identity may update or delete an
// article owned by authorID. Editors manage only their own articles;
// admins manage all.
func (id Identity) CanManageArticle(authorID int64) bool {
	switch id.Role {
	case RoleAdmin:
		return true
	case RoleEditor:
		return id.UserID == authorID
	case RoleAnonymous:
		return false
	default:
		return false
	}
}

// CanViewStats reports whether the identity may read the per-author
// aggregation endpoint.
func (id Identity) CanViewStats() bool {
	return id.Role == RoleAdmin
}

// CanManageUsers reports whether the identity may administer user accounts
// and view the subscriber list.
func (id Identity) CanManageUsers() bool {
	return id.Role == RoleAdmin
}
