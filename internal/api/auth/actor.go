package auth

import "reviewhub/internal/api/models"

// Actor is the identity a request acts as. The zero value is the
// anonymous identity: it can read public resources and nothing else.
type Actor struct {
	ID        string
	Username  string
	Role      models.Role
	Superuser bool
}

func (a Actor) Anonymous() bool {
	return a.ID == ""
}

// IsAdmin: the superuser flag grants admin capability regardless of role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin || a.Superuser
}

func (a Actor) IsModerator() bool {
	return a.Role == models.RoleModerator
}

// CanModify decides review/comment mutation: the author, a moderator or
// an admin may change the resource; other users may not.
func (a Actor) CanModify(ownerID string) bool {
	if a.Anonymous() {
		return false
	}
	return a.ID == ownerID || a.IsModerator() || a.IsAdmin()
}
