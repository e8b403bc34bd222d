package utilities

import (
	"github.com/google/uuid"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
)

// IsOwnerOrElevated reports whether the user owns the resource identified by
// ownerID or holds one of the elevated roles. Elevated roles bypass the
// ownership check entirely.
func IsOwnerOrElevated(user model.User, ownerID uuid.UUID, elevated ...model.Role) bool {
	if user.ID == ownerID {
		return true
	}
	for _, role := range elevated {
		if user.Role == role {
			return true
		}
	}
	return false
}
