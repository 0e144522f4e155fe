package booking

import "github.com/BruksfildServices01/service-booking/internal/models"

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID uint
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}
