package actor

import "github.com/BruksfildServices01/barbershop-manager/internal/models"

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID  uint
	Role    string
	Email   string
	IsOwner bool
}

func (a Actor) IsAdmin() bool  { return a.Role == models.RoleAdmin }
func (a Actor) IsBarber() bool { return a.Role == models.RoleBarber }
func (a Actor) IsClient() bool { return a.Role == models.RoleClient }

// Label is the lowercase role name used in generated notes.
func (a Actor) Label() string {
	switch a.Role {
	case models.RoleAdmin:
		return "admin"
	case models.RoleBarber:
		return "barber"
	default:
		return "client"
	}
}
