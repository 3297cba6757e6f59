package invoice

import (
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// authorize lets admins reach every invoice and clients their own.
func authorize(a actor.Actor, inv *models.Invoice) error {
	if a.IsAdmin() {
		return nil
	}
	if a.IsClient() && inv.RecipientID != nil && *inv.RecipientID == a.UserID {
		return nil
	}
	return httperr.ErrBusiness("forbidden")
}
