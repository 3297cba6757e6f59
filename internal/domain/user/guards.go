package user

import (
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// CanDelete applies the admin deletion rules: nobody deletes themselves,
// barber profiles go through barber management, and only the owner may
// remove another admin.
func CanDelete(a actor.Actor, target *models.User) error {
	if !a.IsAdmin() {
		return httperr.ErrBusiness("forbidden")
	}
	if a.UserID == target.ID {
		return httperr.ErrBusinessMsg("cannot_delete_self", "You cannot delete your own account.")
	}
	if target.Barber != nil {
		return httperr.ErrBusinessMsg(
			"user_is_barber",
			"This user is linked to a barber profile. Remove it through barber management instead.",
		)
	}
	if target.IsAdmin() && !a.IsOwner {
		return httperr.ErrBusinessMsg("cannot_delete_admin", "Only the owner can delete admin accounts.")
	}
	return nil
}

// CanModify guards profile edits; role is the requested new role, empty
// when unchanged.
func CanModify(a actor.Actor, target *models.User, role string) error {
	if !a.IsAdmin() {
		return httperr.ErrBusiness("forbidden")
	}
	if target.IsAdmin() && target.ID != a.UserID && !a.IsOwner {
		return httperr.ErrBusinessMsg("cannot_modify_admin", "Only the owner can modify other admin accounts.")
	}
	if role != "" && role != target.Role && (role == models.RoleAdmin || target.IsAdmin()) && !a.IsOwner {
		return httperr.ErrBusinessMsg("cannot_change_admin_role", "Only the owner can grant or revoke admin access.")
	}
	return nil
}

func ValidRole(role string) bool {
	switch role {
	case models.RoleClient, models.RoleBarber, models.RoleAdmin:
		return true
	}
	return false
}
