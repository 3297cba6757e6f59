package user

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/validators"
)

const MinPasswordLength = 6

// UpdateInput holds the editable profile fields; nil means unchanged.
type UpdateInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Role     *string
	Password *string
}

type UpdateUser struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateUser(repo domain.Repository, audit *audit.Dispatcher) *UpdateUser {
	return &UpdateUser{repo: repo, audit: audit}
}

func (uc *UpdateUser) Execute(
	ctx context.Context,
	a actor.Actor,
	id uint,
	in UpdateInput,
) (*models.User, error) {

	target, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	role := ""
	if in.Role != nil {
		role = strings.ToUpper(strings.TrimSpace(*in.Role))
		if !domain.ValidRole(role) {
			return nil, httperr.ErrBusiness("invalid_role")
		}
	}

	if err := domain.CanModify(a, target, role); err != nil {
		return nil, err
	}

	changed := []string{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrBusinessMsg("invalid_name", "Name cannot be empty.")
		}
		target.Name = name
		changed = append(changed, "name")
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !validators.IsEmailFormatValid(email) {
			return nil, httperr.ErrBusinessMsg("invalid_email", "Email address is not valid.")
		}
		if email != target.Email {
			other, err := uc.repo.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != target.ID {
				return nil, httperr.ErrBusinessMsg("email_taken", "Another account already uses this email.")
			}
			target.Email = email
			changed = append(changed, "email")
		}
	}

	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone != "" && !validators.IsPhoneValid(phone) {
			return nil, httperr.ErrBusinessMsg("invalid_phone", "Phone number format is not valid.")
		}
		target.Phone = phone
		changed = append(changed, "phone")
	}

	if role != "" && role != target.Role {
		target.Role = role
		changed = append(changed, "role")
	}

	if in.Password != nil {
		if len(*in.Password) < MinPasswordLength {
			return nil, httperr.ErrBusinessMsg("weak_password", "Password must have at least 6 characters.")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = string(hashed)
		changed = append(changed, "password")
	}

	if err := uc.repo.UpdateUser(ctx, target); err != nil {
		// lost the race against a concurrent signup
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusinessMsg("email_taken", "Another account already uses this email.")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &a.UserID,
		Action:   "user_updated",
		Entity:   "user",
		EntityID: &target.ID,
		Metadata: map[string]any{"fields": changed},
	})

	return target, nil
}
