package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	usecase "github.com/BruksfildServices01/barbershop-manager/internal/usecase/user"
	"github.com/BruksfildServices01/barbershop-manager/internal/validators"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register creates CLIENT accounts only; staff are promoted by an admin.
type Register struct {
	users domain.Repository
	audit *audit.Dispatcher

	emailDomainOK func(email string) bool
}

func NewRegister(users domain.Repository, audit *audit.Dispatcher) *Register {
	return &Register{
		users:         users,
		audit:         audit,
		emailDomainOK: validators.IsEmailDomainValid,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.Phone)

	if name == "" {
		return nil, httperr.ErrBusinessMsg("invalid_name", "Name cannot be empty.")
	}
	if len(in.Password) < usecase.MinPasswordLength {
		return nil, httperr.ErrBusinessMsg("weak_password", "Password must have at least 6 characters.")
	}
	if phone != "" && !validators.IsPhoneValid(phone) {
		return nil, httperr.ErrBusinessMsg("invalid_phone", "Phone number format is not valid.")
	}
	if !validators.IsEmailFormatValid(email) {
		return nil, httperr.ErrBusinessMsg("invalid_email", "Email address is not valid.")
	}
	if !uc.emailDomainOK(email) {
		return nil, httperr.ErrBusinessMsg("invalid_email_domain", "The email domain does not look valid.")
	}

	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrBusinessMsg("email_taken", "Another account already uses this email.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        phone,
		Role:         models.RoleClient,
	}

	if err := uc.users.CreateUser(ctx, u); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusinessMsg("email_taken", "Another account already uses this email.")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return u, nil
}
