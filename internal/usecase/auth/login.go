package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-manager/internal/auth"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/session"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IP        string
}

type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type Login struct {
	users    domain.Repository
	sessions session.Repository
	tokens   *auth.TokenIssuer
	now      timezone.Clock
}

func NewLogin(
	users domain.Repository,
	sessions session.Repository,
	tokens *auth.TokenIssuer,
	now timezone.Clock,
) *Login {
	return &Login{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		now:      now,
	}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginResult, error) {
	u, err := uc.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	// same answer for unknown email and wrong password
	if u == nil || u.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	now := uc.now()
	tokenID := uuid.NewString()

	token, exp, err := uc.tokens.Issue(u.ID, u.Role, u.Email, tokenID, now)
	if err != nil {
		return nil, err
	}

	s := &models.Session{
		UserID:    u.ID,
		TokenID:   tokenID,
		ExpiresAt: exp,
		UserAgent: truncate(in.UserAgent, 255),
		IP:        truncate(strings.TrimSpace(in.IP), 64),
	}
	if err := uc.sessions.Create(ctx, s); err != nil {
		return nil, err
	}

	return &LoginResult{User: u, Token: token, ExpiresAt: exp}, nil
}

type Logout struct {
	sessions session.Repository
}

func NewLogout(sessions session.Repository) *Logout {
	return &Logout{sessions: sessions}
}

func (uc *Logout) Execute(ctx context.Context, tokenID string) error {
	return uc.sessions.Delete(ctx, tokenID)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
