package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// -------- fake repository --------

type fakeRepo struct {
	users     map[uint]*models.User
	updateErr error
	cascaded  []uint
	notes     []string
	listed    domain.ListFilter
}

func newFakeRepo(users ...*models.User) *fakeRepo {
	r := &fakeRepo{users: map[uint]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListUsers(_ context.Context, f domain.ListFilter) ([]models.User, int64, error) {
	r.listed = f
	var out []models.User
	for _, u := range r.users {
		if f.Role == "" || u.Role == f.Role {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) CreateUser(_ context.Context, u *models.User) error {
	u.ID = uint(len(r.users) + 100)
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) UpdateUser(_ context.Context, u *models.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) DeleteCascade(_ context.Context, id uint, note string, _ time.Time) error {
	r.cascaded = append(r.cascaded, id)
	r.notes = append(r.notes, note)
	delete(r.users, id)
	return nil
}

// -------- fixtures --------

var (
	admin  = actor.Actor{UserID: 1, Role: models.RoleAdmin}
	owner  = actor.Actor{UserID: 2, Role: models.RoleAdmin, IsOwner: true}
	client = actor.Actor{UserID: 5, Role: models.RoleClient}
)

func fixtures() *fakeRepo {
	barberUserID := uint(4)
	return newFakeRepo(
		&models.User{ID: 1, Name: "Admin", Email: "admin@shop.com", Role: models.RoleAdmin},
		&models.User{ID: 2, Name: "Owner", Email: "owner@shop.com", Role: models.RoleAdmin},
		&models.User{ID: 3, Name: "Second Admin", Email: "second@shop.com", Role: models.RoleAdmin},
		&models.User{ID: 4, Name: "Rui", Email: "rui@shop.com", Role: models.RoleBarber,
			Barber: &models.Barber{ID: 9, UserID: &barberUserID}},
		&models.User{ID: 5, Name: "Ana", Email: "ana@example.com", Role: models.RoleClient},
	)
}

func ptr(s string) *string { return &s }

func clock() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC) }

// -------- get / list --------

func TestGetUser(t *testing.T) {
	uc := NewGetUser(fixtures())

	u, err := uc.Execute(context.Background(), admin, 5)
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)

	_, err = uc.Execute(context.Background(), client, 5)
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), client, 3)
	assert.True(t, httperr.IsBusiness(err, "forbidden"))

	_, err = uc.Execute(context.Background(), admin, 99)
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))
}

func TestListUsersNormalizesRole(t *testing.T) {
	repo := fixtures()
	uc := NewListUsers(repo)

	users, total, err := uc.Execute(context.Background(), admin, domain.ListFilter{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 3)
	assert.Equal(t, models.RoleAdmin, repo.listed.Role)

	_, _, err = uc.Execute(context.Background(), admin, domain.ListFilter{Role: "guest"})
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))

	_, _, err = uc.Execute(context.Background(), client, domain.ListFilter{})
	assert.True(t, httperr.IsBusiness(err, "forbidden"))
}

// -------- update --------

func TestUpdateUserProfile(t *testing.T) {
	repo := fixtures()
	uc := NewUpdateUser(repo, nil)

	u, err := uc.Execute(context.Background(), admin, 5, UpdateInput{
		Name:     ptr("  Ana Souza "),
		Email:    ptr("ANA.SOUZA@example.com"),
		Phone:    ptr("+55 (11) 98765-4321"),
		Password: ptr("s3cretpass"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Souza", u.Name)
	assert.Equal(t, "ana.souza@example.com", u.Email)
	assert.Equal(t, "+55 (11) 98765-4321", u.Phone)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[5].PasswordHash), []byte("s3cretpass")))
}

func TestUpdateUserRejectsTakenEmail(t *testing.T) {
	uc := NewUpdateUser(fixtures(), nil)

	_, err := uc.Execute(context.Background(), admin, 5, UpdateInput{Email: ptr("rui@shop.com")})
	assert.True(t, httperr.IsBusiness(err, "email_taken"))
}

func TestUpdateUserMapsUniqueViolation(t *testing.T) {
	repo := fixtures()
	repo.updateErr = &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
	uc := NewUpdateUser(repo, nil)

	_, err := uc.Execute(context.Background(), admin, 5, UpdateInput{Email: ptr("new@example.com")})
	assert.True(t, httperr.IsBusiness(err, "email_taken"))
}

func TestUpdateUserValidation(t *testing.T) {
	uc := NewUpdateUser(fixtures(), nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, admin, 5, UpdateInput{Phone: ptr("call me")})
	assert.True(t, httperr.IsBusiness(err, "invalid_phone"))

	_, err = uc.Execute(ctx, admin, 5, UpdateInput{Password: ptr("123")})
	assert.True(t, httperr.IsBusiness(err, "weak_password"))

	_, err = uc.Execute(ctx, admin, 5, UpdateInput{Role: ptr("superuser")})
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))

	_, err = uc.Execute(ctx, admin, 5, UpdateInput{Name: ptr("   ")})
	assert.True(t, httperr.IsBusiness(err, "invalid_name"))

	// clearing the phone is allowed
	u, err := uc.Execute(ctx, admin, 5, UpdateInput{Phone: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, u.Phone)
}

func TestOnlyOwnerGrantsAdmin(t *testing.T) {
	repo := fixtures()
	uc := NewUpdateUser(repo, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, admin, 5, UpdateInput{Role: ptr("ADMIN")})
	assert.True(t, httperr.IsBusiness(err, "cannot_change_admin_role"))
	assert.Equal(t, models.RoleClient, repo.users[5].Role)

	_, err = uc.Execute(ctx, admin, 3, UpdateInput{Name: ptr("Renamed")})
	assert.True(t, httperr.IsBusiness(err, "cannot_modify_admin"))

	u, err := uc.Execute(ctx, owner, 5, UpdateInput{Role: ptr("admin")})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

// -------- delete --------

func TestDeleteUserGuards(t *testing.T) {
	cases := []struct {
		name  string
		actor actor.Actor
		id    uint
		code  string
	}{
		{"self", admin, 1, "cannot_delete_self"},
		{"other admin as plain admin", admin, 3, "cannot_delete_admin"},
		{"barber-linked", owner, 4, "user_is_barber"},
		{"client actor", client, 5, "forbidden"},
		{"missing", admin, 42, "user_not_found"},
	}

	for _, tt := range cases {
		repo := fixtures()
		uc := NewDeleteUser(repo, nil, clock)

		err := uc.Execute(context.Background(), tt.actor, tt.id)
		assert.True(t, httperr.IsBusiness(err, tt.code), tt.name)
		assert.Empty(t, repo.cascaded, tt.name)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	repo := fixtures()
	uc := NewDeleteUser(repo, nil, clock)

	require.NoError(t, uc.Execute(context.Background(), admin, 5))
	assert.Equal(t, []uint{5}, repo.cascaded)
	assert.Equal(t, []string{CancellationNote}, repo.notes)

	require.NoError(t, uc.Execute(context.Background(), owner, 3))
	assert.Equal(t, []uint{5, 3}, repo.cascaded)
}

type failingCascade struct{ *fakeRepo }

func (failingCascade) DeleteCascade(context.Context, uint, string, time.Time) error {
	return errors.New("delete user 5: sessions: connection reset")
}

func TestDeleteUserSurfacesCascadeFailure(t *testing.T) {
	uc := NewDeleteUser(failingCascade{fixtures()}, nil, clock)

	err := uc.Execute(context.Background(), admin, 5)
	require.Error(t, err)
	_, isBusiness := httperr.AsBusiness(err)
	assert.False(t, isBusiness)
}
