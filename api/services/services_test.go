package services

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/EO-DataHub/eodhp-crm-console/internal/authn"
	"github.com/EO-DataHub/eodhp-crm-console/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_CreateAssignsServerFields(t *testing.T) {
	b := NewBackend([]byte("s"), time.Hour)

	lead, err := b.Leads.Create([]byte(`{"id": "client-made", "name": "Acme", "status": "new", "probability": 10}`))
	require.NoError(t, err)
	assert.NotEqual(t, "client-made", lead.ID)
	assert.NotEmpty(t, lead.ID)
	assert.NotEmpty(t, lead.CreatedAt)
	assert.Equal(t, 1, b.Leads.Len())
}

func TestTable_CreateValidation(t *testing.T) {
	b := NewBackend([]byte("s"), time.Hour)

	_, err := b.Leads.Create([]byte(`{"name": "Acme", "status": "won"}`))
	assert.Equal(t, http.StatusBadRequest, StatusFor(err))

	_, err = b.Deals.Create([]byte(`{"title": "Big", "probability": 101}`))
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "probability", validationErr.Field)

	_, err = b.Contacts.Create([]byte(`not json`))
	assert.Equal(t, http.StatusBadRequest, StatusFor(err))
	assert.Equal(t, 0, b.Contacts.Len())
}

func TestTable_UpdateOverlaysFields(t *testing.T) {
	b := NewBackend([]byte("s"), time.Hour)
	created, err := b.Contacts.Create([]byte(`{"name": "Ann", "email": "a@b.com", "status": "active", "leadScore": 10}`))
	require.NoError(t, err)

	updated, err := b.Contacts.Update(created.ID, []byte(`{"leadScore": 55, "id": "other", "createdAt": "2000-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, 55, updated.LeadScore)
	assert.Equal(t, "Ann", updated.Name)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	// a rejected update leaves the record alone
	_, err = b.Contacts.Update(created.ID, []byte(`{"status": "archived"}`))
	assert.Error(t, err)
	got, err := b.Contacts.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactActive, got.Status)
}

func TestTable_DeleteAndNotFound(t *testing.T) {
	b := NewBackend([]byte("s"), time.Hour)
	first, _ := b.Deals.Create([]byte(`{"title": "One"}`))
	second, _ := b.Deals.Create([]byte(`{"title": "Two"}`))

	require.NoError(t, b.Deals.Delete(first.ID))
	assert.Equal(t, []models.Deal{second}, b.Deals.List())

	err := b.Deals.Delete(first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, http.StatusNotFound, StatusFor(err))

	_, err = b.Deals.Update("missing", []byte(`{}`))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogin(t *testing.T) {
	b := NewBackend([]byte("s"), time.Hour)
	_, err := b.Users.Add(models.User{ID: "1", Email: "A@B.com", Role: models.RoleSalesRep}, "pw")
	require.NoError(t, err)

	resp, err := b.Login(models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "1", resp.User.ID)

	claims, err := authn.ParseClaims(resp.Token, b.Secret)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)

	_, err = b.Login(models.Credentials{Email: "a@b.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, http.StatusUnauthorized, StatusFor(err))
}

func TestUsers_AddRejectsUnknownRoleAndDuplicates(t *testing.T) {
	users := NewUsers()

	_, err := users.Add(models.User{Email: "x@y.com", Role: "owner"}, "pw")
	assert.Error(t, err)

	_, err = users.Add(models.User{Email: "x@y.com", Role: models.RoleAdmin}, "pw")
	require.NoError(t, err)
	_, err = users.Add(models.User{Email: "X@y.com ", Role: models.RoleAdmin}, "pw")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUsers_UpdateProfile(t *testing.T) {
	users := NewUsers()
	_, err := users.Add(models.User{ID: "1", Name: "Ann", Email: "a@b.com", Role: models.RoleManager}, "pw")
	require.NoError(t, err)
	_, err = users.Add(models.User{ID: "2", Email: "taken@b.com", Role: models.RoleManager}, "pw")
	require.NoError(t, err)

	name, email := "Ann B.", "ann@b.com"
	user, err := users.UpdateProfile("1", models.ProfileUpdate{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Ann B.", user.Name)
	assert.Equal(t, models.RoleManager, user.Role)

	// the new email is the login from now on
	_, err = users.Authenticate("ann@b.com", "pw")
	assert.NoError(t, err)
	_, err = users.Authenticate("a@b.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	taken := "taken@b.com"
	_, err = users.UpdateProfile("1", models.ProfileUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = users.UpdateProfile("missing", models.ProfileUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}
