package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/EO-DataHub/eodhp-crm-console/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email": "a@b.com", "password": "pw"}`, string(body))
		_, _ = w.Write([]byte(`{"user": {"id": "1", "name": "Ann", "role": "admin"}, "token": "T"}`))
	}))
	defer server.Close()

	api := NewAuthAPI(NewClient(server.URL, 0))
	resp, err := api.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "T", resp.Token)
	assert.Equal(t, "1", resp.User.ID)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestLogin_ErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Invalid email or password"}`))
	}))
	defer server.Close()

	api := NewAuthAPI(NewClient(server.URL, 0))
	_, err := api.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "Invalid email or password", httpErr.Message)
}

func TestLogin_MissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user": {"id": "1"}}`))
	}))
	defer server.Close()

	api := NewAuthAPI(NewClient(server.URL, 0))
	_, err := api.Login(context.Background(), "a@b.com", "pw")
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id": "7", "email": "x@y.com", "permissions": ["contacts:read"]}`))
	}))
	defer server.Close()

	api := NewAuthAPI(NewClient(server.URL, 0))
	user, err := api.ValidateToken(context.Background(), "stored-token")
	require.NoError(t, err)
	assert.Equal(t, "7", user.ID)
	assert.True(t, user.HasPermission("contacts:read"))
}

func TestUpdateProfile_SendsOnlySetFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/auth/profile", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name": "New Name"}`, string(body))
		_, _ = w.Write([]byte(`{"id": "1", "name": "New Name", "email": "a@b.com"}`))
	}))
	defer server.Close()

	name := "New Name"
	api := NewAuthAPI(NewClient(server.URL, 0))
	user, err := api.UpdateProfile(context.Background(), "T", models.ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestUpdateProfile_NeverSendsRole(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name": "N"}`, string(body))
		_, _ = w.Write([]byte(`{"id": "1", "name": "N", "role": "sales_rep"}`))
	}))
	defer server.Close()

	var update models.ProfileUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"name": "N", "role": "admin"}`), &update))

	user, err := NewAuthAPI(NewClient(server.URL, 0)).UpdateProfile(context.Background(), "T", update)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSalesRep, user.Role)
}

func TestResourceList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/leads", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer T", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id": "l1", "name": "Acme", "status": "qualified", "probability": 40}]`))
	}))
	defer server.Close()

	leads, err := NewLeads(NewClient(server.URL, 0)).List(context.Background(), "T")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "l1", leads[0].ID)
	assert.Equal(t, models.LeadQualified, leads[0].Status)
	assert.Equal(t, 40, leads[0].Probability)
}

func TestResourceCreate_OmitsServerFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/deals", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.NotContains(t, string(body), `"id"`)
		assert.NotContains(t, string(body), `"createdAt"`)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	deals := NewDeals(NewClient(server.URL, 0))
	err := deals.Create(context.Background(), "T", models.DealInput{Title: "Renewal", Stage: "discovery"})
	assert.NoError(t, err)
}

func TestResourceUpdateAndDelete(t *testing.T) {
	var mu sync.Mutex
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contacts/c-5", r.URL.Path)
		mu.Lock()
		methods = append(methods, r.Method)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	contacts := NewContacts(NewClient(server.URL, 0))
	phone := "555-0100"
	require.NoError(t, contacts.Update(context.Background(), "T", "c-5", models.ContactPatch{Phone: &phone}))
	require.NoError(t, contacts.Delete(context.Background(), "T", "c-5"))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{http.MethodPut, http.MethodDelete}, methods)
}

func TestResourceDelete_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := NewContacts(NewClient(server.URL, 0)).Delete(context.Background(), "T", "5")

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "500 Internal Server Error", httpErr.Message)
}
