package handlers

import (
	"net/http"
	"strings"

	"github.com/EO-DataHub/eodhp-crm-console/api/client"
	"github.com/EO-DataHub/eodhp-crm-console/api/middleware"
	"github.com/EO-DataHub/eodhp-crm-console/api/services"
	"github.com/gorilla/mux"
)

// NewRouter registers the CRM API routes served by the sandbox backend.
func NewRouter(b *services.Backend) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.WithLogger)

	r.HandleFunc("/api/auth/login", Login(b)).Methods(http.MethodPost)

	// Everything else requires a bearer token
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.JWTMiddleware(b.Secret))

	api.HandleFunc("/auth/me", Me(b)).Methods(http.MethodGet)
	api.HandleFunc("/auth/profile", UpdateProfile(b)).Methods(http.MethodPut)

	registerRecords(api, client.ContactsPath, b.Contacts)
	registerRecords(api, client.LeadsPath, b.Leads)
	registerRecords(api, client.DealsPath, b.Deals)

	return r
}

func registerRecords[T any](api *mux.Router, path string, table *services.Table[T]) {
	// paths are relative to the /api subrouter
	rel := strings.TrimPrefix(path, "/api")
	api.HandleFunc(rel, ListRecords(table)).Methods(http.MethodGet)
	api.HandleFunc(rel, CreateRecord(table)).Methods(http.MethodPost)
	api.HandleFunc(rel+"/{id}", UpdateRecord(table)).Methods(http.MethodPut)
	api.HandleFunc(rel+"/{id}", DeleteRecord(table)).Methods(http.MethodDelete)
}
