package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/EO-DataHub/eodhp-crm-console/models"
)

const (
	ContactsPath = "/api/contacts"
	LeadsPath    = "/api/leads"
	DealsPath    = "/api/deals"
)

// Resource is a REST collection of records of type T, created from In and
// partially updated with P.
type Resource[T, In, P any] struct {
	client *Client
	Name   string
	Path   string
}

func NewResource[T, In, P any](c *Client, name, path string) *Resource[T, In, P] {
	return &Resource[T, In, P]{client: c, Name: name, Path: path}
}

func NewContacts(c *Client) *Resource[models.Contact, models.ContactInput, models.ContactPatch] {
	return NewResource[models.Contact, models.ContactInput, models.ContactPatch](c, "contacts", ContactsPath)
}

func NewLeads(c *Client) *Resource[models.Lead, models.LeadInput, models.LeadPatch] {
	return NewResource[models.Lead, models.LeadInput, models.LeadPatch](c, "leads", LeadsPath)
}

func NewDeals(c *Client) *Resource[models.Deal, models.DealInput, models.DealPatch] {
	return NewResource[models.Deal, models.DealInput, models.DealPatch](c, "deals", DealsPath)
}

// List retrieves the whole collection.
func (r *Resource[T, In, P]) List(ctx context.Context, token string) ([]T, error) {
	respBody, _, err := r.client.makeRequest(ctx, http.MethodGet, r.Path, token, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]T](respBody)
}

// Create posts a new record. The response body is not used; callers refetch.
func (r *Resource[T, In, P]) Create(ctx context.Context, token string, record In) error {
	_, _, err := r.client.makeRequest(ctx, http.MethodPost, r.Path, token, record)
	return err
}

// Update sends a partial update for the record with the given ID.
func (r *Resource[T, In, P]) Update(ctx context.Context, token, id string, patch P) error {
	_, _, err := r.client.makeRequest(ctx, http.MethodPut, r.itemPath(id), token, patch)
	return err
}

// Delete removes the record with the given ID.
func (r *Resource[T, In, P]) Delete(ctx context.Context, token, id string) error {
	_, _, err := r.client.makeRequest(ctx, http.MethodDelete, r.itemPath(id), token, nil)
	return err
}

func (r *Resource[T, In, P]) itemPath(id string) string {
	return fmt.Sprintf("%s/%s", r.Path, url.PathEscape(id))
}
