package crm

import (
	"context"
	"errors"

	"github.com/EO-DataHub/eodhp-crm-console/api/client"
	"github.com/EO-DataHub/eodhp-crm-console/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrNilDependency = errors.New("crm store requires an API client and a token source")

type (
	Contacts = Collection[models.Contact, models.ContactInput, models.ContactPatch]
	Leads    = Collection[models.Lead, models.LeadInput, models.LeadPatch]
	Deals    = Collection[models.Deal, models.DealInput, models.DealPatch]
)

// Store holds the contacts, leads and deals collections.
type Store struct {
	Contacts *Contacts
	Leads    *Leads
	Deals    *Deals
}

// Resources groups the endpoints a Store reads and writes.
type Resources struct {
	Contacts Resource[models.Contact, models.ContactInput, models.ContactPatch]
	Leads    Resource[models.Lead, models.LeadInput, models.LeadPatch]
	Deals    Resource[models.Deal, models.DealInput, models.DealPatch]
}

// NewResources binds the three CRM endpoints to c.
func NewResources(c *client.Client) Resources {
	return Resources{
		Contacts: client.NewContacts(c),
		Leads:    client.NewLeads(c),
		Deals:    client.NewDeals(c),
	}
}

// New creates a store with empty collections. A nil logger uses the
// global one.
func New(resources Resources, tokens TokenSource, logger *zerolog.Logger) (*Store, error) {
	if tokens == nil || resources.Contacts == nil || resources.Leads == nil || resources.Deals == nil {
		return nil, ErrNilDependency
	}
	if logger == nil {
		logger = &log.Logger
	}

	return &Store{
		Contacts: newCollection("contacts", resources.Contacts, tokens, logger),
		Leads:    newCollection("leads", resources.Leads, tokens, logger),
		Deals:    newCollection("deals", resources.Deals, tokens, logger),
	}, nil
}

// FetchAll loads the three collections concurrently. Each collection is
// updated independently; the first error is returned.
func (s *Store) FetchAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.Contacts.Fetch(ctx) })
	g.Go(func() error { return s.Leads.Fetch(ctx) })
	g.Go(func() error { return s.Deals.Fetch(ctx) })
	return g.Wait()
}

func (s *Store) FetchContacts(ctx context.Context) error { return s.Contacts.Fetch(ctx) }

func (s *Store) AddContact(ctx context.Context, contact models.ContactInput) error {
	return s.Contacts.Create(ctx, contact)
}

func (s *Store) UpdateContact(ctx context.Context, id string, patch models.ContactPatch) error {
	return s.Contacts.Update(ctx, id, patch)
}

func (s *Store) DeleteContact(ctx context.Context, id string) error {
	return s.Contacts.Delete(ctx, id)
}

func (s *Store) FetchLeads(ctx context.Context) error { return s.Leads.Fetch(ctx) }

func (s *Store) AddLead(ctx context.Context, lead models.LeadInput) error {
	return s.Leads.Create(ctx, lead)
}

func (s *Store) UpdateLead(ctx context.Context, id string, patch models.LeadPatch) error {
	return s.Leads.Update(ctx, id, patch)
}

func (s *Store) DeleteLead(ctx context.Context, id string) error {
	return s.Leads.Delete(ctx, id)
}

func (s *Store) FetchDeals(ctx context.Context) error { return s.Deals.Fetch(ctx) }

func (s *Store) AddDeal(ctx context.Context, deal models.DealInput) error {
	return s.Deals.Create(ctx, deal)
}

func (s *Store) UpdateDeal(ctx context.Context, id string, patch models.DealPatch) error {
	return s.Deals.Update(ctx, id, patch)
}

func (s *Store) DeleteDeal(ctx context.Context, id string) error {
	return s.Deals.Delete(ctx, id)
}

// Snapshot returns copies of the three collections.
func (s *Store) Snapshot() (contacts []models.Contact, leads []models.Lead, deals []models.Deal) {
	return s.Contacts.Items(), s.Leads.Items(), s.Deals.Items()
}
