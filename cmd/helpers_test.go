package cmd

import (
	"context"
	"encoding/json"

	"github.com/EO-DataHub/eodhp-crm-console/api/services"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

// tableResource serves a crm collection straight from a sandbox table.
type tableResource[T, In, P any] struct {
	table *services.Table[T]
}

func (r tableResource[T, In, P]) List(context.Context, string) ([]T, error) {
	return r.table.List(), nil
}

func (r tableResource[T, In, P]) Create(_ context.Context, _ string, record In) error {
	body, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = r.table.Create(body)
	return err
}

func (r tableResource[T, In, P]) Update(_ context.Context, _, id string, patch P) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	_, err = r.table.Update(id, body)
	return err
}

func (r tableResource[T, In, P]) Delete(_ context.Context, _, id string) error {
	return r.table.Delete(id)
}
