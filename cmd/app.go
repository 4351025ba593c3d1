package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/EO-DataHub/eodhp-crm-console/api/client"
	"github.com/EO-DataHub/eodhp-crm-console/internal/appconfig"
	"github.com/EO-DataHub/eodhp-crm-console/internal/crm"
	"github.com/EO-DataHub/eodhp-crm-console/internal/session"
	"github.com/EO-DataHub/eodhp-crm-console/internal/tokenstore"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

var errNotLoggedIn = errors.New("not logged in, run `crm-console login` first")

// app wires the session and CRM stores for one command invocation.
type app struct {
	session *session.Store
	crm     *crm.Store
	close   func()
}

func newApp(cfg *appconfig.Config) (*app, error) {
	storage, closeStorage, err := newStorage(cfg.Storage)
	if err != nil {
		return nil, err
	}

	c := client.NewClient(cfg.API.BaseURL, cfg.API.Timeout)

	sess, err := session.New(client.NewAuthAPI(c), storage,
		session.WithLogger(&log.Logger), session.WithTokenKey(cfg.Storage.TokenKey))
	if err != nil {
		closeStorage()
		return nil, err
	}

	store, err := crm.New(crm.NewResources(c), sess, &log.Logger)
	if err != nil {
		closeStorage()
		return nil, err
	}

	return &app{session: sess, crm: store, close: closeStorage}, nil
}

// newStorage opens the configured token storage and returns a function
// releasing it.
func newStorage(cfg appconfig.StorageConfig) (tokenstore.Storage, func(), error) {
	switch cfg.Driver {
	case appconfig.DriverMemory:
		return tokenstore.NewMemory(), func() {}, nil
	case appconfig.DriverRedis:
		conn := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closeConn := func() {
			if err := conn.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close redis connection")
			}
		}
		return tokenstore.NewRedis(conn, cfg.Redis.Prefix, cfg.Redis.TTL), closeConn, nil
	case appconfig.DriverFile, "":
		path := cfg.Path
		if path == "" {
			var err error
			if path, err = tokenstore.DefaultFilePath(); err != nil {
				return nil, nil, err
			}
		}
		return tokenstore.NewFile(path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// authenticated bootstraps the session and fails unless a user is signed in.
func (a *app) authenticated(ctx context.Context) error {
	a.session.Bootstrap(ctx)
	if a.session.State().Status() != session.StatusAuthenticated {
		return errNotLoggedIn
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// decodeInput reads a JSON record from the --data flag, or stdin when the
// flag is "-".
func decodeInput(data string, stdin io.Reader, v any) error {
	raw := []byte(data)
	if data == "-" {
		var err error
		if raw, err = io.ReadAll(stdin); err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}
	if len(raw) == 0 {
		return errors.New("--data is required")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid --data: %w", err)
	}
	return nil
}
