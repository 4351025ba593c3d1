package cmd

import (
	"fmt"
	"net/http"

	"github.com/EO-DataHub/eodhp-crm-console/api/handlers"
	"github.com/EO-DataHub/eodhp-crm-console/api/services"
	"github.com/EO-DataHub/eodhp-crm-console/internal/appconfig"
	"github.com/EO-DataHub/eodhp-crm-console/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	host string
	port int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an in-memory CRM API for local development",
	Run: func(cmd *cobra.Command, args []string) {

		backend, err := newSandbox(appCfg.Sandbox)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize sandbox backend")
		}

		r := handlers.NewRouter(backend)

		if cmd.Flags().Changed("host") {
			appCfg.Sandbox.Host = host
		}
		if cmd.Flags().Changed("port") {
			appCfg.Sandbox.Port = port
		}
		addr := fmt.Sprintf("%s:%d", appCfg.Sandbox.Host, appCfg.Sandbox.Port)

		log.Info().Msg(fmt.Sprintf("Server started at %s", addr))

		if err := http.ListenAndServe(addr, r); err != nil {
			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}

// newSandbox creates the backend and registers the configured users. A
// random signing secret is used when none is configured, so tokens do not
// survive a restart.
func newSandbox(cfg appconfig.SandboxConfig) (*services.Backend, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("sandbox.jwtSecret not set, using a random secret")
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = appconfig.Default().Sandbox.TokenTTL
	}

	backend := services.NewBackend([]byte(secret), ttl)
	for _, u := range cfg.Users {
		user, err := backend.Users.Add(models.User{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			Role:        models.Role(u.Role),
			Permissions: u.Permissions,
		}, u.Password)
		if err != nil {
			return nil, fmt.Errorf("sandbox user %s: %w", u.Email, err)
		}
		log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("Sandbox user registered")
	}
	return backend, nil
}
