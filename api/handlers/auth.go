package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EO-DataHub/eodhp-crm-console/api/middleware"
	"github.com/EO-DataHub/eodhp-crm-console/api/services"
	"github.com/EO-DataHub/eodhp-crm-console/models"
	"github.com/rs/zerolog"
)

// Login exchanges credentials for a user record and a bearer token.
func Login(b *services.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		var creds models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			logger.Warn().Err(err).Msg("Invalid login payload")
			services.HandleErrResponse(w, http.StatusBadRequest, errors.New("invalid request payload"))
			return
		}

		resp, err := b.Login(creds)
		if err != nil {
			logger.Info().Str("email", creds.Email).Err(err).Msg("Login failed")
			services.HandleErrResponse(w, services.StatusFor(err), err)
			return
		}

		logger.Info().Str("user_id", resp.User.ID).Msg("User logged in")
		services.WriteResponse(w, http.StatusOK, resp)
	}
}

// Me returns the user the bearer token belongs to.
func Me(b *services.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFrom(r.Context())
		if !ok {
			services.HandleErrResponse(w, http.StatusUnauthorized, errors.New("unauthorized: invalid claims"))
			return
		}

		user, err := b.Users.Get(claims.Subject)
		if err != nil {
			// the token outlived its user
			services.HandleErrResponse(w, http.StatusUnauthorized, errors.New("unknown user"))
			return
		}

		services.WriteResponse(w, http.StatusOK, user)
	}
}

// UpdateProfile applies a partial update to the token owner's profile.
func UpdateProfile(b *services.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		claims, ok := middleware.ClaimsFrom(r.Context())
		if !ok {
			services.HandleErrResponse(w, http.StatusUnauthorized, errors.New("unauthorized: invalid claims"))
			return
		}

		var update models.ProfileUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			logger.Warn().Err(err).Msg("Invalid profile payload")
			services.HandleErrResponse(w, http.StatusBadRequest, errors.New("invalid request payload"))
			return
		}

		user, err := b.Users.UpdateProfile(claims.Subject, update)
		if err != nil {
			logger.Warn().Err(err).Str("user_id", claims.Subject).Msg("Profile update failed")
			services.HandleErrResponse(w, services.StatusFor(err), err)
			return
		}

		services.WriteResponse(w, http.StatusOK, user)
	}
}
