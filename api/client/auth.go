package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/EO-DataHub/eodhp-crm-console/models"
)

const (
	loginPath    = "/api/auth/login"
	validatePath = "/api/auth/me"
	profilePath  = "/api/auth/profile"
)

// AuthAPI covers the authentication endpoints of the CRM API.
type AuthAPI struct {
	*Client
}

func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{Client: c}
}

// Login exchanges credentials for a user record and a bearer token.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	respBody, _, err := a.makeRequest(ctx, http.MethodPost, loginPath, "",
		models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := decode[models.LoginResponse](respBody)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login response did not include a token")
	}

	return &resp, nil
}

// ValidateToken returns the user the token belongs to.
func (a *AuthAPI) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	respBody, _, err := a.makeRequest(ctx, http.MethodGet, validatePath, token, nil)
	if err != nil {
		return nil, err
	}

	user, err := decode[models.User](respBody)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile sends a partial user record and returns the full updated user.
func (a *AuthAPI) UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error) {
	respBody, _, err := a.makeRequest(ctx, http.MethodPut, profilePath, token, update)
	if err != nil {
		return nil, err
	}

	user, err := decode[models.User](respBody)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
