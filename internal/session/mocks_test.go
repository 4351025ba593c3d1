package session

import (
	"context"

	"github.com/EO-DataHub/eodhp-crm-console/models"
	"github.com/stretchr/testify/mock"
)

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	args := m.Called(email, password)
	resp, _ := args.Get(0).(*models.LoginResponse)
	return resp, args.Error(1)
}

func (m *MockAuthAPI) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthAPI) UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error) {
	args := m.Called(token, update)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
