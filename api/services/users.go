package services

import (
	"crypto/subtle"
	"strings"
	"sync"

	"github.com/EO-DataHub/eodhp-crm-console/internal/authn"
	"github.com/EO-DataHub/eodhp-crm-console/models"
	"github.com/google/uuid"
)

type account struct {
	user     models.User
	password string
}

// Users holds the sandbox user accounts.
type Users struct {
	mu      sync.RWMutex
	byID    map[string]*account
	byEmail map[string]*account
}

func NewUsers() *Users {
	return &Users{
		byID:    make(map[string]*account),
		byEmail: make(map[string]*account),
	}
}

// Add registers a user. An empty ID is replaced with a generated one.
func (u *Users) Add(user models.User, password string) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if !user.Role.Valid() {
		return user, &ValidationError{Field: "role", Message: "must be admin, manager or sales_rep"}
	}
	if user.Permissions == nil {
		user.Permissions = []string{}
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	email := normalizeEmail(user.Email)
	if _, ok := u.byEmail[email]; ok {
		return user, ErrEmailTaken
	}

	acc := &account{user: user, password: password}
	u.byID[user.ID] = acc
	u.byEmail[email] = acc
	return user, nil
}

// Get returns the user with the given ID.
func (u *Users) Get(id string) (models.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	acc, ok := u.byID[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return acc.user, nil
}

// Authenticate checks the credentials and returns the matching user.
func (u *Users) Authenticate(email, password string) (models.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	acc, ok := u.byEmail[normalizeEmail(email)]
	if !ok || subtle.ConstantTimeCompare([]byte(acc.password), []byte(password)) != 1 {
		return models.User{}, ErrInvalidCredentials
	}
	return acc.user, nil
}

// UpdateProfile applies the set fields of update. Role and ID cannot be
// changed through a profile update.
func (u *Users) UpdateProfile(id string, update models.ProfileUpdate) (models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	acc, ok := u.byID[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	user := acc.user

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Avatar != nil {
		user.Avatar = update.Avatar
	}
	if update.Permissions != nil {
		user.Permissions = append([]string{}, (*update.Permissions)...)
	}
	if update.Email != nil && normalizeEmail(*update.Email) != normalizeEmail(user.Email) {
		email := normalizeEmail(*update.Email)
		if email == "" {
			return acc.user, &ValidationError{Field: "email", Message: "is required"}
		}
		if _, taken := u.byEmail[email]; taken {
			return acc.user, ErrEmailTaken
		}
		delete(u.byEmail, normalizeEmail(user.Email))
		user.Email = *update.Email
		u.byEmail[email] = acc
	}

	acc.user = user
	return user, nil
}

// Login authenticates the credentials and issues a bearer token.
func (b *Backend) Login(creds models.Credentials) (*models.LoginResponse, error) {
	user, err := b.Users.Authenticate(creds.Email, creds.Password)
	if err != nil {
		return nil, err
	}

	token, err := authn.IssueToken(user, b.Secret, b.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
