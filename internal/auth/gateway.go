// Package auth is the gateway to the backend's authentication endpoints.
// It exists as a named seam between the session store and the request
// pipeline; no logic beyond path selection and payload validation lives here.
package auth

import (
	"github.com/go-playground/validator/v10"

	"github.com/datahuba/kyc-client/internal/api"
	"github.com/datahuba/kyc-client/internal/types"
)

// Credentials is the login payload for both login flows
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the token envelope returned by the login endpoints
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserType    string `json:"user_type"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}

// Gateway wraps the three auth operations of the backend
type Gateway struct {
	client   *api.Client
	validate *validator.Validate
}

// NewGateway creates a gateway over the given pipeline client
func NewGateway(client *api.Client) *Gateway {
	return &Gateway{
		client:   client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// LoginAdmin authenticates administrative staff
func (g *Gateway) LoginAdmin(creds Credentials) (*LoginResponse, error) {
	return g.login("/auth/login", creds)
}

// LoginStudent authenticates students
func (g *Gateway) LoginStudent(creds Credentials) (*LoginResponse, error) {
	return g.login("/auth/login/student", creds)
}

func (g *Gateway) login(endpoint string, creds Credentials) (*LoginResponse, error) {
	if err := g.validate.Struct(creds); err != nil {
		return nil, &api.AppError{
			Message: "username and password are required",
			Kind:    api.KindValidation,
			Cause:   err,
		}
	}
	var resp LoginResponse
	if err := g.client.PostPublic(endpoint, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the identity record behind the stored token
func (g *Gateway) Me() (*types.User, error) {
	var user types.User
	opts := &api.RequestOptions{RequireAuth: api.Bool(true)}
	if err := g.client.Get("/auth/me", &user, opts); err != nil {
		return nil, err
	}
	return &user, nil
}
