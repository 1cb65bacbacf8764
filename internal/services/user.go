package services

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/datahuba/kyc-client/internal/api"
	"github.com/datahuba/kyc-client/internal/types"
)

// UserService calls the /users endpoints
type UserService struct {
	client *api.Client
}

// NewUserService creates a user service over the given client
func NewUserService(client *api.Client) *UserService {
	return &UserService{client: client}
}

// List returns one page of backend users
func (s *UserService) List(page, perPage int) (*types.PaginatedResponse[types.User], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var out types.PaginatedResponse[types.User]
	if err := s.client.Get("/users/?"+params.Encode(), &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one backend user by ID
func (s *UserService) Get(id string) (*types.User, error) {
	var out types.User
	if err := s.client.Get(fmt.Sprintf("/users/%s", id), &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a backend user
func (s *UserService) Create(req types.CreateUserRequest) (*types.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var out types.User
	if err := s.client.Post("/users/", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update updates a backend user
func (s *UserService) Update(id string, req types.UpdateUserRequest) (*types.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var out types.User
	if err := s.client.Put(fmt.Sprintf("/users/%s", id), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a backend user and returns the deleted record
func (s *UserService) Delete(id string) (*types.User, error) {
	var out types.User
	if err := s.client.Delete(fmt.Sprintf("/users/%s", id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
