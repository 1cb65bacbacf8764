package services

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/datahuba/kyc-client/internal/api"
	"github.com/datahuba/kyc-client/internal/types"
)

// DiscountService calls the /discounts endpoints
type DiscountService struct {
	client *api.Client
}

// NewDiscountService creates a discount service over the given client
func NewDiscountService(client *api.Client) *DiscountService {
	return &DiscountService{client: client}
}

// List returns one page of discounts
func (s *DiscountService) List(page, perPage int) (*types.PaginatedResponse[types.Discount], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var out types.PaginatedResponse[types.Discount]
	if err := s.client.Get("/discounts/?"+params.Encode(), &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a discount
func (s *DiscountService) Create(req types.CreateDiscountRequest) (*types.Discount, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var out types.Discount
	if err := s.client.Post("/discounts/", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update updates a discount
func (s *DiscountService) Update(id string, req types.UpdateDiscountRequest) (*types.Discount, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var out types.Discount
	if err := s.client.Put(fmt.Sprintf("/discounts/%s", id), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a discount and returns the deleted record
func (s *DiscountService) Delete(id string) (*types.Discount, error) {
	var out types.Discount
	if err := s.client.Delete(fmt.Sprintf("/discounts/%s", id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddStudent adds a student to a discount's membership list
func (s *DiscountService) AddStudent(discountID, studentID string) (*types.Discount, error) {
	var out types.Discount
	endpoint := fmt.Sprintf("/discounts/%s/students/%s", discountID, studentID)
	if err := s.client.Post(endpoint, struct{}{}, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveStudent removes a student from a discount's membership list
func (s *DiscountService) RemoveStudent(discountID, studentID string) (*types.Discount, error) {
	var out types.Discount
	endpoint := fmt.Sprintf("/discounts/%s/students/%s", discountID, studentID)
	if err := s.client.Delete(endpoint, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
