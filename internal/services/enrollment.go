package services

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/datahuba/kyc-client/internal/api"
	"github.com/datahuba/kyc-client/internal/types"
)

// EnrollmentService calls the /enrollments endpoints
type EnrollmentService struct {
	client *api.Client
}

// NewEnrollmentService creates an enrollment service over the given client
func NewEnrollmentService(client *api.Client) *EnrollmentService {
	return &EnrollmentService{client: client}
}

// EnrollmentFilters narrows an enrollment listing
type EnrollmentFilters struct {
	Query     string
	Status    string
	CourseID  string
	StudentID string
}

// List returns one page of enrollments
func (s *EnrollmentService) List(page, perPage int, filters *EnrollmentFilters) (*types.PaginatedResponse[types.Enrollment], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	if filters != nil {
		if filters.Query != "" {
			params.Set("q", filters.Query)
		}
		if filters.Status != "" {
			params.Set("estado", filters.Status)
		}
		if filters.CourseID != "" {
			params.Set("curso_id", filters.CourseID)
		}
		if filters.StudentID != "" {
			params.Set("estudiante_id", filters.StudentID)
		}
	}

	var out types.PaginatedResponse[types.Enrollment]
	if err := s.client.Get("/enrollments/?"+params.Encode(), &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create enrolls a student in a course
func (s *EnrollmentService) Create(req types.CreateEnrollmentRequest) (*types.Enrollment, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var out types.Enrollment
	if err := s.client.Post("/enrollments/", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update updates an enrollment
func (s *EnrollmentService) Update(id string, req types.UpdateEnrollmentRequest) (*types.Enrollment, error) {
	var out types.Enrollment
	if err := s.client.Put(fmt.Sprintf("/enrollments/%s", id), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an enrollment and returns the deleted record
func (s *EnrollmentService) Delete(id string) (*types.Enrollment, error) {
	var out types.Enrollment
	if err := s.client.Delete(fmt.Sprintf("/enrollments/%s", id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByStudent returns all enrollments of one student
func (s *EnrollmentService) ByStudent(studentID string) ([]types.Enrollment, error) {
	var out []types.Enrollment
	if err := s.client.Get(fmt.Sprintf("/enrollments/student/%s", studentID), &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// ByCourse returns all enrollments of one course
func (s *EnrollmentService) ByCourse(courseID string) ([]types.Enrollment, error) {
	var out []types.Enrollment
	if err := s.client.Get(fmt.Sprintf("/enrollments/course/%s", courseID), &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}
