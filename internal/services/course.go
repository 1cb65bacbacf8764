package services

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/datahuba/kyc-client/internal/api"
	"github.com/datahuba/kyc-client/internal/types"
)

// CourseService calls the /courses endpoints
type CourseService struct {
	client *api.Client
}

// NewCourseService creates a course service over the given client
func NewCourseService(client *api.Client) *CourseService {
	return &CourseService{client: client}
}

// CourseFilters narrows a course listing
type CourseFilters struct {
	Query      string
	Active     *bool
	CourseType string
	Modality   string
}

// List returns one page of courses
func (s *CourseService) List(page, perPage int, filters *CourseFilters) (*types.PaginatedResponse[types.Course], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	if filters != nil {
		if filters.Query != "" {
			params.Set("q", filters.Query)
		}
		if filters.Active != nil {
			params.Set("activo", strconv.FormatBool(*filters.Active))
		}
		if filters.CourseType != "" {
			params.Set("tipo_curso", filters.CourseType)
		}
		if filters.Modality != "" {
			params.Set("modalidad", filters.Modality)
		}
	}

	var out types.PaginatedResponse[types.Course]
	if err := s.client.Get("/courses/?"+params.Encode(), &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a course
func (s *CourseService) Create(req types.CreateCourseRequest) (*types.Course, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var out types.Course
	if err := s.client.Post("/courses/", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update updates a course
func (s *CourseService) Update(id string, req types.UpdateCourseRequest) (*types.Course, error) {
	var out types.Course
	if err := s.client.Put(fmt.Sprintf("/courses/%s", id), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a course and returns the deleted record
func (s *CourseService) Delete(id string) (*types.Course, error) {
	var out types.Course
	if err := s.client.Delete(fmt.Sprintf("/courses/%s", id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Students returns the enrolled-student roster of a course
func (s *CourseService) Students(id string) ([]types.CourseStudent, error) {
	var out []types.CourseStudent
	if err := s.client.Get(fmt.Sprintf("/courses/%s/students", id), &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}
