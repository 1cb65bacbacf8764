package services

import (
	"fmt"
	"io"
	"net/url"

	"github.com/datahuba/kyc-client/internal/api"
	"github.com/datahuba/kyc-client/internal/types"
)

// StudentService calls the /students endpoints
type StudentService struct {
	client *api.Client
}

// NewStudentService creates a student service over the given client
func NewStudentService(client *api.Client) *StudentService {
	return &StudentService{client: client}
}

// List returns a window of students (this endpoint uses skip/limit, not pages)
func (s *StudentService) List(skip, limit int) ([]types.Student, error) {
	var out []types.Student
	endpoint := fmt.Sprintf("/students/?skip=%d&limit=%d", skip, limit)
	if err := s.client.Get(endpoint, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one student by ID
func (s *StudentService) Get(id string) (*types.Student, error) {
	var out types.Student
	if err := s.client.Get(fmt.Sprintf("/students/%s", id), &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a student
func (s *StudentService) Create(req types.CreateStudentRequest) (*types.Student, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var out types.Student
	if err := s.client.Post("/students/", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update updates a student
func (s *StudentService) Update(id string, req types.UpdateStudentRequest) (*types.Student, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var out types.Student
	if err := s.client.Put(fmt.Sprintf("/students/%s", id), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a student and returns the deleted record
func (s *StudentService) Delete(id string) (*types.Student, error) {
	var out types.Student
	if err := s.client.Delete(fmt.Sprintf("/students/%s", id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadPhoto attaches a profile photo to a student
func (s *StudentService) UploadPhoto(id, fileName string, file io.Reader) (*types.Student, error) {
	return s.uploadFile(id, "photo", fileName, file)
}

// UploadCV attaches a CV document to a student
func (s *StudentService) UploadCV(id, fileName string, file io.Reader) (*types.Student, error) {
	return s.uploadFile(id, "cv", fileName, file)
}

// UploadCard attaches an ID-card scan to a student
func (s *StudentService) UploadCard(id, fileName string, file io.Reader) (*types.Student, error) {
	return s.uploadFile(id, "carnet", fileName, file)
}

// UploadAffiliation attaches an affiliation document to a student
func (s *StudentService) UploadAffiliation(id, fileName string, file io.Reader) (*types.Student, error) {
	return s.uploadFile(id, "afiliacion", fileName, file)
}

func (s *StudentService) uploadFile(id, kind, fileName string, file io.Reader) (*types.Student, error) {
	form := api.NewMultipart()
	if err := form.WriteFile("file", fileName, file); err != nil {
		return nil, err
	}
	var out types.Student
	endpoint := fmt.Sprintf("/students/%s/upload/%s", id, kind)
	if err := s.client.Post(endpoint, form, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DegreeData describes the degree certificate accompanying an upload.
// Field names on the wire stay as the backend expects them.
type DegreeData struct {
	Title        string
	DegreeNumber string
	IssueYear    string
	University   string
}

// UploadDegree attaches a degree certificate plus its metadata
func (s *StudentService) UploadDegree(id, fileName string, file io.Reader, data DegreeData) (*types.Student, error) {
	form := api.NewMultipart()
	if err := form.WriteFile("file", fileName, file); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"titulo":         data.Title,
		"numero_titulo":  data.DegreeNumber,
		"año_expedicion": data.IssueYear,
		"universidad":    data.University,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	var out types.Student
	endpoint := fmt.Sprintf("/students/%s/upload/titulo", id)
	if err := s.client.Post(endpoint, form, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyDegree marks a student's degree as verified. The endpoint takes
// url-encoded form fields, only the provided ones are sent.
func (s *StudentService) VerifyDegree(id string, data DegreeData) (*types.Student, error) {
	params := url.Values{}
	if data.Title != "" {
		params.Set("titulo", data.Title)
	}
	if data.DegreeNumber != "" {
		params.Set("numero_titulo", data.DegreeNumber)
	}
	if data.IssueYear != "" {
		params.Set("año_expedicion", data.IssueYear)
	}
	if data.University != "" {
		params.Set("universidad", data.University)
	}

	var out types.Student
	endpoint := fmt.Sprintf("/students/%s/titulo/verificar", id)
	if err := s.client.Put(endpoint, params, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectDegree rejects a student's degree with a reason
func (s *StudentService) RejectDegree(id, reason string) (*types.Student, error) {
	params := url.Values{}
	params.Set("motivo", reason)

	var out types.Student
	endpoint := fmt.Sprintf("/students/%s/titulo/rechazar", id)
	if err := s.client.Put(endpoint, params, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes the password of the logged-in student
func (s *StudentService) ChangePassword(req types.ChangePasswordRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	return s.client.Post("/students/me/change-password", req, nil, nil)
}
