package types

// Student is a student record
type Student struct {
	ID               string   `json:"_id"`
	Active           bool     `json:"activo"`
	Career           string   `json:"carrera"`
	Phone            string   `json:"celular"`
	CreatedAt        string   `json:"created_at"`
	Address          string   `json:"domicilio"`
	Email            string   `json:"email"`
	IsInternal       string   `json:"es_estudiante_interno"`
	Extension        string   `json:"extension"`
	BirthDate        string   `json:"fecha_nacimiento"`
	RegisteredAt     string   `json:"fecha_registro"`
	PhotoURL         string   `json:"foto_url"`
	CourseIDs        []string `json:"lista_cursos_ids"`
	DegreeIDs        []string `json:"lista_titulos_ids"`
	Name             string   `json:"nombre"`
	RegistrationCode string   `json:"registro"`
	UpdatedAt        string   `json:"updated_at"`
}

// CreateStudentRequest is the payload for registering a student
type CreateStudentRequest struct {
	RegistrationCode string `json:"registro" validate:"required"`
	Password         string `json:"password,omitempty"`
	Name             string `json:"nombre" validate:"required"`
	Extension        string `json:"extension"`
	BirthDate        string `json:"fecha_nacimiento" validate:"required"`
	PhotoURL         string `json:"foto_url,omitempty"`
	Phone            string `json:"celular"`
	Email            string `json:"email" validate:"required,email"`
	Address          string `json:"domicilio"`
	Career           string `json:"carrera"`
	IsInternal       string `json:"es_estudiante_interno"`
}

// UpdateStudentRequest is the partial-update payload for a student
type UpdateStudentRequest struct {
	RegistrationCode *string  `json:"registro,omitempty"`
	Password         *string  `json:"password,omitempty"`
	Name             *string  `json:"nombre,omitempty"`
	Extension        *string  `json:"extension,omitempty"`
	BirthDate        *string  `json:"fecha_nacimiento,omitempty"`
	PhotoURL         *string  `json:"foto_url,omitempty"`
	Phone            *string  `json:"celular,omitempty"`
	Email            *string  `json:"email,omitempty" validate:"omitempty,email"`
	Address          *string  `json:"domicilio,omitempty"`
	Career           *string  `json:"carrera,omitempty"`
	IsInternal       *string  `json:"es_estudiante_interno,omitempty"`
	CourseIDs        []string `json:"lista_cursos_ids,omitempty"`
	DegreeIDs        []string `json:"lista_titulos_ids,omitempty"`
	Active           *bool    `json:"activo,omitempty"`
}

// ChangePasswordRequest is the self-service password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
