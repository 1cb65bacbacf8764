package types

// Course is a program/course record
type Course struct {
	ID                string   `json:"_id"`
	Active            bool     `json:"activo"`
	Installments      int      `json:"cantidad_cuotas"`
	Code              string   `json:"codigo"`
	ExternalTotalCost float64  `json:"costo_total_externo"`
	InternalTotalCost float64  `json:"costo_total_interno"`
	CreatedAt         string   `json:"created_at"`
	CourseDiscount    float64  `json:"descuento_curso"`
	EndDate           string   `json:"fecha_fin"`
	StartDate         string   `json:"fecha_inicio"`
	EnrolledIDs       []string `json:"inscritos"`
	ExternalTuition   float64  `json:"matricula_externo"`
	InternalTuition   float64  `json:"matricula_interno"`
	Modality          string   `json:"modalidad"`
	ProgramName       string   `json:"nombre_programa"`
	Notes             string   `json:"observacion"`
	CourseType        string   `json:"tipo_curso"`
	UpdatedAt         string   `json:"updated_at"`
}

// CreateCourseRequest is the payload for creating a course
type CreateCourseRequest struct {
	Code              string  `json:"codigo" validate:"required"`
	ProgramName       string  `json:"nombre_programa" validate:"required"`
	CourseType        string  `json:"tipo_curso" validate:"required"`
	Modality          string  `json:"modalidad" validate:"required"`
	InternalTotalCost float64 `json:"costo_total_interno"`
	InternalTuition   float64 `json:"matricula_interno"`
	ExternalTotalCost float64 `json:"costo_total_externo"`
	ExternalTuition   float64 `json:"matricula_externo"`
	Installments      int     `json:"cantidad_cuotas"`
	CourseDiscount    float64 `json:"descuento_curso"`
	Notes             string  `json:"observacion,omitempty"`
	StartDate         string  `json:"fecha_inicio" validate:"required"`
	EndDate           string  `json:"fecha_fin" validate:"required"`
	Active            bool    `json:"activo"`
}

// UpdateCourseRequest is the partial-update payload for a course
type UpdateCourseRequest struct {
	Code              *string  `json:"codigo,omitempty"`
	ProgramName       *string  `json:"nombre_programa,omitempty"`
	CourseType        *string  `json:"tipo_curso,omitempty"`
	Modality          *string  `json:"modalidad,omitempty"`
	InternalTotalCost *float64 `json:"costo_total_interno,omitempty"`
	InternalTuition   *float64 `json:"matricula_interno,omitempty"`
	ExternalTotalCost *float64 `json:"costo_total_externo,omitempty"`
	ExternalTuition   *float64 `json:"matricula_externo,omitempty"`
	Installments      *int     `json:"cantidad_cuotas,omitempty"`
	CourseDiscount    *float64 `json:"descuento_curso,omitempty"`
	Notes             *string  `json:"observacion,omitempty"`
	StartDate         *string  `json:"fecha_inicio,omitempty"`
	EndDate           *string  `json:"fecha_fin,omitempty"`
	Active            *bool    `json:"activo,omitempty"`
	EnrolledIDs       []string `json:"inscritos,omitempty"`
}

// CourseStudent is the per-course roster entry returned by /courses/{id}/students
type CourseStudent struct {
	StudentID string `json:"estudiante_id"`
	Name      string `json:"nombre"`
	CardID    string `json:"carnet"`
	Contact   struct {
		Email string `json:"email"`
		Phone string `json:"celular"`
	} `json:"contacto"`
	Enrollment struct {
		ID          string `json:"id"`
		EnrolledAt  string `json:"fecha_inscripcion"`
		Status      string `json:"estado"`
		StudentType string `json:"tipo_estudiante"`
	} `json:"inscripcion"`
	Financial struct {
		TotalDue        float64 `json:"total_a_pagar"`
		TotalPaid       float64 `json:"total_pagado"`
		PendingBalance  float64 `json:"saldo_pendiente"`
		PaymentProgress float64 `json:"avance_pago"`
	} `json:"financiero"`
}
