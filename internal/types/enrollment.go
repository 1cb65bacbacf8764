package types

// Enrollment ties a student to a course with its financial breakdown
type Enrollment struct {
	ID                    string  `json:"_id"`
	Installments          int     `json:"cantidad_cuotas"`
	TuitionCost           float64 `json:"costo_matricula"`
	TotalCost             float64 `json:"costo_total"`
	CreatedAt             string  `json:"created_at"`
	CourseID              string  `json:"curso_id"`
	AppliedCourseDiscount float64 `json:"descuento_curso_aplicado"`
	CustomDiscount        float64 `json:"descuento_personalizado"`
	IsInternal            string  `json:"es_estudiante_interno"`
	Status                string  `json:"estado"`
	StudentID             string  `json:"estudiante_id"`
	EnrolledAt            string  `json:"fecha_inscripcion"`
	PendingBalance        float64 `json:"saldo_pendiente"`
	TotalDue              float64 `json:"total_a_pagar"`
	TotalPaid             float64 `json:"total_pagado"`
	UpdatedAt             string  `json:"updated_at"`
	FormURL               string  `json:"formulario_inscripcion_url,omitempty"`
}

// CreateEnrollmentRequest is the payload for enrolling a student
type CreateEnrollmentRequest struct {
	StudentID      string  `json:"estudiante_id" validate:"required"`
	CourseID       string  `json:"curso_id" validate:"required"`
	CustomDiscount float64 `json:"descuento_personalizado"`
}

// UpdateEnrollmentRequest is the partial-update payload for an enrollment
type UpdateEnrollmentRequest struct {
	Status         *string  `json:"estado,omitempty"`
	FormURL        *string  `json:"formulario_inscripcion_url,omitempty"`
	CustomDiscount *float64 `json:"descuento_personalizado,omitempty"`
	TotalDue       *float64 `json:"total_a_pagar,omitempty"`
	TotalPaid      *float64 `json:"total_pagado,omitempty"`
	PendingBalance *float64 `json:"saldo_pendiente,omitempty"`
}
