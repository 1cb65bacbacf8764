package types

// Payment is a payment receipt record
type Payment struct {
	ID                string  `json:"_id"`
	Amount            float64 `json:"cantidad_pago"`
	ReceiptURL        string  `json:"comprobante_url"`
	Concept           string  `json:"concepto"`
	CreatedAt         string  `json:"created_at"`
	CourseID          string  `json:"curso_id"`
	Status            string  `json:"estado_pago"`
	StudentID         string  `json:"estudiante_id"`
	UploadedAt        string  `json:"fecha_subida"`
	EnrollmentID      string  `json:"inscripcion_id"`
	TransactionNumber string  `json:"numero_transaccion"`
	UpdatedAt         string  `json:"updated_at"`

	// Optional fields added later; older payments omit them
	Bank               string  `json:"banco,omitempty"`
	Sender             string  `json:"remitente,omitempty"`
	DestinationAccount string  `json:"cuenta_destino,omitempty"`
	ReceiptAmount      float64 `json:"monto_comprobante,omitempty"`
	ReceiptDate        string  `json:"fecha_comprobante,omitempty"`
}

// UpdatePaymentRequest is the partial-update payload for a payment
type UpdatePaymentRequest struct {
	EnrollmentID       *string  `json:"inscripcion_id,omitempty"`
	TransactionNumber  *string  `json:"numero_transaccion,omitempty"`
	AppliedDiscount    *float64 `json:"descuento_aplicado,omitempty"`
	Sender             *string  `json:"remitente,omitempty"`
	Bank               *string  `json:"banco,omitempty"`
	ReceiptAmount      *float64 `json:"monto_comprobante,omitempty"`
	ReceiptDate        *string  `json:"fecha_comprobante,omitempty"`
	DestinationAccount *string  `json:"cuenta_destino,omitempty"`
	Status             *string  `json:"estado_pago,omitempty"`
	PaidAt             *string  `json:"fecha_pagada,omitempty"`
}
