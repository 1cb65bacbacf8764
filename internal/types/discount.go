package types

// Discount is a named discount with its student membership list
type Discount struct {
	ID         string   `json:"_id"`
	Active     bool     `json:"activo"`
	CreatedAt  string   `json:"created_at"`
	StudentIDs []string `json:"lista_estudiantes"`
	Name       string   `json:"nombre"`
	Percentage float64  `json:"porcentaje"`
	UpdatedAt  string   `json:"updated_at"`
}

// CreateDiscountRequest is the payload for creating a discount
type CreateDiscountRequest struct {
	Active     bool     `json:"activo"`
	StudentIDs []string `json:"lista_estudiantes"`
	Name       string   `json:"nombre" validate:"required"`
	Percentage float64  `json:"porcentaje" validate:"gte=0,lte=100"`
}

// UpdateDiscountRequest is the partial-update payload for a discount
type UpdateDiscountRequest struct {
	Active     *bool    `json:"activo,omitempty"`
	StudentIDs []string `json:"lista_estudiantes,omitempty"`
	Name       *string  `json:"nombre,omitempty"`
	Percentage *float64 `json:"porcentaje,omitempty" validate:"omitempty,gte=0,lte=100"`
}
