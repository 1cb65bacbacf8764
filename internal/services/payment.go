package services

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/datahuba/kyc-client/internal/api"
	"github.com/datahuba/kyc-client/internal/types"
)

// PaymentService calls the /payments endpoints
type PaymentService struct {
	client *api.Client
}

// NewPaymentService creates a payment service over the given client
func NewPaymentService(client *api.Client) *PaymentService {
	return &PaymentService{client: client}
}

// PaymentFilters narrows a payment listing
type PaymentFilters struct {
	Query     string
	Status    string
	CourseID  string
	StudentID string
}

// List returns one page of payments
func (s *PaymentService) List(page, perPage int, filters *PaymentFilters) (*types.PaginatedResponse[types.Payment], error) {
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

	var out types.PaginatedResponse[types.Payment]
	if err := s.client.Get("/payments/?"+params.Encode(), &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePaymentData is the multipart payload for registering a payment:
// the receipt file plus its transfer details.
type CreatePaymentData struct {
	EnrollmentID       string `validate:"required"`
	TransactionNumber  string `validate:"required"`
	AppliedDiscount    string
	Sender             string `validate:"required"`
	Bank               string `validate:"required"`
	ReceiptAmount      string `validate:"required"`
	ReceiptDate        string `validate:"required"`
	DestinationAccount string `validate:"required"`
}

// Create registers a payment with its receipt file
func (s *PaymentService) Create(fileName string, file io.Reader, data CreatePaymentData) (*types.Payment, error) {
	if err := validateStruct(data); err != nil {
		return nil, err
	}

	form := api.NewMultipart()
	if err := form.WriteFile("file", fileName, file); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"inscripcion_id":     data.EnrollmentID,
		"numero_transaccion": data.TransactionNumber,
		"remitente":          data.Sender,
		"banco":              data.Bank,
		"monto_comprobante":  data.ReceiptAmount,
		"fecha_comprobante":  data.ReceiptDate,
		"cuenta_destino":     data.DestinationAccount,
	}
	if data.AppliedDiscount != "" {
		fields["descuento_aplicado"] = data.AppliedDiscount
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	var out types.Payment
	if err := s.client.Post("/payments/", form, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update updates a payment
func (s *PaymentService) Update(id string, req types.UpdatePaymentRequest) (*types.Payment, error) {
	var out types.Payment
	if err := s.client.Put(fmt.Sprintf("/payments/%s", id), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a payment and returns the deleted record
func (s *PaymentService) Delete(id string) (*types.Payment, error) {
	var out types.Payment
	if err := s.client.Delete(fmt.Sprintf("/payments/%s", id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Approve marks a payment as approved
func (s *PaymentService) Approve(id string) (*types.Payment, error) {
	var out types.Payment
	if err := s.client.Put(fmt.Sprintf("/payments/%s/aprobar", id), struct{}{}, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reject marks a payment as rejected with a reason
func (s *PaymentService) Reject(id, reason string) (*types.Payment, error) {
	body := map[string]string{"motivo": reason}
	var out types.Payment
	if err := s.client.Put(fmt.Sprintf("/payments/%s/rechazar", id), body, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
