// Package leads accepts shopper requests to be contacted by a dealer and
// hands them to the downstream dealer systems.
package leads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/couchcryptid/dealer-locator-service/internal/domain"
	"github.com/couchcryptid/dealer-locator-service/internal/observability"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const confirmationMessage = "Thank you. A local dealer will contact you within 24-48 hours using your preferred contact method."

// Request is the lead submission input.
type Request struct {
	VehicleIDs  []string       `json:"vehicle_ids" validate:"required,min=1,max=10,dive,required,max=100"`
	EstimateID  string         `json:"estimate_id,omitempty" validate:"max=100"`
	ContactInfo ContactRequest `json:"contact_info"`
	PostalCode  string         `json:"postal_code"`
	Message     string         `json:"message,omitempty" validate:"max=1000"`
	Consent     bool           `json:"consent"`
}

// ContactRequest is how the shopper wants to be reached.
type ContactRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email,max=254"`
	Phone            string `json:"phone,omitempty" validate:"omitempty,len=10,number"`
	PreferredContact string `json:"preferred_contact" validate:"required,oneof=email phone"`
}

// Receipt confirms an accepted lead.
type Receipt struct {
	LeadID              string    `json:"lead_id"`
	SubmittedAt         time.Time `json:"submitted_at"`
	ConfirmationMessage string    `json:"confirmation_message"`
}

// Service validates and publishes dealer leads.
type Service struct {
	publisher domain.LeadPublisher
	validate  *validator.Validate
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewService creates a lead service that publishes through p.
func NewService(p domain.LeadPublisher, metrics *observability.Metrics, logger *slog.Logger) *Service {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	return &Service{
		publisher: p,
		validate:  validate,
		metrics:   metrics,
		logger:    logger,
	}
}

// Submit validates req, assigns an ID and timestamp, and publishes the lead.
func (s *Service) Submit(ctx context.Context, req Request) (Receipt, error) {
	if err := s.check(req); err != nil {
		s.metrics.LeadsSubmitted.WithLabelValues("rejected").Inc()
		return Receipt{}, err
	}

	// check has already rejected numbers that do not normalize.
	phone, _ := normalizePhone(req.ContactInfo.Phone)

	lead := domain.Lead{
		ID:         uuid.NewString(),
		VehicleIDs: req.VehicleIDs,
		EstimateID: strings.TrimSpace(req.EstimateID),
		ContactInfo: domain.ContactInfo{
			Name:             strings.TrimSpace(req.ContactInfo.Name),
			Email:            strings.ToLower(strings.TrimSpace(req.ContactInfo.Email)),
			Phone:            phone,
			PreferredContact: req.ContactInfo.PreferredContact,
		},
		PostalCode:  req.PostalCode,
		Message:     strings.TrimSpace(req.Message),
		Status:      domain.LeadStatusNew,
		SubmittedAt: domain.Now(),
	}

	if err := s.publisher.PublishLead(ctx, lead); err != nil {
		s.metrics.LeadsSubmitted.WithLabelValues("error").Inc()
		return Receipt{}, fmt.Errorf("publish lead: %w", err)
	}

	s.metrics.LeadsSubmitted.WithLabelValues("published").Inc()
	s.logger.Info("lead submitted", "lead_id", lead.ID, "postal_code", lead.PostalCode, "vehicles", len(lead.VehicleIDs))

	return Receipt{
		LeadID:              lead.ID,
		SubmittedAt:         lead.SubmittedAt,
		ConfirmationMessage: confirmationMessage,
	}, nil
}

func (s *Service) check(req Request) error {
	if !req.Consent {
		return &domain.ValidationError{Field: "consent", Message: "explicit consent is required to submit a dealer lead"}
	}
	if err := domain.ValidatePostalCode(req.PostalCode); err != nil {
		return err
	}
	if req.ContactInfo.PreferredContact == "phone" && req.ContactInfo.Phone == "" {
		return &domain.ValidationError{Field: "phone", Message: "phone is required when phone is the preferred contact"}
	}
	if err := s.validate.Struct(req); err != nil {
		return toValidationError(err)
	}
	if _, ok := normalizePhone(req.ContactInfo.Phone); !ok {
		return &domain.ValidationError{Field: "contact_info.phone", Message: "phone must be a valid US number"}
	}
	return nil
}

// toValidationError reports the first failing field.
func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &domain.ValidationError{Field: "request", Message: "invalid lead request"}
	}
	fe := fieldErrs[0]
	field := fieldName(fe.Namespace())
	return &domain.ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s failed %q validation", field, fe.Tag()),
	}
}

// fieldName drops the root struct from a validator namespace, turning
// "Request.contact_info.email" into "contact_info.email".
func fieldName(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// jsonTagName names fields by their json tag so errors match the wire format.
func jsonTagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
