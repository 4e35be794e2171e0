package leads

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/dealer-locator-service/internal/domain"
)

// LogPublisher records leads in the log instead of forwarding them.
// It is used when no message broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher that writes each lead to logger.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishLead(_ context.Context, lead domain.Lead) error {
	p.logger.Info("lead not forwarded, no broker configured",
		"lead_id", lead.ID,
		"postal_code", lead.PostalCode,
		"vehicle_ids", lead.VehicleIDs,
		"preferred_contact", lead.ContactInfo.PreferredContact,
	)
	return nil
}
