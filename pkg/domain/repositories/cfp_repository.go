package repositories

import (
	"github.com/google/uuid"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

// CfpRepository provides access to CFP records
type CfpRepository interface {
	// GetCfpRecords returns every CFP record registered for a trace id.
	GetCfpRecords(traceID uuid.UUID) ([]entities.CfpRecord, error)
	LoadCfpRecords(records []*entities.CfpRecord) error
}
