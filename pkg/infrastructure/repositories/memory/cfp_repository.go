package memory

import (
	"github.com/google/uuid"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
	"github.com/vsinha/cfptrace/pkg/domain/repositories"
)

// CfpRepository provides in-memory CFP record storage
type CfpRepository struct {
	records   []entities.CfpRecord
	byTraceID map[uuid.UUID][]int
}

// NewCfpRepository creates a new in-memory CFP repository
func NewCfpRepository() *CfpRepository {
	return &CfpRepository{
		records:   []entities.CfpRecord{},
		byTraceID: make(map[uuid.UUID][]int),
	}
}

// Verify interface compliance
var _ repositories.CfpRepository = (*CfpRepository)(nil)

// LoadCfpRecords loads CFP records into the repository
func (r *CfpRepository) LoadCfpRecords(records []*entities.CfpRecord) error {
	for _, record := range records {
		r.AddCfpRecord(*record)
	}
	return nil
}

// AddCfpRecord adds a CFP record
func (r *CfpRepository) AddCfpRecord(record entities.CfpRecord) {
	index := len(r.records)
	r.records = append(r.records, record)
	r.byTraceID[record.TraceID] = append(r.byTraceID[record.TraceID], index)
}

// GetCfpRecords returns the CFP records of a part. A part without records
// yields an empty slice.
func (r *CfpRepository) GetCfpRecords(traceID uuid.UUID) ([]entities.CfpRecord, error) {
	indexes := r.byTraceID[traceID]
	records := make([]entities.CfpRecord, 0, len(indexes))
	for _, index := range indexes {
		records = append(records, r.records[index])
	}
	return records, nil
}
