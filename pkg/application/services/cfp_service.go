package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/application/dto"
	"github.com/vsinha/cfptrace/pkg/domain/entities"
	"github.com/vsinha/cfptrace/pkg/domain/repositories"
	"github.com/vsinha/cfptrace/pkg/domain/services/emission"
	"github.com/vsinha/cfptrace/pkg/domain/services/parts_validator"
)

// ServiceConfig holds limits and display settings for the CFP service
type ServiceConfig struct {
	// MaxChildren caps the number of child parts in a structure (0 = default)
	MaxChildren int
	// Precision is the number of decimals used for display values
	Precision int32
}

// ValidationError is returned when a parts structure fails registration checks
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "\n")
}

// CfpService registers parts structures and rolls up their CFP and DQR values
type CfpService struct {
	config ServiceConfig
	logger *log.Logger

	partsRepo repositories.PartsRepository
	plantRepo repositories.PlantRepository
	cfpRepo   repositories.CfpRepository
}

// NewCfpService creates a CFP service with default configuration
func NewCfpService(
	partsRepo repositories.PartsRepository,
	plantRepo repositories.PlantRepository,
	cfpRepo repositories.CfpRepository,
	logger *log.Logger,
) *CfpService {
	return NewCfpServiceWithConfig(ServiceConfig{
		MaxChildren: entities.DefaultMaxChildren,
		Precision:   emission.DefaultDisplayPrecision,
	}, partsRepo, plantRepo, cfpRepo, logger)
}

// NewCfpServiceWithConfig creates a CFP service with custom configuration
func NewCfpServiceWithConfig(
	config ServiceConfig,
	partsRepo repositories.PartsRepository,
	plantRepo repositories.PlantRepository,
	cfpRepo repositories.CfpRepository,
	logger *log.Logger,
) *CfpService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CfpService{
		config:    config,
		logger:    logger,
		partsRepo: partsRepo,
		plantRepo: plantRepo,
		cfpRepo:   cfpRepo,
	}
}

// CheckPartsStructure runs every registration check without saving.
// Failed checks are reported as a *ValidationError.
func (s *CfpService) CheckPartsStructure(ctx context.Context, structure *entities.PartsStructure) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("check parts structure canceled: %w", err)
	}
	if structure == nil {
		return fmt.Errorf("parts structure cannot be nil")
	}

	var records []entities.CfpRecord
	for _, part := range structure.Parts() {
		partRecords, err := s.cfpRepo.GetCfpRecords(part.TraceID)
		if err != nil {
			return fmt.Errorf("failed to get CFP records for %s: %w", part.TraceID, err)
		}
		records = append(records, partRecords...)
	}

	if messages := parts_validator.ValidateInput(*structure, records); len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}

	if _, err := entities.NewPartsStructure(structure.Parent, structure.Children, s.config.MaxChildren); err != nil {
		return &ValidationError{Messages: []string{err.Error()}}
	}

	plants, err := s.plantRepo.GetAllPlants()
	if err != nil {
		return fmt.Errorf("failed to get plants: %w", err)
	}

	result := parts_validator.ValidateStructure(*structure, plants)
	if result.HasErrors() {
		s.logger.Debug("duplicate parts found", "traceId", structure.Parent.TraceID, "groups", result.DuplicateGroups)
		return &ValidationError{Messages: result.Errors}
	}

	return nil
}

// CheckReferences reports parts that name an unknown plant or lack CFP
// records. These are warnings: registration does not depend on them, but
// Summarize fails for parts without a complete CFP record set.
func (s *CfpService) CheckReferences(ctx context.Context, structure *entities.PartsStructure) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("check references canceled: %w", err)
	}

	plants, err := s.plantRepo.GetAllPlants()
	if err != nil {
		return nil, fmt.Errorf("failed to get plants: %w", err)
	}

	var records []entities.CfpRecord
	for _, part := range structure.Parts() {
		partRecords, err := s.cfpRepo.GetCfpRecords(part.TraceID)
		if err != nil {
			return nil, fmt.Errorf("failed to get CFP records for %s: %w", part.TraceID, err)
		}
		records = append(records, partRecords...)
	}

	result := parts_validator.ValidateReferences(*structure, plants, records)
	for _, warning := range result.Warnings {
		s.logger.Warn(warning)
	}
	return result.Warnings, nil
}

// RegisterPartsStructure checks a parts structure and saves it
func (s *CfpService) RegisterPartsStructure(ctx context.Context, structure *entities.PartsStructure) error {
	if err := s.CheckPartsStructure(ctx, structure); err != nil {
		return err
	}

	if err := s.partsRepo.SavePartsStructure(structure); err != nil {
		return fmt.Errorf("failed to save parts structure: %w", err)
	}

	s.logger.Info("parts structure registered",
		"traceId", structure.Parent.TraceID,
		"partsName", structure.Parent.PartsName,
		"children", len(structure.Children))
	return nil
}

// Summarize computes the CFP sum, total and DQR rollup of a registered
// parts structure.
func (s *CfpService) Summarize(ctx context.Context, parentTraceID uuid.UUID) (*dto.CfpSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("summarize canceled: %w", err)
	}

	structure, err := s.partsRepo.GetPartsStructure(parentTraceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get parts structure: %w", err)
	}

	plants, err := s.plantRepo.GetAllPlants()
	if err != nil {
		return nil, fmt.Errorf("failed to get plants: %w", err)
	}
	plantsByID := make(map[uuid.UUID]entities.Plant, len(plants))
	for _, plant := range plants {
		plantsByID[plant.PlantID] = plant
	}

	summary := &dto.CfpSummary{
		ParentTraceID: parentTraceID,
		PartsName:     structure.Parent.PartsName,
		Rows:          make([]dto.PartSummary, 0, len(structure.Children)+1),
	}

	partRows := make([]entities.PartRow, 0, len(structure.Children)+1)
	for i, part := range structure.Parts() {
		cfp, err := s.cfpRow(part.TraceID)
		if err != nil {
			return nil, err
		}

		role := dto.RoleChild
		var row entities.PartRow
		if i == 0 {
			role = dto.RoleParent
			row = emission.NewParentRow(cfp)
		} else {
			row = emission.NewChildRow(cfp, part.AmountRequired)
		}
		partRows = append(partRows, row)

		plant := plantsByID[part.PlantID]
		total := emission.SumStrict(row.PreEmission, row.MainEmission)
		summary.Rows = append(summary.Rows, dto.PartSummary{
			Role:               role,
			Index:              i,
			TraceID:            part.TraceID,
			PartsName:          part.PartsName,
			SupportPartsName:   part.SupportPartsName,
			PlantName:          plant.PlantName,
			OpenPlantID:        plant.OpenPlantID,
			AmountRequired:     part.AmountRequired,
			AmountRequiredUnit: part.AmountRequiredUnit,
			EmissionsUnit:      cfp.PreProduction.EmissionsUnit,
			PreEmission:        row.PreEmission,
			MainEmission:       row.MainEmission,
			Total:              total,
			PreDqr:             row.PreDqr,
			MainDqr:            row.MainDqr,
			Display: dto.RowDisplay{
				PreEmission:  s.display(row.PreEmission),
				MainEmission: s.display(row.MainEmission),
				Total:        s.display(total),
			},
		})
	}

	summary.Sum = emission.AggregatePartRows(partRows)
	summary.Total = emission.Total(summary.Sum)
	summary.Dqr = emission.AggregateDqr(partRows[1:], partRows[0])
	summary.Display = dto.SummaryDisplay{
		Precision:    s.config.Precision,
		PreEmission:  emission.FormatNumber(summary.Sum.PreEmission, s.config.Precision),
		MainEmission: emission.FormatNumber(summary.Sum.MainEmission, s.config.Precision),
		Total:        emission.FormatNumber(summary.Total, s.config.Precision),
	}

	s.logger.Debug("structure summarized",
		"traceId", parentTraceID,
		"rows", len(summary.Rows),
		"total", summary.Total.String())
	return summary, nil
}

// cfpRow groups the CFP records of one part. Parts with an incomplete set of
// CFP types are reported as an error instead of reaching NewCfpRow.
func (s *CfpService) cfpRow(traceID uuid.UUID) (entities.CfpRow, error) {
	records, err := s.cfpRepo.GetCfpRecords(traceID)
	if err != nil {
		return entities.CfpRow{}, fmt.Errorf("failed to get CFP records for %s: %w", traceID, err)
	}

	present := make(map[entities.CfpType]bool, len(records))
	for _, record := range records {
		present[record.CfpType] = true
	}
	var missing []string
	for _, cfpType := range entities.CfpTypes {
		if !present[cfpType] {
			missing = append(missing, string(cfpType))
		}
	}
	if len(missing) > 0 {
		return entities.CfpRow{}, fmt.Errorf("part %s is missing CFP data for types: %s", traceID, strings.Join(missing, ", "))
	}

	return entities.NewCfpRow(traceID, records), nil
}

func (s *CfpService) display(value decimal.NullDecimal) string {
	if !value.Valid {
		return ""
	}
	return emission.FormatNumber(value.Decimal, s.config.Precision)
}
