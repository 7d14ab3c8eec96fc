package parts_validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

const (
	// MaxIntegerDigits is the number of integer digits a numeric input may carry
	MaxIntegerDigits = 5
	// MaxFractionDigits is the number of fractional digits a numeric input may carry
	MaxFractionDigits = 5
)

type partInput struct {
	PartsName          string              `validate:"required,max=50"`
	SupportPartsName   string              `validate:"max=50"`
	PlantID            uuid.UUID           `validate:"required"`
	AmountRequired     decimal.NullDecimal `validate:"omitempty,amount,positive"`
	AmountRequiredUnit string              `validate:"max=20"`
}

type childInput struct {
	PartsName          string              `validate:"required,max=50"`
	SupportPartsName   string              `validate:"max=50"`
	PlantID            uuid.UUID           `validate:"required"`
	AmountRequired     decimal.NullDecimal `validate:"required,amount,positive"`
	AmountRequiredUnit string              `validate:"max=20"`
}

type cfpInput struct {
	CfpType     entities.CfpType    `validate:"required"`
	GhgEmission decimal.NullDecimal `validate:"omitempty,amount"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if id, ok := field.Interface().(uuid.UUID); ok && id != uuid.Nil {
			return id.String()
		}
		return ""
	}, uuid.UUID{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if n, ok := field.Interface().(decimal.NullDecimal); ok && n.Valid {
			return n.Decimal.String()
		}
		return ""
	}, decimal.NullDecimal{})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("amount", validateAmount)
	_ = v.RegisterValidation("positive", validatePositive)

	return v
}

// validateAmount accepts non-negative decimals with at most
// MaxIntegerDigits integer and MaxFractionDigits fractional digits.
func validateAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil || d.IsNegative() {
		return false
	}
	if d.Exponent() < -MaxFractionDigits && !d.Equal(d.Truncate(MaxFractionDigits)) {
		return false
	}
	return d.Truncate(0).Abs().LessThan(decimal.New(1, MaxIntegerDigits))
}

func validatePositive(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.IsPositive()
}

// ValidateInput checks user-entered fields of a parts structure and its CFP
// records before any calculation runs. It returns one message per problem.
func ValidateInput(structure entities.PartsStructure, records []entities.CfpRecord) []string {
	messages := make([]string, 0)

	for i, part := range structure.Parts() {
		if i == 0 {
			input := partInput{
				PartsName:          part.PartsName,
				SupportPartsName:   part.SupportPartsName,
				PlantID:            part.PlantID,
				AmountRequired:     part.AmountRequired,
				AmountRequiredUnit: part.AmountRequiredUnit,
			}
			messages = append(messages, describe("parent part", validate.Struct(input))...)
			continue
		}
		input := childInput{
			PartsName:          part.PartsName,
			SupportPartsName:   part.SupportPartsName,
			PlantID:            part.PlantID,
			AmountRequired:     part.AmountRequired,
			AmountRequiredUnit: part.AmountRequiredUnit,
		}
		messages = append(messages, describe(fmt.Sprintf("child part %d", i), validate.Struct(input))...)
	}

	for _, record := range records {
		label := fmt.Sprintf("cfp %s of %s", record.CfpType, record.TraceID)
		input := cfpInput{
			CfpType:     record.CfpType,
			GhgEmission: record.GhgEmission,
		}
		messages = append(messages, describe(label, validate.Struct(input))...)
	}

	return messages
}

func describe(label string, err error) []string {
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{fmt.Sprintf("%s: %v", label, err)}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fmt.Sprintf("%s: %s %s", label, fieldName(fe.Field()), ruleText(fe)))
	}
	return messages
}

func fieldName(field string) string {
	switch field {
	case "PlantID":
		return "plant id"
	case "CfpType":
		return "cfp type"
	case "GhgEmission":
		return "ghg emission"
	}
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

func ruleText(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "cannot be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "amount":
		return fmt.Sprintf("must be a non-negative number with at most %d integer and %d fractional digits, got %v",
			MaxIntegerDigits, MaxFractionDigits, fe.Value())
	case "positive":
		return fmt.Sprintf("must be positive, got %v", fe.Value())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
