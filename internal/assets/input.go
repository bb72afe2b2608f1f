package assets

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// maxAmount bounds amounts to what the REAL columns store exactly.
var maxAmount = decimal.New(1, 15)

// Input holds the raw asset fields as submitted by a form.
type Input struct {
	Name        string
	Income      string
	Expenditure string
}

// ParsedInput is a validated Input.
type ParsedInput struct {
	Name        string
	Income      decimal.Decimal
	Expenditure decimal.Decimal
}

// ValidationError describes an invalid asset field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Parse validates the input and converts the amounts to decimals.
func (in Input) Parse() (ParsedInput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ParsedInput{}, &ValidationError{Field: "Asset name", Message: "is required"}
	}

	income, err := parseAmount("Income", in.Income)
	if err != nil {
		return ParsedInput{}, err
	}
	expenditure, err := parseAmount("Expenditure", in.Expenditure)
	if err != nil {
		return ParsedInput{}, err
	}

	return ParsedInput{
		Name:        name,
		Income:      income,
		Expenditure: expenditure,
	}, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, &ValidationError{Field: field, Message: "is required"}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Message: "must be a number"}
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, &ValidationError{Field: field, Message: "is out of range"}
	}
	return d, nil
}
