package validation

import (
	"context"
	"log/slog"

	apperrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// ColumnSet is anything that can answer whether a header is present.
type ColumnSet interface {
	HasColumn(name string) bool
}

// MissingColumns returns the names in required that cols lacks, in the order
// they appear in required.
func MissingColumns(cols ColumnSet, required []string) []string {
	var missing []string
	for _, name := range required {
		if !cols.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// ColumnValidator checks a loaded table against the columns a variant needs.
type ColumnValidator struct {
	logger  *slog.Logger
	variant domain.Variant
}

// NewColumnValidator creates a validator for variant.
func NewColumnValidator(logger *slog.Logger, variant domain.Variant) *ColumnValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ColumnValidator{
		logger:  logger.With(slog.String("component", "column_validator")),
		variant: variant,
	}
}

// Required returns the columns this validator checks for.
func (v *ColumnValidator) Required() []string {
	return v.variant.RequiredColumns()
}

// Validate returns a *errors.MissingFieldsError naming every absent column,
// or nil when all are present. A table with no rows but a full header passes.
func (v *ColumnValidator) Validate(ctx context.Context, cols ColumnSet) error {
	missing := MissingColumns(cols, v.Required())
	if len(missing) == 0 {
		return nil
	}

	v.logger.WarnContext(ctx, "listings file is missing required columns",
		slog.String("variant", string(v.variant)),
		slog.Any("missing", missing))
	return apperrors.NewMissingFieldsError(missing)
}
