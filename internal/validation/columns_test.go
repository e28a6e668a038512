package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/shared/testutil"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

type headerSet map[string]bool

func (h headerSet) HasColumn(name string) bool { return h[name] }

func headers(names ...string) headerSet {
	h := headerSet{}
	for _, n := range names {
		h[n] = true
	}
	return h
}

func TestColumnValidator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		variant domain.Variant
		cols    headerSet
		wantMsg string
		missing []string
	}{
		{
			name:    "extended with everything",
			variant: domain.VariantExtended,
			cols:    headers(testutil.ExtendedHeader...),
		},
		{
			name:    "basic ignores images",
			variant: domain.VariantBasic,
			cols:    headers(testutil.BasicHeader...),
		},
		{
			name:    "model missing",
			variant: domain.VariantExtended,
			cols:    headers("Engine Hours", "Valid HIN?", "Display Price", "Make", "Images"),
			wantMsg: "Missing columns in CSV: Model",
			missing: []string{"Model"},
		},
		{
			name:    "extended needs images",
			variant: domain.VariantExtended,
			cols:    headers(testutil.BasicHeader...),
			wantMsg: "Missing columns in CSV: Images",
			missing: []string{"Images"},
		},
		{
			name:    "several missing follow required order",
			variant: domain.VariantExtended,
			cols:    headers("Model", "Make"),
			wantMsg: "Missing columns in CSV: Engine Hours, Valid HIN?, Display Price, Images",
			missing: []string{"Engine Hours", "Valid HIN?", "Display Price", "Images"},
		},
		{
			name:    "matching is case sensitive",
			variant: domain.VariantBasic,
			cols:    headers("engine hours", "Valid HIN?", "Display Price", "Make", "Model"),
			wantMsg: "Missing columns in CSV: Engine Hours",
			missing: []string{"Engine Hours"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			v := NewColumnValidator(logger, tt.variant)

			err := v.Validate(context.Background(), tt.cols)

			if tt.wantMsg == "" {
				assert.NoError(t, err)
				assert.Equal(t, 0, logs.Count())
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())

			var mf *apperrors.MissingFieldsError
			require.True(t, errors.As(err, &mf))
			assert.Equal(t, tt.missing, mf.Missing)
			assert.True(t, logs.ContainsMessage("missing required columns"))
		})
	}
}

func TestMissingColumns(t *testing.T) {
	assert.Nil(t, MissingColumns(headers("a", "b"), []string{"a", "b"}))
	assert.Equal(t, []string{"c"}, MissingColumns(headers("a", "b"), []string{"a", "c"}))
}

func TestColumnValidator_Required(t *testing.T) {
	assert.Equal(t,
		[]string{"Engine Hours", "Valid HIN?", "Display Price", "Make", "Model", "Images"},
		NewColumnValidator(nil, domain.VariantExtended).Required())
	assert.Len(t, NewColumnValidator(nil, domain.VariantBasic).Required(), 5)
}
