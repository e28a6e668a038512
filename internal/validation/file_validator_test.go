package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileValidator_ValidateListingsFile(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		errorContains string
	}{
		{
			name: "csv export",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "active_listings.csv")
				require.NoError(t, os.WriteFile(file, []byte("Make,Model\n"), 0644))
				return file
			},
		},
		{
			name: "xlsx export with upper-case extension",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "LISTINGS.XLSX")
				require.NoError(t, os.WriteFile(file, []byte("PK"), 0644))
				return file
			},
		},
		{
			name: "non-existent file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.csv")
			},
			wantErr:       true,
			errorContains: "does not exist",
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr:       true,
			errorContains: "is a directory",
		},
		{
			name: "unsupported extension",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "listings.pdf")
				require.NoError(t, os.WriteFile(file, []byte("%PDF"), 0644))
				return file
			},
			wantErr:       true,
			errorContains: "not a CSV or XLSX export",
		},
		{
			name: "plain text export",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "listings.txt")
				require.NoError(t, os.WriteFile(file, []byte("Make,Model\n"), 0644))
				return file
			},
			wantErr:       true,
			errorContains: "not a CSV or XLSX export",
		},
		{
			name: "editor lock file",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "~$listings.xlsx")
				require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
				return file
			},
			wantErr:       true,
			errorContains: "temporary Excel file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())

			err := validator.ValidateListingsFile(tt.setupFunc(t))

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	validator := NewFileValidator(nil)

	dir := filepath.Join(t.TempDir(), "exports", "today")
	require.NoError(t, validator.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(filepath.Join(dir, ".write_test"))
	assert.True(t, os.IsNotExist(err), "write test file should be removed")
}

func TestFileValidator_ValidateOutputDirectory_FileInTheWay(t *testing.T) {
	validator := NewFileValidator(nil)

	file := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	err := validator.ValidateOutputDirectory(filepath.Join(file, "sub"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output directory")
}
