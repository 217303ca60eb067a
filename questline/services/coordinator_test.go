package services

import (
	"testing"

	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/ellavondegurechaff/questline/questline/database/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroupOption(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantCodes []string
		wantPairs [][2]string
		wantErr   bool
	}{
		{
			name:      "single code",
			raw:       "GRP001",
			wantCodes: []string{"GRP001"},
		},
		{
			name:      "multiple codes with spaces",
			raw:       "GRP001, GRP002 ,GRP003",
			wantCodes: []string{"GRP001", "GRP002", "GRP003"},
		},
		{
			name:      "lowercase codes are normalized",
			raw:       "grp001,grp002",
			wantCodes: []string{"GRP001", "GRP002"},
		},
		{
			name:      "name pairs",
			raw:       "Ann&Ben,Cara&Dan",
			wantPairs: [][2]string{{"Ann", "Ben"}, {"Cara", "Dan"}},
		},
		{
			name:      "name pair with spaces",
			raw:       "Ann & Ben",
			wantPairs: [][2]string{{"Ann", "Ben"}},
		},
		{name: "mixed formats rejected", raw: "GRP001,Ann&Ben", wantErr: true},
		{name: "malformed code", raw: "GR001", wantErr: true},
		{name: "code with too many digits", raw: "GRPX001", wantErr: true},
		{name: "half a pair", raw: "Ann&", wantErr: true},
		{name: "empty input", raw: "", wantErr: true},
		{name: "only commas", raw: ", ,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGroupOption(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, repositories.IsValidation(err), "error should be a ValidationError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCodes, got.Codes)
			assert.Equal(t, tt.wantPairs, got.Pairs)
		})
	}
}

func TestResolveName(t *testing.T) {
	linked := []*models.User{
		{ID: 1, Username: "Annabelle"},
		{ID: 2, Username: "Ben"},
		{ID: 3, Username: "Benjamin"},
	}

	tests := []struct {
		name    string
		input   string
		wantID  int64
		wantErr bool
	}{
		{name: "exact match", input: "Ben", wantID: 2},
		{name: "exact match is case-insensitive", input: "ben", wantID: 2},
		{name: "fuzzy match", input: "Annab", wantID: 1},
		{name: "no match", input: "Zoe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveName(linked, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, repositories.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}
