package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "normal date",
			input: "01/31/2023",
		},
		{
			name:  "leap day in leap year",
			input: "02/29/2024",
		},
		{
			name:    "leap day in non-leap year",
			input:   "02/29/2023",
			wantErr: true,
		},
		{
			name:    "nonexistent day rejected not clamped",
			input:   "02/30/2023",
			wantErr: true,
		},
		{
			name:    "month out of range",
			input:   "13/01/2023",
			wantErr: true,
		},
		{
			name:    "day zero",
			input:   "01/00/2023",
			wantErr: true,
		},
		{
			name:    "thirty-first of a thirty-day month",
			input:   "04/31/2023",
			wantErr: true,
		},
		{
			name:    "unpadded month",
			input:   "1/31/2023",
			wantErr: true,
		},
		{
			name:    "two-digit year",
			input:   "01/31/23",
			wantErr: true,
		},
		{
			name:    "iso format",
			input:   "2023-01-31",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestDateComparisons(t *testing.T) {
	start := MustDate("01/01/2023")
	end := MustDate("01/31/2023")

	assert.True(t, start.Before(end))
	assert.True(t, end.After(start))
	assert.False(t, start.Equal(end))
	assert.True(t, start.Equal(MustDate("01/01/2023")))
	assert.Equal(t, 2023, end.Year())
}

func TestDateJSON(t *testing.T) {
	d := MustDate("01/31/2023")

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"01/31/2023"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back))

	assert.Error(t, json.Unmarshal([]byte(`"02/30/2023"`), &back))
	assert.Error(t, json.Unmarshal([]byte(`20230131`), &back))
}
