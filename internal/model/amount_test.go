package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "two fractional digits",
			input: "1428.73",
			want:  "1428.73",
		},
		{
			name:  "whole number padded",
			input: "1500",
			want:  "1500.00",
		},
		{
			name:  "one fractional digit padded",
			input: "10.5",
			want:  "10.50",
		},
		{
			name:  "zero",
			input: "0",
			want:  "0.00",
		},
		{
			name:  "large value",
			input: "1234567.89",
			want:  "1234567.89",
		},
		{
			name:    "negative rejected",
			input:   "-10.00",
			wantErr: true,
		},
		{
			name:    "three fractional digits rejected not rounded",
			input:   "10.123",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "not a number",
			input:   "ten dollars",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAmountJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "two decimals preserved", input: "1428.73", want: "1428.73"},
		{name: "whole number gains decimals", input: "10000", want: "10000.00"},
		{name: "zero", input: "0", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := MustAmount(tt.input)

			data, err := json.Marshal(a)
			require.NoError(t, err)
			// Amounts must be plain JSON numbers, not strings.
			assert.Equal(t, tt.want, string(data))

			var back Amount
			require.NoError(t, json.Unmarshal(data, &back))
			assert.True(t, a.Equal(back))
		})
	}
}

func TestAmountZeroValue(t *testing.T) {
	var a Amount
	assert.True(t, a.IsZero())
	assert.Equal(t, "0.00", a.String())
	assert.True(t, a.Equal(ZeroAmount()))
}

func TestAmountUnmarshalRejectsInvalid(t *testing.T) {
	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`-5.00`), &a))
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &a))
}
