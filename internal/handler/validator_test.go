package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMineRequest struct {
	TelegramID int64  `json:"telegram_id" validate:"required,gt=0"`
	Method     string `json:"method" validate:"required,mining_method"`
}

type testGrantRequest struct {
	Type     string `json:"type" validate:"required,upgrade_type"`
	Username string `json:"username" validate:"max=32,excludesall=\x00\n\r\t"`
}

func TestValidator_MiningMethod(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		method  string
		wantErr bool
	}{
		{"manual", "manual", false},
		{"auto", "auto", false},
		{"empty", "", true},
		{"uppercase is not accepted", "MANUAL", true},
		{"unknown", "laser", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(testMineRequest{TelegramID: 1, Method: tt.method})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_TelegramID(t *testing.T) {
	InitValidator()
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(testMineRequest{TelegramID: 1, Method: "auto"}))
	assert.Error(t, v.ValidateStruct(testMineRequest{TelegramID: 0, Method: "auto"}))
	assert.Error(t, v.ValidateStruct(testMineRequest{TelegramID: -5, Method: "auto"}))
}

func TestValidator_UpgradeType(t *testing.T) {
	InitValidator()
	v := GetValidator()

	for _, typ := range []string{"suit_autonomy", "drone_collection", "insurance_recovery", "speed", "capacity"} {
		assert.NoError(t, v.ValidateStruct(testGrantRequest{Type: typ}), typ)
	}
	assert.Error(t, v.ValidateStruct(testGrantRequest{Type: "jetpack"}))
}

func TestValidator_Username(t *testing.T) {
	InitValidator()
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(testGrantRequest{Type: "speed", Username: strings.Repeat("a", 32)}))
	assert.Error(t, v.ValidateStruct(testGrantRequest{Type: "speed", Username: strings.Repeat("a", 33)}))
	assert.Error(t, v.ValidateStruct(testGrantRequest{Type: "speed", Username: "bad\nname"}))
}

func TestFormatValidationError(t *testing.T) {
	InitValidator()
	v := GetValidator()

	err := v.ValidateStruct(testMineRequest{TelegramID: 0, Method: "laser"})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["telegram_id"])
	assert.Equal(t, "Must be one of: manual, auto", fields["method"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}
