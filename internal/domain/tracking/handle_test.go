package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHandle_Absent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"whitespace only", "   \t  "},
		{"lowercase null", "null"},
		{"uppercase null", "NULL"},
		{"mixed case null", "Null"},
		{"undefined", "undefined"},
		{"nil", "nil"},
		{"null with whitespace", "  null  "},
		{"prefix then null", "tracking:null"},
		{"too short", "ab"},
		{"too short after trim", " x "},
		{"uuid shape", "550e8400-e29b-41d4-a716-446655440000"},
		{"uuid shape uppercase", "550E8400-E29B-41D4-A716-446655440000"},
		{"prefix then uuid", "tracking:550e8400-e29b-41d4-a716-446655440000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handle, ok := NormalizeHandle(tt.raw)
			assert.False(t, ok)
			assert.Empty(t, handle)
		})
	}
}

func TestNormalizeHandle_Valid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain handle", "SMSA123456789", "SMSA123456789"},
		{"surrounding whitespace trimmed", "  RB123456785SA  ", "RB123456785SA"},
		{"prefix stripped", "tracking:TRK-9981", "TRK-9981"},
		{"prefix case-insensitive", "Tracking:TRK-9981", "TRK-9981"},
		{"prefix with inner whitespace", "tracking: TRK-9981 ", "TRK-9981"},
		{"case preserved", "aBcDeF123", "aBcDeF123"},
		{"minimum length", "A1B", "A1B"},
		{"contains null as substring", "nullable-99", "nullable-99"},
		{"almost uuid shape", "550e8400-e29b-41d4-a716-44665544000", "550e8400-e29b-41d4-a716-44665544000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handle, ok := NormalizeHandle(tt.raw)
			assert.True(t, ok)
			assert.Equal(t, tt.want, handle)
		})
	}
}
