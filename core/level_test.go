package core

import (
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{NotSetLevel, "NOTSET"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarningLevel, "WARNING"},
		{ErrorLevel, "ERROR"},
		{CriticalLevel, "CRITICAL"},
		{Level(15), "Level(15)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_Ordering(t *testing.T) {
	ordered := []Level{NotSetLevel, DebugLevel, InfoLevel, WarningLevel, ErrorLevel, CriticalLevel}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("expected %v < %v", ordered[i-1], ordered[i])
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", "DEBUG", DebugLevel, false},
		{"info lowercase", "info", InfoLevel, false},
		{"warning", "WARNING", WarningLevel, false},
		{"warn alias", "warn", WarningLevel, false},
		{"error", "ERROR", ErrorLevel, false},
		{"critical", "CRITICAL", CriticalLevel, false},
		{"fatal alias", "FATAL", CriticalLevel, false},
		{"notset", "NOTSET", NotSetLevel, false},
		{"padded", "  Info  ", InfoLevel, false},
		{"unknown", "VERBOSE", NotSetLevel, true},
		{"empty", "", NotSetLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
