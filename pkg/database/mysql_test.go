package database

import (
	"testing"

	"online_exam_backend/internal/config"
)

func TestShouldMigrate(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"debug mode migrates by default", "debug", false, true},
		{"test mode migrates by default", "test", false, true},
		{"release mode skips by default", "release", false, false},
		{"release mode with force flag", "release", true, true},
		{"debug mode with force flag", "debug", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{ForceMigrate: tt.force}
			cfg.Server.Mode = tt.mode
			if got := shouldMigrate(cfg); got != tt.want {
				t.Errorf("shouldMigrate() = %v, want %v", got, tt.want)
			}
		})
	}
}
