package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults are valid", Config{Port: "3000"}, false},
		{"missing port", Config{}, true},
		{"otlp without endpoint", Config{Port: "3000", TracingEnabled: true, TracingExporter: "otlp"}, true},
		{"otlp with endpoint", Config{Port: "3000", TracingEnabled: true, TracingExporter: "otlp", OTLPEndpoint: "localhost:4318"}, false},
		{"stdout exporter needs no endpoint", Config{Port: "3000", TracingEnabled: true, TracingExporter: "stdout"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
