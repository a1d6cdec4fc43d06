package telemetry

import (
	"context"
	"testing"

	"peerraise/internal/platform/config"
)

func TestSetupDisabledReturnsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), "peerraise", config.TelemetryConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown failed: %v", err)
	}
}

func TestSetupRejectsUnknownExporter(t *testing.T) {
	_, err := Setup(context.Background(), "peerraise", config.TelemetryConfig{Enabled: true, Exporter: "zipkin"}, nil)
	if err == nil {
		t.Fatalf("expected unknown exporter to fail")
	}
}

func TestNewExporterStdout(t *testing.T) {
	exporter, err := newExporter(context.Background(), config.TelemetryConfig{Exporter: "stdout"})
	if err != nil {
		t.Fatalf("stdout exporter failed: %v", err)
	}
	if err := exporter.Shutdown(context.Background()); err != nil {
		t.Fatalf("exporter shutdown failed: %v", err)
	}
}
