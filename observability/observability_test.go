package observability

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestNewPipelineMetrics(t *testing.T) {
	mp := sdkmetric.NewMeterProvider()
	defer mp.Shutdown(context.Background())

	metrics, err := NewPipelineMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Recording must not panic on a provider with no reader attached.
	ctx := context.Background()
	metrics.RecordRunStart(ctx)
	metrics.RecordStage(ctx, "asr", 420*time.Millisecond)
	metrics.RecordFailure(ctx, "translate", "MODEL_UNAVAILABLE")
	metrics.RecordRunEnd(ctx, "pt-BR", "en", "failure", time.Second)
}

func TestServiceHealthDegradesOnDownComponent(t *testing.T) {
	sh := NewServiceHealth("voicebridge", "1.0.0")
	sh.AddComponent(Health{Name: "whisper", Status: HealthStatusUp})
	if sh.Status != HealthStatusUp {
		t.Fatalf("expected up, got %s", sh.Status)
	}

	sh.AddComponent(Health{Name: "marian", Status: HealthStatusDown})
	if sh.Status != HealthStatusDegraded {
		t.Errorf("expected degraded, got %s", sh.Status)
	}

	sh.AddComponent(Health{Name: "piper", Status: HealthStatusUp})
	if sh.Status != HealthStatusDegraded {
		t.Errorf("expected degraded to stick, got %s", sh.Status)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("voicebridge")
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("unexpected endpoint %s", cfg.Endpoint)
	}
	if !cfg.Insecure {
		t.Error("expected insecure default for development")
	}
}
