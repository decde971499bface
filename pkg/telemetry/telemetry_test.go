package telemetry

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestInit_Stdout(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), Config{
		ServiceName: "netanalyzer-test",
		Exporter:    ExporterStdout,
		Writer:      &buf,
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	_, span := otel.Tracer("test").Start(context.Background(), "Analyzer.summary")
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Analyzer.summary") {
		t.Errorf("span not exported: %s", buf.String())
	}
}

func TestInit_None(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Exporter: ExporterNone})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}

func TestInit_Unknown(t *testing.T) {
	_, err := Init(context.Background(), Config{Exporter: "zipkin"})
	if !errors.Is(err, ErrUnknownExporter) {
		t.Errorf("err = %v, want ErrUnknownExporter", err)
	}
}
