package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []SpanRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		records = append(records, r)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	_, err = os.Stat(tracePath)
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
}

func TestFileExporter_WritesRecords(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(tracePath, []byte(`{"name":"existing"}`+"\n"), 0o600))

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	parentID, _ := trace.SpanIDFromHex("1112131415161718")

	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	stub := tracetest.SpanStub{
		Name: "cli.convert",
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  spanID,
		}),
		Parent: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  parentID,
		}),
		StartTime:  start,
		EndTime:    start.Add(1500 * time.Microsecond),
		Attributes: []attribute.KeyValue{attribute.String(AttrSourceUnit, "kg")},
		Status:     sdktrace.Status{Code: codes.Error, Description: "boom"},
		Events: []sdktrace.Event{{
			Name: EventErrorOccurred,
			Time: start,
		}},
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 2)
	require.Equal(t, "existing", records[0].Name)

	r := records[1]
	require.Equal(t, "cli.convert", r.Name)
	require.Equal(t, traceID.String(), r.TraceID)
	require.Equal(t, spanID.String(), r.SpanID)
	require.Equal(t, parentID.String(), r.ParentSpanID)
	require.Equal(t, 1.5, r.DurationMs)
	require.Equal(t, "ERROR", r.Status)
	require.Equal(t, "boom", r.StatusMsg)
	require.Equal(t, "kg", r.Attributes[AttrSourceUnit])
	require.Len(t, r.Events, 1)
	require.Equal(t, EventErrorOccurred, r.Events[0].Name)
	require.Nil(t, r.Events[0].Attributes)
}

func TestFileExporter_EmptyBatchIsNoop(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	require.NoError(t, exporter.ExportSpans(context.Background(), nil))
	require.NoError(t, exporter.Shutdown(context.Background()))

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestFileExporter_AfterShutdown(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()))

	stub := tracetest.SpanStub{Name: "late"}
	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.ErrorIs(t, err, ErrExporterClosed)
}

func TestNewFileExporter_BadDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := NewFileExporter(filepath.Join(blocker, "traces.jsonl"))
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "create trace directory"))
}
