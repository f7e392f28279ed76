package settings

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitEngineCreated(_ *testing.T) {
	// Should not panic
	emitEngineCreated(context.Background(), "application/xml", "TestType")
}

func TestEmitExportStart(_ *testing.T) {
	emitExportStart(context.Background(), "application/xml", "TestType")
}

func TestEmitExportComplete_Success(_ *testing.T) {
	emitExportComplete(context.Background(), "application/xml", "TestType", 1024, 100*time.Millisecond, nil)
}

func TestEmitExportComplete_Error(_ *testing.T) {
	emitExportComplete(context.Background(), "application/xml", "TestType", 0, 100*time.Millisecond, errors.New("test error"))
}

func TestEmitImportStart(_ *testing.T) {
	emitImportStart(context.Background(), "application/xml", "TestType", Replace)
}

func TestEmitImportComplete_Success(_ *testing.T) {
	emitImportComplete(context.Background(), "application/xml", "TestType", 512, 100*time.Millisecond, 2, nil)
}

func TestEmitImportComplete_Error(_ *testing.T) {
	emitImportComplete(context.Background(), "application/xml", "TestType", 0, 100*time.Millisecond, 0, errors.New("test error"))
}

func TestEmitElementSkipped(_ *testing.T) {
	emitElementSkipped(context.Background(), "TestType", &SkipError{
		Err:     ErrMalformedElement,
		Path:    "Audio",
		Element: "Volume",
		Cause:   errors.New("bad float"),
	})
}

func TestSignalVariables(t *testing.T) {
	// Verify signals are properly initialized
	signals := []struct {
		name   string
		signal interface{}
	}{
		{"SignalEngineCreated", SignalEngineCreated},
		{"SignalExportStart", SignalExportStart},
		{"SignalExportComplete", SignalExportComplete},
		{"SignalImportStart", SignalImportStart},
		{"SignalImportComplete", SignalImportComplete},
		{"SignalElementSkipped", SignalElementSkipped},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	// Verify keys are properly initialized
	keys := []struct {
		name string
		key  interface{}
	}{
		{"KeyContentType", KeyContentType},
		{"KeyTypeName", KeyTypeName},
		{"KeyMode", KeyMode},
		{"KeyPath", KeyPath},
		{"KeyElement", KeyElement},
		{"KeySize", KeySize},
		{"KeySkippedCount", KeySkippedCount},
		{"KeyDuration", KeyDuration},
		{"KeyError", KeyError},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}
