package settings

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for settings events.
var (
	SignalEngineCreated  = capitan.NewSignal("settings.engine.created", "Engine instantiated")
	SignalExportStart    = capitan.NewSignal("settings.export.start", "Export operation beginning")
	SignalExportComplete = capitan.NewSignal("settings.export.complete", "Export operation finished")
	SignalImportStart    = capitan.NewSignal("settings.import.start", "Import operation beginning")
	SignalImportComplete = capitan.NewSignal("settings.import.complete", "Import operation finished")
	SignalElementSkipped = capitan.NewSignal("settings.element.skipped", "Document element ignored during import")
)

// Keys for typed event data.
var (
	KeyContentType  = capitan.NewStringKey("content_type")
	KeyTypeName     = capitan.NewStringKey("type_name")
	KeyMode         = capitan.NewStringKey("mode")
	KeyPath         = capitan.NewStringKey("path")
	KeyElement      = capitan.NewStringKey("element")
	KeySize         = capitan.NewIntKey("size")
	KeySkippedCount = capitan.NewIntKey("skipped_count")
	KeyDuration     = capitan.NewDurationKey("duration")
	KeyError        = capitan.NewErrorKey("error")
)

// emitEngineCreated emits an event when an engine is created.
func emitEngineCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalEngineCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitExportStart emits an event when export begins.
func emitExportStart(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalExportStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitExportComplete emits an event when export finishes.
func emitExportComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalExportComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalExportComplete, fields...)
	}
}

// emitImportStart emits an event when import begins.
func emitImportStart(ctx context.Context, contentType, typeName string, mode Mode) {
	capitan.Emit(ctx, SignalImportStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeyMode.Field(mode.String()),
	)
}

// emitImportComplete emits an event when import finishes.
func emitImportComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, skipped int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeySkippedCount.Field(skipped),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalImportComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalImportComplete, fields...)
	}
}

// emitElementSkipped emits an event for each element import ignored.
func emitElementSkipped(ctx context.Context, typeName string, skip *SkipError) {
	capitan.Emit(ctx, SignalElementSkipped,
		KeyTypeName.Field(typeName),
		KeyPath.Field(skip.Path),
		KeyElement.Field(skip.Element),
		KeyError.Field(skip),
	)
}
