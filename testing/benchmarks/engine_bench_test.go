package benchmarks

import (
	"context"
	"testing"

	"github.com/zoobzio/settings"
	"github.com/zoobzio/settings/json"
	settingstest "github.com/zoobzio/settings/testing"
	"github.com/zoobzio/settings/xml"
	"github.com/zoobzio/settings/yaml"
)

func BenchmarkEngine_Export_XML(b *testing.B) {
	benchmarkExport(b, xml.New())
}

func BenchmarkEngine_Export_YAML(b *testing.B) {
	benchmarkExport(b, yaml.New())
}

func BenchmarkEngine_Export_JSON(b *testing.B) {
	benchmarkExport(b, json.New())
}

func BenchmarkEngine_Import_XML(b *testing.B) {
	benchmarkImport(b, xml.New(), settings.Replace)
}

func BenchmarkEngine_Import_Merge_XML(b *testing.B) {
	benchmarkImport(b, xml.New(), settings.Merge)
}

func BenchmarkEngine_Import_YAML(b *testing.B) {
	benchmarkImport(b, yaml.New(), settings.Replace)
}

func BenchmarkEngine_Fingerprint(b *testing.B) {
	engine, _ := settings.NewEngine[settingstest.Game](xml.New())
	game := settingstest.SampleGame()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Fingerprint(context.Background(), game)
	}
}

func BenchmarkUse_Cached(b *testing.B) {
	codec := xml.New()
	_, _ = settings.Use[settingstest.Game](codec)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = settings.Use[settingstest.Game](codec)
	}
}

func benchmarkExport(b *testing.B, codec settings.Codec) {
	engine, _ := settings.NewEngine[settingstest.Game](codec)
	game := settingstest.SampleGame()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Export(context.Background(), game)
	}
}

func benchmarkImport(b *testing.B, codec settings.Codec, mode settings.Mode) {
	engine, _ := settings.NewEngine[settingstest.Game](codec)
	data, _ := engine.Export(context.Background(), settingstest.SampleGame())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Import(context.Background(), data, settingstest.NewGame(), mode)
	}
}
