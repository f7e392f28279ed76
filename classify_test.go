package settings

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/zoobzio/sentinel"
)

type level int

func (l level) MarshalText() ([]byte, error) {
	if l == 0 {
		return []byte("Low"), nil
	}
	return []byte("High"), nil
}

func (l *level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Low":
		*l = 0
	case "High":
		*l = 1
	default:
		return errors.New("unknown level")
	}
	return nil
}

// tags is written as one comma separated leaf.
type tags []string

func (t tags) MarshalText() ([]byte, error) {
	return []byte(strings.Join(t, ",")), nil
}

func (t *tags) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*t = nil
		return nil
	}
	*t = strings.Split(string(text), ",")
	return nil
}

type point struct {
	X, Y int
}

type tree struct {
	Label    string
	Children []*tree
}

type hidden struct {
	Public  string
	private int
	_       int
	Skipped string `settings:"-"`
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want Kind
	}{
		{"string", reflect.TypeFor[string](), KindLeaf},
		{"bool", reflect.TypeFor[bool](), KindLeaf},
		{"int8", reflect.TypeFor[int8](), KindLeaf},
		{"uint64", reflect.TypeFor[uint64](), KindLeaf},
		{"float32", reflect.TypeFor[float32](), KindLeaf},
		{"complex128", reflect.TypeFor[complex128](), KindLeaf},
		{"duration", reflect.TypeFor[time.Duration](), KindLeaf},
		{"time", reflect.TypeFor[time.Time](), KindLeaf},
		{"enum", reflect.TypeFor[level](), KindLeaf},
		{"bytes", reflect.TypeFor[[]byte](), KindLeaf},
		{"slice", reflect.TypeFor[[]string](), KindSequence},
		{"array", reflect.TypeFor[[4]int](), KindSequence},
		{"slice of composites", reflect.TypeFor[[]point](), KindSequence},
		{"map", reflect.TypeFor[map[string]int](), KindMapping},
		{"map by enum", reflect.TypeFor[map[level]point](), KindMapping},
		{"struct", reflect.TypeFor[point](), KindComposite},
		{"pointer to struct", reflect.TypeFor[*point](), KindComposite},
		{"pointer to leaf", reflect.TypeFor[*int](), KindLeaf},
		{"recursive", reflect.TypeFor[tree](), KindComposite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.typ)
			if err != nil {
				t.Fatalf("Classify(%s) error: %v", tt.typ, err)
			}
			if got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.typ, got, tt.want)
			}
		})
	}
}

func TestClassify_TextFormWins(t *testing.T) {
	// A struct with a text form is a leaf, not a composite.
	k, err := Classify(reflect.TypeFor[time.Time]())
	if err != nil || k != KindLeaf {
		t.Errorf("Classify(time.Time) = %s, %v; want leaf", k, err)
	}

	// So is a named slice.
	k, err = Classify(reflect.TypeFor[tags]())
	if err != nil || k != KindLeaf {
		t.Errorf("Classify(tags) = %s, %v; want leaf", k, err)
	}
}

func TestClassify_UnsupportedKeyType(t *testing.T) {
	_, err := Classify(reflect.TypeFor[map[point]string]())
	if !errors.Is(err, ErrUnsupportedKeyType) {
		t.Fatalf("error = %v, want ErrUnsupportedKeyType", err)
	}

	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error should be *SchemaError, got %T", err)
	}
	if se.Type != reflect.TypeFor[point]() {
		t.Errorf("SchemaError.Type = %s, want point", se.Type)
	}
}

func TestClassify_NestedUnsupportedKeyType(t *testing.T) {
	type holder struct {
		Lookup map[[2]int]string
	}
	_, err := Classify(reflect.TypeFor[holder]())
	var se *SchemaError
	if !errors.As(err, &se) || !errors.Is(err, ErrUnsupportedKeyType) {
		t.Fatalf("error = %v, want *SchemaError(ErrUnsupportedKeyType)", err)
	}
	if se.Path != "Lookup" {
		t.Errorf("SchemaError.Path = %q, want Lookup", se.Path)
	}
}

func TestClassify_Unsupported(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeFor[chan int](),
		reflect.TypeFor[func()](),
		reflect.TypeFor[struct{ C chan int }](),
		reflect.TypeFor[[]func()](),
		nil,
	}
	for _, typ := range types {
		if _, err := Classify(typ); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("Classify(%v) error = %v, want ErrUnsupportedType", typ, err)
		}
	}
}

func TestClassify_Interface(t *testing.T) {
	if _, err := Classify(reflect.TypeFor[any]()); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Classify(any) error = %v, want ErrUnsupportedType", err)
	}

	k, err := ClassifyValue(any(point{}))
	if err != nil || k != KindComposite {
		t.Errorf("ClassifyValue(point) = %s, %v; want composite", k, err)
	}
}

func TestClassify_FailureNotCached(t *testing.T) {
	type bad struct {
		Fn func()
	}
	before := plans.len()
	for range 2 {
		if _, err := Classify(reflect.TypeFor[bad]()); err == nil {
			t.Fatal("expected error on every call")
		}
	}
	if got := plans.len(); got != before {
		t.Errorf("failed build published %d plans", got-before)
	}
}

func TestCompositeSlots(t *testing.T) {
	p, err := planFor(reflect.TypeFor[hidden]())
	if err != nil {
		t.Fatalf("planFor error: %v", err)
	}

	var names []string
	for _, s := range p.slots {
		names = append(names, s.name)
	}
	want := []string{"Public", "private"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("slots = %v, want %v", names, want)
	}
	if len(p.meta.Fields) != 4 {
		t.Errorf("metadata has %d fields, want 4", len(p.meta.Fields))
	}
}

func TestPlanCache(t *testing.T) {
	resetPlans()

	p1, err := planFor(reflect.TypeFor[tree]())
	if err != nil {
		t.Fatalf("planFor error: %v", err)
	}
	p2, _ := planFor(reflect.TypeFor[tree]())
	if p1 != p2 {
		t.Error("planFor should return the cached plan")
	}

	// The recursive slot shares the enclosing plan.
	children := p1.slots[1].plan
	if children.elem.elem != p1 {
		t.Error("recursive slot should reuse the enclosing plan")
	}

	resetPlans()
	p3, _ := planFor(reflect.TypeFor[tree]())
	if p3 == p1 {
		t.Error("resetPlans should clear the cache")
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindLeaf:      "leaf",
		KindSequence:  "sequence",
		KindMapping:   "mapping",
		KindComposite: "composite",
		KindInvalid:   "invalid",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}

type scanned struct {
	Name   string
	Hidden string `settings:"-"`
	note   string
}

func TestScanComposite_FromRegistry(t *testing.T) {
	sentinel.Inspect[scanned]()

	meta := scanComposite(reflect.TypeFor[scanned]())
	if meta.FQDN != "github.com/zoobzio/settings.scanned" {
		t.Errorf("FQDN = %q, registry entry not used", meta.FQDN)
	}
	if len(meta.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(meta.Fields))
	}
	if meta.Fields[1].Tags[tagName] != "-" {
		t.Errorf("Hidden tags = %v", meta.Fields[1].Tags)
	}
	if meta.Fields[2].Name != "note" || meta.Fields[2].Index[0] != 2 {
		t.Errorf("unexported member = %+v", meta.Fields[2])
	}
}

func TestScanComposite_ByHand(t *testing.T) {
	sentinel.Inspect[scanned]()

	// Same registry name as the package-level type, different type.
	type scanned struct {
		Other int `settings:"-"`
		quiet bool
	}

	tests := []struct {
		name string
		typ  reflect.Type
	}{
		{"shadowed name", reflect.TypeFor[scanned]()},
		{"unnamed", reflect.TypeFor[struct {
			Other int `settings:"-"`
			quiet bool
		}]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := scanComposite(tt.typ)
			if meta.FQDN != "" {
				t.Errorf("FQDN = %q, want hand scan", meta.FQDN)
			}
			if len(meta.Fields) != 2 || meta.Fields[0].Name != "Other" || meta.Fields[1].Name != "quiet" {
				t.Fatalf("fields = %+v", meta.Fields)
			}
			if meta.Fields[0].Tags[tagName] != "-" || meta.Fields[0].Kind != sentinel.KindScalar {
				t.Errorf("Other = %+v", meta.Fields[0])
			}
		})
	}
}
