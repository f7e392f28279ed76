package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

// testCodec is a simple JSON codec for testing without importing settings/json.
type testCodec struct {
	marshals atomic.Int32
}

func (c *testCodec) ContentType() string { return "application/json" }

func (c *testCodec) Marshal(v any) ([]byte, error) {
	c.marshals.Add(1)
	return json.Marshal(v)
}

func (c *testCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// failingCodec fails every operation.
type failingCodec struct{}

func (c *failingCodec) ContentType() string { return "application/failing" }

func (c *failingCodec) Marshal(any) ([]byte, error) {
	return nil, errors.New("marshal refused")
}

func (c *failingCodec) Unmarshal([]byte, any) error {
	return errors.New("unmarshal refused")
}

type difficulty int

const (
	easy difficulty = iota
	normal
	hard
)

func (d difficulty) MarshalText() ([]byte, error) {
	switch d {
	case easy:
		return []byte("Easy"), nil
	case normal:
		return []byte("Normal"), nil
	case hard:
		return []byte("Hard"), nil
	}
	return nil, fmt.Errorf("unknown difficulty %d", int(d))
}

func (d *difficulty) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Easy":
		*d = easy
	case "Normal":
		*d = normal
	case "Hard":
		*d = hard
	default:
		return fmt.Errorf("unknown difficulty %q", text)
	}
	return nil
}

type audio struct {
	Volume float64
	Muted  bool
}

type profile struct {
	Name string
}

type config struct {
	Name    string
	Level   difficulty
	Count   int
	Audio   audio
	Profile *profile
	Recent  []string
	Binds   map[string]int
	note    string
}

func sampleConfig() *config {
	return &config{
		Name:    "main",
		Level:   hard,
		Count:   3,
		Audio:   audio{Volume: 0.5, Muted: true},
		Profile: &profile{Name: "p1"},
		Recent:  []string{"a", "b"},
		Binds:   map[string]int{"jump": 1, "run": 2},
		note:    "private",
	}
}

// leaf builds a leaf node.
func leaf(name, text string) *Node {
	return &Node{Name: name, Text: text}
}

// branch builds a node with children.
func branch(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// doc builds a document under the default root.
func doc(children ...*Node) *Node {
	return branch(RootName, children...)
}

// seq builds a sequence node from texts.
func seq(name string, texts ...string) *Node {
	n := &Node{Name: name}
	for i, text := range texts {
		n.Append(ItemName(i)).Text = text
	}
	return n
}

func mustMarshal(t testing.TB, n *Node) []byte {
	t.Helper()
	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	return data
}

func mustUnmarshal(t testing.TB, data []byte) *Node {
	t.Helper()
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		t.Fatalf("unmarshal document: %v", err)
	}
	return &n
}

// skipRecorder collects skip reports.
type skipRecorder struct {
	skips []*SkipError
}

func (r *skipRecorder) option() Option {
	return WithSkipHandler(func(s *SkipError) {
		r.skips = append(r.skips, s)
	})
}

func (r *skipRecorder) has(sentinel error, element string) bool {
	for _, s := range r.skips {
		if errors.Is(s, sentinel) && s.Element == element {
			return true
		}
	}
	return false
}
