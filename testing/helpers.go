// Package testing provides test utilities for settings.
package testing

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/zoobzio/settings"
)

// Difficulty is an enumeration written by symbol.
type Difficulty int

// Difficulty values.
const (
	Easy Difficulty = iota
	Normal
	Hard
)

var difficultyNames = map[Difficulty]string{
	Easy:   "Easy",
	Normal: "Normal",
	Hard:   "Hard",
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	name, ok := difficultyNames[d]
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %d", int(d))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	for v, name := range difficultyNames {
		if name == string(text) {
			*d = v
			return nil
		}
	}
	return fmt.Errorf("unknown difficulty %q", text)
}

// Audio is a nested composite of leaves.
type Audio struct {
	Master float64
	Music  float32
	Muted  bool
	Device string
}

// Profile is a composite reached through a pointer.
type Profile struct {
	Name    string
	Created time.Time
}

// Game is a settings root exercising every kind.
type Game struct {
	Title      string
	Level      Difficulty
	Audio      Audio
	Profile    *Profile
	Recent     []string
	Slots      [3]int
	Binds      map[string]string
	Volumes    map[Difficulty]float64
	Timeout    time.Duration
	Seed       uint64
	Blob       []byte
	History    []Audio
	secret     string
	Transient  string `settings:"-"`
	unexported Audio
}

// Secret returns the unexported secret slot.
func (g *Game) Secret() string { return g.secret }

// SetSecret sets the unexported secret slot.
func (g *Game) SetSecret(s string) { g.secret = s }

// NewGame returns a Game with every slot initialized to defaults.
func NewGame() *Game {
	return &Game{
		Title:   "untitled",
		Level:   Normal,
		Profile: &Profile{},
		Binds:   map[string]string{},
		Volumes: map[Difficulty]float64{},
	}
}

// SampleGame returns a fully populated Game.
func SampleGame() *Game {
	g := &Game{
		Title: "Night <Watch> & \"Co\"",
		Level: Hard,
		Audio: Audio{Master: 0.8, Music: 0.25, Muted: true, Device: "  default out  "},
		Profile: &Profile{
			Name:    "player one",
			Created: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		},
		Recent:  []string{"alpha", "beta", "gamma"},
		Slots:   [3]int{7, -2, 0},
		Binds:   map[string]string{"jump": "Space", "move left": "A", "1st": "F1"},
		Volumes: map[Difficulty]float64{Easy: 1, Hard: 0.5},
		Timeout: 90 * time.Second,
		Seed:    1<<63 + 11,
		Blob:    []byte{0, 1, 2, 254},
		History: []Audio{{Master: 1}, {Device: "hdmi"}},
	}
	g.secret = "hunter2"
	g.unexported = Audio{Device: "hidden"}
	return g
}

// SampleDocument returns a node tree covering leaves, sequences and
// names that needed escaping.
func SampleDocument() *settings.Node {
	doc := &settings.Node{Name: settings.RootName}
	doc.Append("Title").Text = "a < b & c"
	doc.Append("Spaced").Text = "  padded  "
	doc.Append("Empty")
	list := doc.Append("Recent")
	list.Append(settings.ItemName(0)).Text = "alpha"
	list.Append(settings.ItemName(1)).Text = "true"
	binds := doc.Append("Binds")
	binds.Append(settings.EncodeName("move left")).Text = "A"
	binds.Append(settings.EncodeName("1st")).Text = "F1"
	nested := binds.Append("nested")
	nested.Append("deep").Text = "42"
	return doc
}

// EqualNodes reports the first difference between two node trees, or "".
func EqualNodes(got, want *settings.Node) string {
	return diffNodes(got, want, want.Name)
}

func diffNodes(got, want *settings.Node, path string) string {
	switch {
	case got == nil || want == nil:
		if got != want {
			return fmt.Sprintf("%s: got %v, want %v", path, got, want)
		}
		return ""
	case got.Name != want.Name:
		return fmt.Sprintf("%s: name %q, want %q", path, got.Name, want.Name)
	case got.Text != want.Text:
		return fmt.Sprintf("%s: text %q, want %q", path, got.Text, want.Text)
	case len(got.Children) != len(want.Children):
		return fmt.Sprintf("%s: %d children, want %d", path, len(got.Children), len(want.Children))
	}
	for i := range want.Children {
		if d := diffNodes(got.Children[i], want.Children[i], path+"/"+want.Children[i].Name); d != "" {
			return d
		}
	}
	return ""
}

// SortChildren orders every child list by name, for codecs that do not
// preserve element order.
func SortChildren(n *settings.Node) {
	for i := 1; i < len(n.Children); i++ {
		for j := i; j > 0 && strings.Compare(n.Children[j-1].Name, n.Children[j].Name) > 0; j-- {
			n.Children[j-1], n.Children[j] = n.Children[j], n.Children[j-1]
		}
	}
	for _, c := range n.Children {
		SortChildren(c)
	}
}

// Skips collects skipped elements reported during import.
type Skips struct {
	List []*settings.SkipError
}

// Handler returns a skip handler recording into s.
func (s *Skips) Handler() func(*settings.SkipError) {
	return func(e *settings.SkipError) {
		s.List = append(s.List, e)
	}
}

// RequireNoSkips fails t if any element was skipped.
func (s *Skips) RequireNoSkips(t testing.TB) {
	t.Helper()
	for _, e := range s.List {
		t.Errorf("unexpected skip: %v", e)
	}
}
