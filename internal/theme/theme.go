// Package theme maps the logical style keys used by widgets to emitted class
// names and resolves those classes to terminal styles.
package theme

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

//go:embed app.css
var appCSS string

// Prefix is prepended to every logical key to form the emitted class name.
const Prefix = "App-m__"

// Keys used by the demo widgets.
const (
	Container = "container"
	Dot       = "dot"
	Hover     = "hover"
)

// Decl is a single CSS declaration.
type Decl struct {
	Property string
	Value    string
}

type rule struct {
	key   string
	decls []Decl
}

// Theme is a parsed class-only stylesheet.
type Theme struct {
	rules  []*rule
	byKey  map[string]*rule
	byName map[string]*rule
}

// Default returns the built-in theme.
func Default() *Theme {
	t, err := Parse(appCSS)
	if err != nil {
		panic("theme: built-in stylesheet: " + err.Error())
	}
	return t
}

// Load parses the stylesheet at path.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}
	t, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme %s: %w", path, err)
	}
	return t, nil
}

// Parse reads rules whose selectors are single classes (".dot"). Other rules
// are ignored. Declarations of the same class accumulate in source order.
func Parse(src string) (*Theme, error) {
	sheet, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	t := &Theme{byKey: map[string]*rule{}, byName: map[string]*rule{}}
	for _, r := range sheet.Rules {
		if r.Kind != css.QualifiedRule {
			continue
		}
		for _, sel := range r.Selectors {
			key, ok := classSelector(sel)
			if !ok {
				continue
			}
			ru := t.byKey[key]
			if ru == nil {
				ru = &rule{key: key}
				t.byKey[key] = ru
				t.byName[Prefix+key] = ru
				t.rules = append(t.rules, ru)
			}
			for _, d := range r.Declarations {
				if strings.HasPrefix(d.Value, "#") {
					if _, err := colorful.Hex(d.Value); err != nil {
						return nil, fmt.Errorf(".%s %s: %w", key, d.Property, err)
					}
				}
				ru.decls = append(ru.decls, Decl{Property: d.Property, Value: d.Value})
			}
		}
	}
	if len(t.rules) == 0 {
		return nil, errors.New("no class rules found")
	}
	return t, nil
}

func classSelector(sel string) (string, bool) {
	sel = strings.TrimSpace(sel)
	if !strings.HasPrefix(sel, ".") {
		return "", false
	}
	name := sel[1:]
	if name == "" || strings.ContainsAny(name, " .:#[>+~,") {
		return "", false
	}
	return name, true
}

// Classes maps logical keys to emitted class names. Empty and unknown keys
// are dropped.
func (t *Theme) Classes(keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := t.byKey[k]; ok {
			out = append(out, Prefix+k)
		}
	}
	return out
}

// Is reports whether class is the emitted name of key.
func (t *Theme) Is(class, key string) bool {
	r, ok := t.byName[class]
	return ok && r.key == key
}

// Decls returns the declarations for the given emitted classes, later
// classes overriding earlier ones.
func (t *Theme) Decls(classes []string) map[string]string {
	out := map[string]string{}
	for _, c := range classes {
		r, ok := t.byName[c]
		if !ok {
			continue
		}
		for _, d := range r.decls {
			out[d.Property] = d.Value
		}
	}
	return out
}

// Style resolves the text style of the given classes: foreground from
// color, background from background-color or background, bold from
// font-weight. Without color, a foreground readable on the background is
// chosen.
func (t *Theme) Style(classes []string) lipgloss.Style {
	d := t.Decls(classes)
	s := lipgloss.NewStyle()
	bg, hasBg := background(d)
	if hasBg {
		s = s.Background(lipgloss.Color(bg.Hex()))
	}
	if fg, ok := hexColor(d["color"]); ok {
		s = s.Foreground(lipgloss.Color(fg.Hex()))
	} else if hasBg {
		s = s.Foreground(lipgloss.Color(contrast(bg)))
	}
	if bold(d["font-weight"]) {
		s = s.Bold(true)
	}
	return s
}

// Fill resolves the style used to paint a shape with the given classes: the
// CSS background becomes the glyph colour.
func (t *Theme) Fill(classes []string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if bg, ok := background(t.Decls(classes)); ok {
		s = s.Foreground(lipgloss.Color(bg.Hex()))
	}
	return s
}

// Stylesheet renders the theme with emitted class names.
func (t *Theme) Stylesheet() string {
	var b strings.Builder
	for i, r := range t.rules {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, ".%s%s {\n", Prefix, r.key)
		for _, d := range r.decls {
			fmt.Fprintf(&b, "\t%s: %s;\n", d.Property, d.Value)
		}
		b.WriteString("}\n")
	}
	return b.String()
}

func background(d map[string]string) (colorful.Color, bool) {
	if c, ok := hexColor(d["background-color"]); ok {
		return c, true
	}
	for _, f := range strings.Fields(d["background"]) {
		if c, ok := hexColor(f); ok {
			return c, true
		}
	}
	return colorful.Color{}, false
}

func hexColor(v string) (colorful.Color, bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "#") {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func contrast(bg colorful.Color) string {
	l, _, _ := bg.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

func bold(weight string) bool {
	weight = strings.TrimSpace(weight)
	if weight == "bold" || weight == "bolder" {
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}
