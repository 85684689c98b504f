package connect

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestAppendDuplicatesSurfaces(t *testing.T) {
	p := NewPage("test")

	id1, err := p.Append(VisualSelector, "bar", []byte("<svg></svg>"))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	id2, err := p.Append(VisualSelector, "bar", []byte("<svg></svg>"))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if id1 == id2 {
		t.Errorf("each appended surface must get its own id")
	}
	if got := len(p.Surfaces(VisualSelector)); got != 2 {
		t.Errorf("expected 2 surfaces after two appends, got %d", got)
	}
}

func TestAppendUnknownMount(t *testing.T) {
	p := NewPage("test", VisualSelector)
	if p.Has(LegendSelector) {
		t.Fatalf("page must only have the requested mounts")
	}
	_, err := p.Append(LegendSelector, "legend", []byte("<svg></svg>"))
	if !errors.Is(err, ErrMountNotFound) {
		t.Errorf("expected ErrMountNotFound, got %v", err)
	}
}

func TestRender(t *testing.T) {
	p := NewPage("Sentiment <charts>")
	if _, err := p.Append(VisualSelector, "donut", []byte(`<svg width="800"><path data-tooltip="a&lt;br&gt;b"></path></svg>`)); err != nil {
		t.Fatal(err)
	}
	p.AppendBody(`<div class="tooltip"></div>`)

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<div id="visual">`,
		`<div class="legend">`,
		`<svg width="800">`,
		`<div class="tooltip"></div>`,
		`Sentiment &lt;charts&gt;`,
		`data-kind="donut"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page misses %q", want)
		}
	}
}

func TestAppendStripsXMLDeclaration(t *testing.T) {
	p := NewPage("test")
	if _, err := p.Append(VisualSelector, "bar", []byte("<?xml version=\"1.0\"?>\n<svg></svg>")); err != nil {
		t.Fatal(err)
	}
	if got := string(p.Surfaces(VisualSelector)[0].Markup); got != "<svg></svg>" {
		t.Errorf("unexpected markup %q", got)
	}
}
