package format

import (
	"strings"
	"testing"
)

func TestToHTMLBold(t *testing.T) {
	got := ToHTML("**Crop Rotation** helps soil")
	if !strings.Contains(got, `<strong style=`) {
		t.Errorf("expected styled <strong>, got %q", got)
	}
	if !strings.Contains(got, ">Crop Rotation</strong>") {
		t.Errorf("bold content lost: %q", got)
	}
	if strings.Contains(got, "**") {
		t.Errorf("markdown markers left behind: %q", got)
	}
}

func TestToHTMLBullets(t *testing.T) {
	got := ToHTML("• Test soil pH\n• Add compost")
	if strings.Count(got, "<div style=") != 2 {
		t.Errorf("expected two bullet rows, got %q", got)
	}
	if !strings.Contains(got, ">Test soil pH</div>") {
		t.Errorf("bullet content lost: %q", got)
	}
}

func TestToHTMLNumberedList(t *testing.T) {
	got := ToHTML("1. Plough the field\n2. Sow the seed")
	if !strings.Contains(got, ">1.</span>") || !strings.Contains(got, ">2.</span>") {
		t.Errorf("numbered markers missing: %q", got)
	}
	if !strings.Contains(got, "Plough the field</div>") {
		t.Errorf("numbered content lost: %q", got)
	}
}

func TestToHTMLLineBreaks(t *testing.T) {
	got := ToHTML("first\nsecond")
	if !strings.Contains(got, "first<br>second") {
		t.Errorf("newline not converted: %q", got)
	}
}

func TestToHTMLCollapsesExcessBreaks(t *testing.T) {
	got := ToHTML("a\n\n\n\nb")
	if strings.Contains(got, "<br><br><br>") {
		t.Errorf("runs of breaks not collapsed: %q", got)
	}
	if !strings.Contains(got, "a<br><br>b") {
		t.Errorf("expected double break between paragraphs: %q", got)
	}
}

func TestToHTMLEmpty(t *testing.T) {
	if got := ToHTML(""); got != "" {
		t.Errorf("empty input must stay empty, got %q", got)
	}
}

func TestAttributionEmpty(t *testing.T) {
	got := Attribution(nil)
	if got != "" {
		t.Errorf("no datasets must render nothing, got %q", got)
	}
	got = Attribution([]string{})
	if got != "" {
		t.Errorf("empty dataset list must render nothing, got %q", got)
	}
}

func TestAttributionNeverPrintsPlaceholder(t *testing.T) {
	for _, datasets := range [][]string{nil, {}} {
		got := Attribution(datasets)
		for _, forbidden := range []string{"None", "unavailable"} {
			if strings.Contains(got, forbidden) {
				t.Errorf("attribution printed placeholder %q: %q", forbidden, got)
			}
		}
	}
}

func TestAttributionLists(t *testing.T) {
	got := Attribution([]string{"NASA POWER", "NASA SMAP"})
	if !strings.Contains(got, "NASA dataset(s) used:</strong> NASA POWER, NASA SMAP") {
		t.Errorf("attribution missing dataset names: %q", got)
	}
	if !strings.Contains(got, "🛰️") {
		t.Errorf("attribution missing satellite marker: %q", got)
	}
}

func TestRenderPlainTextPassthrough(t *testing.T) {
	// A plain sentence with no markup and no datasets must come back
	// byte-identical.
	in := "Please ask questions related to agriculture only."
	if got := Render(in, nil); got != in {
		t.Errorf("Render altered plain text: %q", got)
	}
}

func TestRenderAppendsAttribution(t *testing.T) {
	got := Render("**Soil Health**", []string{"NASA MODIS"})
	if !strings.Contains(got, "NASA MODIS") {
		t.Errorf("attribution missing: %q", got)
	}
	if !strings.HasPrefix(got, "<strong") {
		t.Errorf("formatted body missing: %q", got)
	}
}
