package ocr

import (
	"strings"
	"testing"

	"github.com/tsawler/veridoc/model"
)

func word(text string, x, y, conf float64) Word {
	return Word{Text: text, X: x, Y: y, Width: float64(len(text)) * 8, Height: 14, Confidence: conf}
}

func TestBuildPageMergesLines(t *testing.T) {
	// Two lines 30px apart, with small vertical jitter inside each line.
	words := []Word{
		word("montant", 120, 102, 91),
		word("Le", 50, 100, 95),
		word("1500", 220, 105, 88),
		word("euros", 270, 104, 90),
		word("duree", 50, 132, 85),
		word("12", 120, 130, 92),
		word("mois", 150, 133, 89),
	}

	page, conf := buildPage(1, 800, 600, words, Options{}.withDefaults())

	wantText := "Le montant 1500 euros\nduree 12 mois"
	if page.Text != wantText {
		t.Errorf("page text = %q, want %q", page.Text, wantText)
	}
	if page.Method != model.MethodOCR {
		t.Errorf("method = %q, want %q", page.Method, model.MethodOCR)
	}

	// One merged element per line, not one per word.
	if len(page.Elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(page.Elements))
	}

	first := page.Elements[0]
	if first.Text != "Le montant 1500 euros" {
		t.Errorf("first element text = %q", first.Text)
	}
	if first.X != 50 || first.Y != 100 {
		t.Errorf("first element origin = (%v, %v), want (50, 100)", first.X, first.Y)
	}
	// Union box: rightmost word "euros" ends at 270+40, lowest word
	// "1500" ends at 105+14.
	if first.Width != 260 || first.Height != 19 {
		t.Errorf("first element box = %vx%v, want 260x19", first.Width, first.Height)
	}
	if want := (95.0 + 91 + 88 + 90) / 4; first.Confidence != want {
		t.Errorf("first element confidence = %v, want %v", first.Confidence, want)
	}

	second := page.Elements[1]
	if second.Text != "duree 12 mois" {
		t.Errorf("second element text = %q", second.Text)
	}

	want := (91.0 + 95 + 88 + 90 + 85 + 92 + 89) / 7
	if diff := conf - want; diff > 0.001 || diff < -0.001 {
		t.Errorf("confidence = %v, want %v", conf, want)
	}
}

func TestBuildPageElementHoldsMultiWordFact(t *testing.T) {
	// Consecutive words with baseline jitter end up in one element, so a
	// multi-word party name is locatable by substring search.
	words := []Word{
		word("ACME", 50, 100, 90),
		word("SARL", 95, 102, 88),
	}

	page, _ := buildPage(1, 612, 792, words, Options{}.withDefaults())

	if len(page.Elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(page.Elements))
	}
	if !strings.Contains(page.Elements[0].Text, "ACME SARL") {
		t.Errorf("element text %q does not contain %q", page.Elements[0].Text, "ACME SARL")
	}
}

func TestBuildPageConfidenceFloor(t *testing.T) {
	words := []Word{
		word("clair", 50, 100, 80),
		word("bruit", 120, 100, 12), // below the default floor of 30
		word("net", 200, 100, 45),
	}

	page, conf := buildPage(1, 800, 600, words, Options{}.withDefaults())

	if page.Text != "clair net" {
		t.Errorf("page text = %q, want %q", page.Text, "clair net")
	}
	if len(page.Elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(page.Elements))
	}
	if want := (80.0 + 45) / 2; page.Elements[0].Confidence != want {
		t.Errorf("element confidence = %v, want %v", page.Elements[0].Confidence, want)
	}
	if want := (80.0 + 45) / 2; conf != want {
		t.Errorf("confidence = %v, want %v", conf, want)
	}
}

func TestBuildPageAllBelowFloor(t *testing.T) {
	words := []Word{
		word("x", 50, 100, 5),
		word("y", 80, 100, 10),
	}

	page, conf := buildPage(1, 800, 600, words, Options{}.withDefaults())

	if page.Text != "" || len(page.Elements) != 0 {
		t.Errorf("expected empty page, got %q with %d elements", page.Text, len(page.Elements))
	}
	if conf != 0 {
		t.Errorf("confidence = %v, want 0", conf)
	}
}

func TestMergeLinesGapBoundary(t *testing.T) {
	words := []Word{
		word("a", 10, 100, 90),
		word("b", 30, 109, 90), // within the gap, same line
		word("c", 10, 119, 90), // exactly at the gap from b, new line
	}

	lines := mergeLines(words, 10)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if len(lines[0]) != 2 || len(lines[1]) != 1 {
		t.Errorf("line sizes = %d, %d, want 2, 1", len(lines[0]), len(lines[1]))
	}
}

func TestMergeLinesDriftingBaseline(t *testing.T) {
	// Each word sits within the gap of its predecessor even though the
	// last one is far from the first: the whole run is one line.
	words := []Word{
		word("un", 10, 100, 90),
		word("deux", 40, 108, 90),
		word("trois", 90, 116, 90),
		word("quatre", 150, 124, 90),
	}

	lines := mergeLines(words, 10)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if len(lines[0]) != 4 {
		t.Errorf("line size = %d, want 4", len(lines[0]))
	}
}

func TestMergeLinesEmpty(t *testing.T) {
	if lines := mergeLines(nil, 10); lines != nil {
		t.Errorf("mergeLines(nil) = %v, want nil", lines)
	}
}

func TestDegradedPage(t *testing.T) {
	page := degradedPage(3, 800, 600)
	if page.Method != model.MethodOCRFailed {
		t.Errorf("method = %q, want %q", page.Method, model.MethodOCRFailed)
	}
	if page.Number != 3 || page.Text != "" || len(page.Elements) != 0 {
		t.Errorf("degraded page = %+v", page)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	if opts.ConfidenceFloor != DefaultConfidenceFloor {
		t.Errorf("floor = %v, want %v", opts.ConfidenceFloor, DefaultConfidenceFloor)
	}
	if opts.LineGap != DefaultLineGap {
		t.Errorf("line gap = %v, want %v", opts.LineGap, DefaultLineGap)
	}
	if opts.DPI != DefaultDPI {
		t.Errorf("dpi = %v, want %v", opts.DPI, DefaultDPI)
	}
	if got := opts.languageString(); got != strings.Join(DefaultLanguages, "+") {
		t.Errorf("languages = %q", got)
	}

	custom := Options{Languages: []string{"deu"}, ConfidenceFloor: 60, LineGap: 4, DPI: 150}.withDefaults()
	if custom.ConfidenceFloor != 60 || custom.LineGap != 4 || custom.DPI != 150 {
		t.Errorf("custom options overridden: %+v", custom)
	}
	if custom.languageString() != "deu" {
		t.Errorf("custom languages = %q", custom.languageString())
	}
}

func TestResultText(t *testing.T) {
	res := &Result{Pages: []model.Page{
		{Number: 1, Text: "premiere page"},
		{Number: 2, Text: ""}, // degraded
		{Number: 3, Text: "troisieme page"},
	}}
	if got := res.Text(); got != "premiere page\ntroisieme page" {
		t.Errorf("Text() = %q", got)
	}
}
