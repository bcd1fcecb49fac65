package infer

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func y(v float64) *float64 { return &v }

type failingPage struct{}

func (failingPage) Fragments() ([]Fragment, error) {
	return nil, errors.New("corrupt content stream")
}

type panickingPage struct{}

func (panickingPage) Fragments() ([]Fragment, error) {
	panic("malformed font dictionary")
}

func TestReconstructRows_TopOfPageFirst(t *testing.T) {
	page := StaticPage{
		{Text: "Service One", Y: y(680)},
		{Text: "About Us", Y: y(700)},
		{Text: "What We Do", Y: y(701)},
		{Text: "Our Mission", Y: y(679)},
	}
	rows, err := ReconstructRows([]Page{page}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Row{
		{"About Us", "What We Do"},
		{"Service One", "Our Mission"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %q, want %q", rows, want)
	}
}

func TestReconstructRows_DiscardsBlankAndDefaultsMissingY(t *testing.T) {
	page := StaticPage{
		{Text: "  ", Y: y(500)},
		{Text: "Header", Y: y(500)},
		{Text: "Floating"},
		{Text: "Also Floating", Y: y(math.NaN())},
		{Text: "Footer", Y: y(-20)},
	}
	rows, err := ReconstructRows([]Page{page}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Row{
		{"Header"},
		{"Floating", "Also Floating"},
		{"Footer"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %q, want %q", rows, want)
	}
}

func TestReconstructRows_PagesConcatenateInOrder(t *testing.T) {
	p1 := StaticPage{{Text: "Page One", Y: y(10)}}
	p2 := StaticPage{{Text: "Page Two", Y: y(800)}}
	rows, err := ReconstructRows([]Page{p1, p2}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Row{{"Page One"}, {"Page Two"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %q, want %q", rows, want)
	}
}

func TestReconstructRows_SkipsFailedPages(t *testing.T) {
	good := StaticPage{{Text: "Home", Y: y(100)}}
	rows, err := ReconstructRows([]Page{failingPage{}, panickingPage{}, StaticPage{}, nil, good}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "Home" {
		t.Fatalf("expected the good page only, got %q", rows)
	}
}

func TestReconstructRows_AllPagesFail(t *testing.T) {
	cases := map[string][]Page{
		"none":    nil,
		"failing": {failingPage{}, panickingPage{}},
		"blank":   {StaticPage{{Text: " ", Y: y(1)}}},
	}
	for name, pages := range cases {
		t.Run(name, func(t *testing.T) {
			rows, err := ReconstructRows(pages, 5)
			if !errors.Is(err, ErrNoPages) {
				t.Fatalf("expected ErrNoPages, got %v", err)
			}
			if len(rows) != 0 {
				t.Errorf("expected no rows, got %q", rows)
			}
		})
	}
}

func TestReconstructRows_ToleranceDefaults(t *testing.T) {
	page := StaticPage{
		{Text: "A", Y: y(101)},
		{Text: "B", Y: y(99)},
	}
	for _, tol := range []float64{0, -1, math.Inf(1)} {
		rows, err := ReconstructRows([]Page{page}, tol)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 1 || len(rows[0]) != 2 {
			t.Errorf("tolerance %v: expected one row of two cells, got %q", tol, rows)
		}
	}
}

func TestFromPages_Table(t *testing.T) {
	page := StaticPage{
		{Text: "About Us", Y: y(700)},
		{Text: "What We Do", Y: y(700)},
		{Text: "Our Mission", Y: y(680)},
		{Text: "Service One", Y: y(680)},
		{Text: "> Vision", Y: y(660)},
	}
	res := FromPages([]Page{failingPage{}, page}, Options{})
	if res.Diagnostic != "" {
		t.Fatalf("unexpected diagnostic %q", res.Diagnostic)
	}
	assertShape(t, res.Config.PrimaryItems, []shape{
		{Label: "About Us", Children: []shape{
			{Label: "Our Mission", Children: []shape{{Label: "Vision"}}},
		}},
		{Label: "What We Do", Children: []shape{{Label: "Service One"}}},
	})
}

func TestFromPages_AllPagesFail(t *testing.T) {
	res := FromPages([]Page{failingPage{}, panickingPage{}}, Options{})
	if res.Diagnostic != DiagNoPages {
		t.Fatalf("expected %q, got %q", DiagNoPages, res.Diagnostic)
	}
	if len(res.Config.PrimaryItems) != 0 {
		t.Error("expected empty baseline")
	}
	assertValidConfig(t, res.Config)
}

func TestFromPages_HeadingFallbackSingleRoot(t *testing.T) {
	page := StaticPage{
		{Text: "Introduction", Y: y(800)},
		{Text: "About Us", Y: y(780)},
		{Text: "we help people every day.", Y: y(760)},
		{Text: "Get Involved", Y: y(740)},
		{Text: "Donate & Shop", Y: y(720)},
	}
	res := FromPages([]Page{page}, Options{})
	if res.Strategy != StrategyHeadings {
		t.Fatalf("expected strategy %q, got %q", StrategyHeadings, res.Strategy)
	}
	assertShape(t, res.Config.PrimaryItems, []shape{
		{Label: "Introduction", Children: []shape{
			{Label: "About Us"},
			{Label: "we help people every day."},
			{Label: "Get Involved"},
			{Label: "Donate & Shop"},
		}},
	})
}

func TestFromPages_NoHeadingDiagnoses(t *testing.T) {
	page := StaticPage{
		{Text: "lowercase only", Y: y(800)},
		{Text: "123 numbers", Y: y(780)},
	}
	res := FromPages([]Page{page}, Options{})
	if res.Diagnostic != DiagNoTable {
		t.Fatalf("expected %q, got %q", DiagNoTable, res.Diagnostic)
	}
}
