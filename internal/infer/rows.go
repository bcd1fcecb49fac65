package infer

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultRowTolerance is the vertical distance, in page units, within which
// fragments are treated as one row.
const DefaultRowTolerance = 5.0

// CellSeparator joins the fragments of one reconstructed row.
const CellSeparator = "\t"

// ErrNoPages reports that no page of a document yielded any text.
var ErrNoPages = errors.New("no page yielded text")

// Fragment is a located piece of text on a page. Y grows towards the top of
// the page; a nil Y means the extractor could not place the fragment.
type Fragment struct {
	Text string   `json:"text"`
	Y    *float64 `json:"y,omitempty"`
}

// Page yields the text fragments of one document page in extraction order.
type Page interface {
	Fragments() ([]Fragment, error)
}

// StaticPage is a Page over fragments that are already in memory.
type StaticPage []Fragment

func (p StaticPage) Fragments() ([]Fragment, error) {
	return p, nil
}

// Row is one reconstructed line of cells.
type Row []string

type bucket struct {
	key   float64
	parts []string
}

// ReconstructRows groups the fragments of each page into horizontal bands
// and returns one row per band, top of page first, pages in order. Pages
// that fail or yield nothing are skipped; ErrNoPages is returned only when
// every page does.
func ReconstructRows(pages []Page, tolerance float64) ([]Row, error) {
	if tolerance <= 0 || math.IsNaN(tolerance) || math.IsInf(tolerance, 0) {
		tolerance = DefaultRowTolerance
	}

	var rows []Row
	yielded := 0
	for _, page := range pages {
		frags, err := pageFragments(page)
		if err != nil || len(frags) == 0 {
			continue
		}
		pageRows := pageToRows(frags, tolerance)
		if len(pageRows) == 0 {
			continue
		}
		yielded++
		rows = append(rows, pageRows...)
	}
	if yielded == 0 {
		return nil, ErrNoPages
	}
	return rows, nil
}

// pageFragments converts a panicking extractor into an error so one bad page
// cannot abort the document.
func pageFragments(p Page) (frags []Fragment, err error) {
	if p == nil {
		return nil, fmt.Errorf("nil page")
	}
	defer func() {
		if r := recover(); r != nil {
			frags, err = nil, fmt.Errorf("extract page: %v", r)
		}
	}()
	return p.Fragments()
}

func pageToRows(frags []Fragment, tolerance float64) []Row {
	var buckets []*bucket
	byKey := make(map[float64]*bucket)

	for _, f := range frags {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		key := bucketKey(f.Y, tolerance)
		b, ok := byKey[key]
		if !ok {
			b = &bucket{key: key}
			byKey[key] = b
			buckets = append(buckets, b)
		}
		b.parts = append(b.parts, text)
	}

	// Stable so fragments keep extraction order within a bucket.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].key > buckets[j].key
	})

	rows := make([]Row, 0, len(buckets))
	for _, b := range buckets {
		line := strings.Join(b.parts, CellSeparator)
		rows = append(rows, Row(strings.Split(line, CellSeparator)))
	}
	return rows
}

func bucketKey(y *float64, tolerance float64) float64 {
	if y == nil || math.IsNaN(*y) || math.IsInf(*y, 0) {
		return 0
	}
	key := math.Round(*y/tolerance) * tolerance
	if key == 0 {
		// Normalise -0 so it shares the default bucket.
		return 0
	}
	return key
}
