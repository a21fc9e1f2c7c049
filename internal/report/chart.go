package report

import (
	"fmt"
	"math"
	"strconv"

	"hubstat/internal/summary"
)

const (
	pieSize   = 220
	pieRadius = 100
)

var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Slice is one wedge of a pie chart.
type Slice struct {
	Label   string
	Value   int
	Percent string
	Color   string
	Path    string
	Full    bool
}

// Pie is a rendered distribution.
type Pie struct {
	Title  string
	Column string
	Size   int
	Center int
	Radius int
	Slices []Slice
}

// NewPie lays out dist as SVG wedges. Wedges start at twelve o'clock and run
// clockwise in distribution order.
func NewPie(dist summary.Distribution) Pie {
	pie := Pie{
		Title:  dist.Title,
		Column: dist.Column,
		Size:   pieSize,
		Center: pieSize / 2,
		Radius: pieRadius,
	}
	if dist.Total == 0 {
		return pie
	}

	cx, cy, r := float64(pie.Center), float64(pie.Center), float64(pie.Radius)
	angle := -math.Pi / 2
	for i, count := range dist.Counts {
		slice := Slice{
			Label:   count.Label,
			Value:   count.Value,
			Percent: strconv.FormatFloat(count.Share*100, 'f', 1, 64) + "%",
			Color:   palette[i%len(palette)],
		}
		if count.Value == dist.Total {
			slice.Full = true
			pie.Slices = append(pie.Slices, slice)
			break
		}
		sweep := count.Share * 2 * math.Pi
		end := angle + sweep
		largeArc := 0
		if sweep > math.Pi {
			largeArc = 1
		}
		slice.Path = fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d 1 %s %s Z",
			coord(cx), coord(cy),
			coord(cx+r*math.Cos(angle)), coord(cy+r*math.Sin(angle)),
			coord(r), coord(r), largeArc,
			coord(cx+r*math.Cos(end)), coord(cy+r*math.Sin(end)),
		)
		pie.Slices = append(pie.Slices, slice)
		angle = end
	}
	return pie
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Word is a sized word cloud entry.
type Word struct {
	Text     string
	Weight   int
	FontSize int
	Color    string
}

const (
	minFont = 12
	maxFont = 40
)

// NewWords scales term weights linearly onto font sizes.
func NewWords(terms []summary.Term) []Word {
	if len(terms) == 0 {
		return nil
	}
	lo, hi := terms[0].Weight, terms[0].Weight
	for _, term := range terms {
		lo = min(lo, term.Weight)
		hi = max(hi, term.Weight)
	}
	words := make([]Word, 0, len(terms))
	for i, term := range terms {
		size := maxFont
		if hi > lo {
			size = minFont + (maxFont-minFont)*(term.Weight-lo)/(hi-lo)
		}
		words = append(words, Word{
			Text:     term.Text,
			Weight:   term.Weight,
			FontSize: size,
			Color:    palette[i%len(palette)],
		})
	}
	return words
}
