package printer

import (
	"bytes"
	"fmt"
	"strconv"
)

// Letter size in points.
const (
	pageWidth  = 612
	pageHeight = 792
)

// Layout places line i at Top + i*LineHeight below the top edge and
// LeftMargin from the left edge, in points.
type Layout struct {
	LeftMargin float64
	Top        float64
	LineHeight float64
	FontSize   float64
}

func DefaultLayout() Layout {
	return Layout{LeftMargin: 36, Top: 36, LineHeight: 14, FontSize: 10}
}

func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.LeftMargin <= 0 {
		l.LeftMargin = d.LeftMargin
	}
	if l.Top <= 0 {
		l.Top = d.Top
	}
	if l.LineHeight <= 0 {
		l.LineHeight = d.LineHeight
	}
	if l.FontSize <= 0 {
		l.FontSize = d.FontSize
	}
	return l
}

// Position returns the baseline of line i in PostScript coordinates,
// where y grows upward from the bottom edge.
func (l Layout) Position(i int) (x, y float64) {
	return l.LeftMargin, pageHeight - l.Top - l.FontSize - float64(i)*l.LineHeight
}

// PostScript renders job as a one page document. Lines that would fall
// below the bottom margin are dropped.
func PostScript(job Job, l Layout) []byte {
	l = l.withDefaults()

	var b bytes.Buffer
	b.WriteString("%!PS-Adobe-3.0\n")
	fmt.Fprintf(&b, "%%%%Title: %s\n", job.Title)
	fmt.Fprintf(&b, "%%%%BoundingBox: 0 0 %d %d\n", pageWidth, pageHeight)
	b.WriteString("%%Pages: 1\n%%EndComments\n")
	b.WriteString("%%Page: 1 1\n")
	fmt.Fprintf(&b, "/Courier findfont %s scalefont setfont\n", num(l.FontSize))

	for i, line := range job.Lines {
		x, y := l.Position(i)
		if y < l.Top {
			break
		}
		if line == "" {
			continue
		}
		fmt.Fprintf(&b, "%s %s moveto (%s) show\n", num(x), num(y), escape(line))
	}

	b.WriteString("showpage\n%%EOF\n")
	return b.Bytes()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func escape(s string) string {
	var b bytes.Buffer
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(' || c == ')' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x20 || c > 0x7e:
			fmt.Fprintf(&b, "\\%03o", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
