// Package diagram renders expr.Ref values as Tromp diagrams
// (https://tromp.github.io/cl/diagrams.html): abstractions are horizontal
// lines, bound variables are vertical lines dropping from their binder,
// and application is the horizontal line joining two subterms.
package diagram

import (
	"fmt"
	"strings"

	"github.com/go-lambda/blc/expr"
)

// Diagram is a fixed grid of box-drawing runes.
type Diagram struct {
	Grid   [][]rune
	Width  int
	Height int
}

func newDiagram(width, height int) *Diagram {
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}
	return &Diagram{Grid: grid, Width: width, Height: height}
}

func (d *Diagram) set(row, col int, ch rune) {
	if row >= 0 && row < d.Height && col >= 0 && col < d.Width {
		d.Grid[row][col] = ch
	}
}

func (d *Diagram) get(row, col int) rune {
	if row >= 0 && row < d.Height && col >= 0 && col < d.Width {
		return d.Grid[row][col]
	}
	return ' '
}

// ToUnicode renders the grid as box-drawing characters, one line per row.
func (d *Diagram) ToUnicode() string {
	var sb strings.Builder
	for i, row := range d.Grid {
		for _, ch := range row {
			sb.WriteRune(ch)
		}
		if i < len(d.Grid)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// ToSVG renders the grid as an SVG line drawing.
func (d *Diagram) ToSVG() string {
	const cellWidth = 20
	const cellHeight = 20

	width := d.Width * cellWidth
	height := d.Height * cellHeight

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height)
	sb.WriteString("\n")
	sb.WriteString(`<style>line{stroke:black;stroke-width:2;stroke-linecap:round;}</style>`)
	sb.WriteString("\n")

	for row := 0; row < d.Height; row++ {
		for col := 0; col < d.Width; col++ {
			ch := d.Grid[row][col]
			x := col*cellWidth + cellWidth/2
			y := row*cellHeight + cellHeight/2

			switch ch {
			case '─':
				fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d"/>`, col*cellWidth, y, (col+1)*cellWidth, y)
				sb.WriteString("\n")
			case '│':
				fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d"/>`, x, row*cellHeight, x, (row+1)*cellHeight)
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// binder records where a Lambda's abstraction line was drawn, so a Term
// referring to it later can connect back.
type binder struct {
	col int
	row int
}

// drawState tracks binders by de Bruijn depth: binders[len-k] is the
// lambda that Term(k) refers to at the current point in the walk.
type drawState struct {
	binders []binder
	col     int
}

// New renders e (which must be free of GlobalRef — callers should reduce
// or reject dangling globals first) into a Diagram.
func New(e expr.Ref) (*Diagram, error) {
	if containsGlobal(e) {
		return nil, fmt.Errorf("diagram: cannot render an expression containing an unresolved global reference")
	}

	width, height := dimensions(e, 0)
	width += 2
	height += 2

	d := newDiagram(width, height)
	st := &drawState{col: 1}
	draw(d, e, st, 1)
	return d, nil
}

func containsGlobal(e expr.Ref) bool {
	switch e.Kind() {
	case expr.KindGlobal:
		return true
	case expr.KindLambda:
		return containsGlobal(e.Body())
	case expr.KindApply:
		return containsGlobal(e.Left()) || containsGlobal(e.Right())
	default:
		return false
	}
}

func dimensions(e expr.Ref, depth int) (width, height int) {
	switch e.Kind() {
	case expr.KindTerm:
		return 2, depth + 1
	case expr.KindLambda:
		w, h := dimensions(e.Body(), depth+1)
		return w + 2, maxInt(h, depth+2)
	case expr.KindApply:
		w1, h1 := dimensions(e.Left(), depth)
		w2, h2 := dimensions(e.Right(), depth)
		return w1 + w2 + 2, maxInt(h1, h2)
	default:
		return 2, depth + 1
	}
}

func draw(d *Diagram, e expr.Ref, st *drawState, row int) int {
	switch e.Kind() {
	case expr.KindTerm:
		col := st.col
		st.col += 2

		// A bound occurrence's line should reach up to the row its
		// binder was drawn on, not just down to the bottom of the
		// diagram; a free variable (index beyond the binder stack)
		// falls back to the occurrence's own row.
		binderRow, binderCol := row, col
		if k := int(e.Index()); k >= 1 && k <= len(st.binders) {
			b := st.binders[len(st.binders)-k]
			binderRow, binderCol = b.row, b.col
		}

		for r := binderRow; r < d.Height-1; r++ {
			d.set(r, col, '│')
		}
		if binderCol != col {
			lo, hi := binderCol, col
			if lo > hi {
				lo, hi = hi, lo
			}
			for c := lo; c <= hi; c++ {
				if d.get(binderRow, c) == ' ' {
					d.set(binderRow, c, '─')
				}
			}
		}
		return col

	case expr.KindLambda:
		startCol := st.col
		for c := startCol; c < startCol+4 && c < d.Width; c++ {
			d.set(row, c, '─')
		}
		st.col = startCol + 1
		st.binders = append(st.binders, binder{col: startCol, row: row})
		draw(d, e.Body(), st, row+1)
		st.binders = st.binders[:len(st.binders)-1]
		return startCol

	case expr.KindApply:
		leftCol := draw(d, e.Left(), st, row)
		rightCol := draw(d, e.Right(), st, row)
		if leftCol < rightCol {
			for c := leftCol; c <= rightCol; c++ {
				if d.get(row, c) == ' ' {
					d.set(row, c, '─')
				}
			}
		}
		return leftCol

	default:
		return st.col
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
