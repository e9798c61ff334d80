// Package charts renders exploratory time series figures with gonum/plot.
//
// Every function takes an explicit Size; there is no package-level plotting
// state. Figures are grids of plots that are rendered to PNG on demand:
//
//	figs, err := charts.Decomposition(series, 365, charts.DefaultSize())
//	if err != nil {
//	    return err
//	}
//	for i, fig := range figs {
//	    fig.Save(fmt.Sprintf("decomposition-%d.png", i))
//	}
package charts

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Size is the physical size and resolution of a rendered figure.
type Size struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// DefaultSize is 16x8 inches at 120 dpi.
func DefaultSize() Size {
	return Size{Width: 16 * vg.Inch, Height: 8 * vg.Inch, DPI: 120}
}

func (s Size) withDefaults() Size {
	d := DefaultSize()
	if s.Width <= 0 {
		s.Width = d.Width
	}
	if s.Height <= 0 {
		s.Height = d.Height
	}
	if s.DPI <= 0 {
		s.DPI = d.DPI
	}
	return s
}

var errEmptyFigure = errors.New("figure has no plots")

// Figure is a grid of plots with an optional title above the grid.
type Figure struct {
	Title string
	Plots [][]*plot.Plot
	Size  Size
}

func newFigure(title string, rows, cols int, size Size) *Figure {
	plots := make([][]*plot.Plot, rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, cols)
		for j := range plots[i] {
			plots[i][j] = plot.New()
		}
	}
	return &Figure{Title: title, Plots: plots, Size: size.withDefaults()}
}

// Rows returns the number of plot rows.
func (f *Figure) Rows() int { return len(f.Plots) }

// Cols returns the number of plot columns.
func (f *Figure) Cols() int {
	if len(f.Plots) == 0 {
		return 0
	}
	return len(f.Plots[0])
}

// Render draws the figure onto a new image canvas.
func (f *Figure) Render() (*vgimg.Canvas, error) {
	if f.Rows() == 0 || f.Cols() == 0 {
		return nil, errEmptyFigure
	}
	size := f.Size.withDefaults()

	img := vgimg.NewWith(
		vgimg.UseWH(size.Width, size.Height),
		vgimg.UseDPI(size.DPI),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(img)

	if f.Title != "" {
		sty := titleStyle()
		height := sty.Height(f.Title)
		pad := vg.Points(6)
		dc.FillText(sty, vg.Point{X: dc.X(0.5), Y: dc.Max.Y - pad}, f.Title)
		dc = draw.Crop(dc, 0, 0, 0, -(height + 2*pad))
	}

	tiles := draw.Tiles{
		Rows:      f.Rows(),
		Cols:      f.Cols(),
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	canvases := plot.Align(f.Plots, tiles, dc)
	for i := range f.Plots {
		for j, p := range f.Plots[i] {
			if p != nil {
				p.Draw(canvases[i][j])
			}
		}
	}
	return img, nil
}

// WriteTo writes the figure to w as a PNG image.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	img, err := f.Render()
	if err != nil {
		return 0, err
	}
	return vgimg.PngCanvas{Canvas: img}.WriteTo(w)
}

// Save writes the figure to a PNG file.
func (f *Figure) Save(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	buf := bufio.NewWriter(file)
	if _, err := f.WriteTo(buf); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return buf.Flush()
}

func titleStyle() text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, vg.Points(16)),
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}
}
