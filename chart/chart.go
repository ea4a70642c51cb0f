package chart

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/viant/knn/vector"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNot2D is returned for points that are not two-dimensional.
var ErrNot2D = errors.New("chart: points must be 2D")

var (
	pointColor    = color.RGBA{B: 255, A: 255}
	queryColor    = color.RGBA{R: 255, A: 255}
	neighborColor = color.RGBA{G: 128, A: 255}
	lineColor     = color.Black
)

// Render builds the chart. Layers from bottom to top: grid, dashed query
// lines, all points, neighbors, query.
func Render(points vector.Points, query vector.Point, neighbors vector.Points, cfg Config) (*plot.Plot, error) {
	if err := check2D(points, query, neighbors); err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = cfg.XLabel
	p.Y.Label.Text = cfg.YLabel
	p.Add(plotter.NewGrid())

	for _, n := range neighbors {
		line, err := plotter.NewLine(plotter.XYs{{X: query[0], Y: query[1]}, {X: n[0], Y: n[1]}})
		if err != nil {
			return nil, fmt.Errorf("chart: line: %w", err)
		}
		line.LineStyle.Color = lineColor
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
	}

	all, err := scatter(points, pointColor, draw.CircleGlyph{}, vg.Points(4.5))
	if err != nil {
		return nil, err
	}
	query2D, err := scatter(vector.Points{query}, queryColor, draw.CrossGlyph{}, vg.Points(6))
	if err != nil {
		return nil, err
	}
	p.Add(all)
	p.Legend.Add("Points", all)
	p.Legend.Add("Query point", query2D)
	if len(neighbors) > 0 {
		near, err := scatter(neighbors, neighborColor, draw.CircleGlyph{}, vg.Points(5))
		if err != nil {
			return nil, err
		}
		p.Add(near)
		p.Legend.Add("Nearest neighbors", near)
	}
	p.Add(query2D)
	p.Legend.Top = true

	// Fixed ranges are set after Add, which widens axes to the data.
	p.X.Min, p.X.Max = cfg.XMin, cfg.XMax
	p.Y.Min, p.Y.Max = cfg.YMin, cfg.YMax
	p.X.Tick.Marker = cfg.XTicks()
	p.Y.Tick.Marker = cfg.YTicks()
	return p, nil
}

func scatter(points vector.Points, c color.Color, shape draw.GlyphDrawer, radius vg.Length) (*plotter.Scatter, error) {
	xs, ys := points.Column(0), points.Column(1)
	xys := make(plotter.XYs, len(points))
	for i := range xys {
		xys[i].X, xys[i].Y = xs[i], ys[i]
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("chart: scatter: %w", err)
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Radius = radius
	return s, nil
}

func check2D(points vector.Points, query vector.Point, neighbors vector.Points) error {
	if len(query) != 2 {
		return fmt.Errorf("%w: query has %d coordinates", ErrNot2D, len(query))
	}
	for _, set := range []vector.Points{points, neighbors} {
		for i, p := range set {
			if len(p) != 2 {
				return fmt.Errorf("%w: point %d has %d coordinates", ErrNot2D, i, len(p))
			}
		}
	}
	return nil
}
