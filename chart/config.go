package chart

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Config holds presentation parameters.
type Config struct {
	Title  string
	XLabel string
	YLabel string

	XMin, XMax float64
	YMin, YMax float64

	// Ticks are placed at Start + n*Step inside [Min, Max].
	XTickStart, XTickStep float64
	YTickStart, YTickStep float64

	Width vg.Length
	// EqualAspect derives the height so one data unit has the same length
	// on both axes; otherwise the height is 3/4 of the width.
	EqualAspect bool
}

// DefaultConfig returns the demo presentation.
func DefaultConfig() Config {
	return Config{
		Title:       "k-NN nearest neighbor search",
		XLabel:      "X",
		YLabel:      "Y",
		XMin:        0,
		XMax:        8.5,
		YMin:        1.5,
		YMax:        8.5,
		XTickStart:  0,
		XTickStep:   1,
		YTickStart:  1,
		YTickStep:   1,
		Width:       8 * vg.Inch,
		EqualAspect: true,
	}
}

// Height returns the canvas height.
func (c Config) Height() vg.Length {
	if c.EqualAspect && c.XMax > c.XMin && c.YMax > c.YMin {
		return vg.Length(float64(c.Width) * (c.YMax - c.YMin) / (c.XMax - c.XMin))
	}
	return c.Width * 3 / 4
}

// XTicks returns the x-axis ticks.
func (c Config) XTicks() plot.ConstantTicks { return ticks(c.XTickStart, c.XTickStep, c.XMin, c.XMax) }

// YTicks returns the y-axis ticks.
func (c Config) YTicks() plot.ConstantTicks { return ticks(c.YTickStart, c.YTickStep, c.YMin, c.YMax) }

func ticks(start, step, min, max float64) plot.ConstantTicks {
	if step <= 0 {
		return nil
	}
	var out plot.ConstantTicks
	for n := 0; ; n++ {
		v := start + float64(n)*step
		if v > max+1e-9 {
			break
		}
		if v < min-1e-9 {
			continue
		}
		v = math.Round(v*1e9) / 1e9
		out = append(out, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)})
	}
	return out
}
