package pondconn

import (
	"fmt"
	"image/color"
	"io"

	"github.com/ctessum/geom/carto"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// MapLayer is one dataset drawn on a rendered map.
type MapLayer struct {
	// Data is the dataset to draw.
	Data *Dataset

	// LineColor is the outline color. Defaults to black.
	LineColor color.Color

	// LineWidth is the outline width. Defaults to 0.1 mm.
	LineWidth vg.Length

	// FillAttribute, when set, fills each feature using a linear color map
	// over this numeric attribute column and draws a legend for it.
	FillAttribute string
}

// RenderOptions configures map rendering.
type RenderOptions struct {
	Width  vg.Length
	Height vg.Length
	DPI    int

	// LegendHeight is the strip reserved at the bottom of the canvas for
	// color-map legends. Only used when a layer has a FillAttribute.
	LegendHeight vg.Length
}

// DefaultRenderOptions returns render options for a 15 x 12 cm map at 300 DPI.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:        15 * vg.Centimeter,
		Height:       12 * vg.Centimeter,
		DPI:          300,
		LegendHeight: 0.9 * vg.Centimeter,
	}
}

// RenderMap draws the given layers onto a shared canvas, in order, and writes
// the result to w as a PNG. The map extent is the union of the layer bounds.
func RenderMap(w io.Writer, opts RenderOptions, layers ...MapLayer) error {
	if len(layers) == 0 {
		return fmt.Errorf("render: no layers")
	}

	var (
		haveLegend bool
		haveBounds bool
		bounds     Bounds
	)
	for _, layer := range layers {
		if layer.Data.FeatureCount() == 0 {
			continue
		}
		if !haveBounds {
			bounds = layer.Data.Bounds()
			haveBounds = true
		} else {
			bounds = bounds.Union(layer.Data.Bounds())
		}
		if layer.FillAttribute != "" {
			haveLegend = true
		}
	}
	if !haveBounds {
		return fmt.Errorf("render: all layers are empty")
	}

	img := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI))
	dc := draw.New(img)
	var legendc draw.Canvas
	if haveLegend {
		legendc = draw.Crop(dc, 0, 0, 0, opts.LegendHeight-dc.Max.Y+dc.Min.Y)
		dc = draw.Crop(dc, 0, 0, opts.LegendHeight, 0)
	}

	m := carto.NewCanvas(bounds.MaxY, bounds.MinY, bounds.MaxX, bounds.MinX, dc)

	for _, layer := range layers {
		if layer.Data.FeatureCount() == 0 {
			continue
		}

		lineColor := layer.LineColor
		if lineColor == nil {
			lineColor = color.Black
		}
		lineWidth := layer.LineWidth
		if lineWidth == 0 {
			lineWidth = 0.1 * vg.Millimeter
		}
		lineStyle := draw.LineStyle{Width: lineWidth, Color: lineColor}

		if layer.FillAttribute == "" {
			for _, f := range layer.Data.Features() {
				m.DrawVector(f.Geometry(), color.NRGBA{}, lineStyle, draw.GlyphStyle{})
			}
			continue
		}

		values := make([]float64, 0, layer.Data.FeatureCount())
		for i := range layer.Data.Features() {
			v, _ := layer.Data.Features()[i].AttributeFloat(layer.FillAttribute)
			values = append(values, v)
		}
		cmap := carto.NewColorMap(carto.Linear)
		cmap.AddArray(values)
		cmap.Set()
		cmap.Legend(&legendc, layer.FillAttribute)

		for i, f := range layer.Data.Features() {
			fill := cmap.GetColor(values[i])
			lineStyle.Color = fill
			m.DrawVector(f.Geometry(), fill, lineStyle, draw.GlyphStyle{})
		}
	}

	pngc := vgimg.PngCanvas{Canvas: img}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("render: write png: %w", err)
	}
	return nil
}
