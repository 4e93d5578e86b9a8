package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/GoSim-25-26J-441/titanic-bn/internal/network"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/config"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/logger"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/utils"
)

// ErrEmptyGraph is returned when there is nothing to draw
var ErrEmptyGraph = errors.New("graph has no nodes")

const (
	// NodeRadius is the radius of a node disc in pixels
	NodeRadius  = 24
	arrowLength = 12.0
	arrowAngle  = 25 * math.Pi / 180
	// margin around the outermost nodes, in layout units
	margin = 0.5
)

var (
	nodeColor  = drawing.Color{R: 173, G: 216, B: 230, A: 255}
	edgeColor  = drawing.Color{R: 64, G: 64, B: 64, A: 255}
	labelColor = drawing.Color{R: 0, G: 0, B: 0, A: 255}
	padding    = chart.Box{Top: 60, Left: 40, Right: 40, Bottom: 40}
)

// Diagram draws g at its declared node positions and writes the PNG to w.
// Only Title, Width and Height of opts are used.
func Diagram(w io.Writer, g *network.Graph, opts config.Render) error {
	if len(g.Nodes()) == 0 {
		return ErrEmptyGraph
	}
	v := newViewport(g, opts.Width, opts.Height)

	var series []chart.Series
	for _, e := range g.Edges() {
		series = append(series, edgeSeries(v, g, e)...)
	}

	nodes := chart.ContinuousSeries{
		Name: "nodes",
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    NodeRadius,
			DotColor:    nodeColor,
		},
	}
	labels := chart.AnnotationSeries{
		Name: "labels",
		Style: chart.Style{
			FontSize:    11,
			FontColor:   labelColor,
			StrokeColor: nodeColor,
			FillColor:   drawing.ColorWhite,
		},
	}
	for _, name := range g.Nodes() {
		p, _ := g.Position(name)
		nodes.XValues = append(nodes.XValues, p.X)
		nodes.YValues = append(nodes.YValues, p.Y)
		labels.Annotations = append(labels.Annotations, chart.Value2{XValue: p.X, YValue: p.Y, Label: name})
	}
	series = append(series, nodes, labels)

	ch := chart.Chart{
		Title:      opts.Title,
		TitleStyle: chart.Style{FontSize: 14},
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: padding},
		XAxis: chart.XAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: v.minX, Max: v.maxX},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: v.minY, Max: v.maxY},
		},
		YAxisSecondary: chart.YAxis{Style: chart.Style{Hidden: true}},
		Series:         series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("failed to render diagram: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return fmt.Errorf("failed to decode rendered diagram: %w", err)
	}

	caption := fmt.Sprintf("%d nodes, %d edges", len(g.Nodes()), len(g.Edges()))
	if err := png.Encode(w, stamp(img, caption)); err != nil {
		return fmt.Errorf("failed to encode diagram: %w", err)
	}
	return nil
}

// WriteFile renders the diagram to opts.Path. An empty path disables
// rendering and is not an error.
func WriteFile(g *network.Graph, opts config.Render) error {
	if opts.Path == "" {
		logger.Info("diagram rendering disabled")
		return nil
	}

	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("failed to create diagram file: %w", err)
	}
	if err := Diagram(f, g, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write diagram file: %w", err)
	}

	logger.Info("diagram written", "path", opts.Path, "width", opts.Width, "height", opts.Height)
	return nil
}

// edgeSeries returns the shaft and the arrowhead of one edge. The shaft
// stops at the boundary of both node discs so the head stays visible.
func edgeSeries(v viewport, g *network.Graph, e network.Edge) []chart.Series {
	from, _ := g.Position(e.From)
	to, _ := g.Position(e.To)
	ax, ay := v.toPixel(from.X, from.Y)
	bx, by := v.toPixel(to.X, to.Y)

	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}
	ux, uy := dx/length, dy/length

	inset := utils.ClampFloat64(NodeRadius, 0, length/2)
	sx, sy := ax+ux*inset, ay+uy*inset
	tx, ty := bx-ux*inset, by-uy*inset

	style := chart.Style{StrokeColor: edgeColor, StrokeWidth: 2}
	shaft := v.line(e.From+"->"+e.To, style, [2]float64{sx, sy}, [2]float64{tx, ty})

	head := utils.ClampFloat64(arrowLength, 0, length-2*inset)
	wing := func(angle float64) [2]float64 {
		cos, sin := math.Cos(angle), math.Sin(angle)
		rx := ux*cos - uy*sin
		ry := ux*sin + uy*cos
		return [2]float64{tx - rx*head, ty - ry*head}
	}
	arrow := v.line(e.From+"->"+e.To+" head", style, wing(arrowAngle), [2]float64{tx, ty}, wing(-arrowAngle))

	return []chart.Series{shaft, arrow}
}

// viewport maps layout coordinates onto the pixel box go-chart draws into.
// Geometry that must look right on screen (disc insets, arrow angles) is
// computed in pixels and mapped back.
type viewport struct {
	minX, maxX, minY, maxY float64
	left, top              float64
	width, height          float64
}

func newViewport(g *network.Graph, width, height int) viewport {
	v := viewport{
		left:   float64(padding.Left),
		top:    float64(padding.Top),
		width:  float64(width - padding.Left - padding.Right),
		height: float64(height - padding.Top - padding.Bottom),
	}
	v.minX, v.minY = math.Inf(1), math.Inf(1)
	v.maxX, v.maxY = math.Inf(-1), math.Inf(-1)
	for _, name := range g.Nodes() {
		p, _ := g.Position(name)
		v.minX = math.Min(v.minX, p.X)
		v.maxX = math.Max(v.maxX, p.X)
		v.minY = math.Min(v.minY, p.Y)
		v.maxY = math.Max(v.maxY, p.Y)
	}
	v.minX -= margin
	v.maxX += margin
	v.minY -= margin
	v.maxY += margin
	return v
}

func (v viewport) toPixel(x, y float64) (float64, float64) {
	px := v.left + (x-v.minX)/(v.maxX-v.minX)*v.width
	py := v.top + (v.maxY-y)/(v.maxY-v.minY)*v.height
	return px, py
}

func (v viewport) fromPixel(px, py float64) (float64, float64) {
	x := v.minX + (px-v.left)/v.width*(v.maxX-v.minX)
	y := v.maxY - (py-v.top)/v.height*(v.maxY-v.minY)
	return x, y
}

func (v viewport) line(name string, style chart.Style, points ...[2]float64) chart.ContinuousSeries {
	s := chart.ContinuousSeries{Name: name, Style: style}
	for _, p := range points {
		x, y := v.fromPixel(p[0], p[1])
		s.XValues = append(s.XValues, x)
		s.YValues = append(s.YValues, y)
	}
	return s
}

// stamp writes a one-line caption in the bottom-left corner
func stamp(img image.Image, text string) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	d := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.RGBA{R: 96, G: 96, B: 96, A: 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(b.Min.X + 8), Y: fixed.I(b.Max.Y - 8)},
	}
	d.DrawString(text)
	return rgba
}
