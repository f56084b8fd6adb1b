package viz

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"slices"
	"strconv"

	moremath "github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"titanic/pkg/data"
	"titanic/pkg/stats"
)

// Options controls the size and binning of the distribution figure.
type Options struct {
	Width  vg.Length
	Height vg.Length
	Bins   int
}

// DefaultOptions returns a 14x6 inch figure with 30 age bins.
func DefaultOptions() Options {
	return Options{Width: 14 * vg.Inch, Height: 6 * vg.Inch, Bins: 30}
}

var (
	histFill  = color.RGBA{R: 100, G: 149, B: 237, A: 200}
	densityLn = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	boxFill   = color.RGBA{R: 255, G: 160, B: 80, A: 255}
)

// AgeDistribution builds a histogram of known ages with a kernel density
// curve scaled to the bin counts.
func AgeDistribution(t *data.Table, bins int) (*plot.Plot, error) {
	ages, err := t.Floats(data.ColAge)
	if err != nil {
		return nil, err
	}
	h, curve, err := ageLayers(stats.DropNaN(ages), bins)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = "Age Distribution of Passengers"
	p.X.Label.Text = "Age"
	p.Y.Label.Text = "Frequency"
	if h != nil {
		p.Add(h)
	}
	if curve != nil {
		p.Add(curve)
	}
	return p, nil
}

// ageLayers returns the histogram and density curve for ages. Both are nil
// when there are no ages.
func ageLayers(ages []float64, bins int) (*plotter.Histogram, *plotter.Function, error) {
	if len(ages) == 0 {
		return nil, nil, nil
	}
	if bins < 1 {
		bins = 1
	}
	h, err := plotter.NewHist(plotter.Values(ages), bins)
	if err != nil {
		return nil, nil, fmt.Errorf("age histogram: %w", err)
	}
	h.FillColor = histFill
	return h, densityCurve(ages, h.Width), nil
}

// densityCurve returns a Gaussian KDE of xs in count units, or nil when the
// sample has no spread to estimate a bandwidth from.
func densityCurve(xs []float64, binWidth float64) *plotter.Function {
	sample := moremath.Sample{Xs: xs}
	bw := moremath.BandwidthScott(&sample)
	if !(bw > 0) || math.IsInf(bw, 0) {
		return nil
	}
	kde := &moremath.KDE{Sample: sample, Bandwidth: bw}
	scale := float64(len(xs)) * binWidth

	fn := plotter.NewFunction(func(x float64) float64 { return kde.PDF(x) * scale })
	fn.XMin, fn.XMax = stats.MinMax(xs)
	fn.Samples = 200
	fn.Color = densityLn
	fn.Width = vg.Points(2)
	return fn
}

// FareByClass builds one fare box per passenger class, in class order.
func FareByClass(t *data.Table) (*plot.Plot, error) {
	classes, boxes, err := fareBoxes(t)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = "Fare Distribution by Passenger Class"
	p.X.Label.Text = "Passenger Class"
	p.Y.Label.Text = "Fare"

	names := make([]string, len(classes))
	for i, box := range boxes {
		p.Add(box)
		names[i] = strconv.Itoa(classes[i])
	}
	if len(names) > 0 {
		p.NominalX(names...)
	}
	return p, nil
}

// fareBoxes groups known fares by class. Box i sits at x=i and belongs to
// classes[i].
func fareBoxes(t *data.Table) ([]int, []*plotter.BoxPlot, error) {
	if err := t.Require(data.ColPclass, data.ColFare); err != nil {
		return nil, nil, err
	}
	class, err := t.Floats(data.ColPclass)
	if err != nil {
		return nil, nil, err
	}
	fares, err := t.Floats(data.ColFare)
	if err != nil {
		return nil, nil, err
	}

	groups := make(map[int]plotter.Values)
	var classes []int
	for i, c := range class {
		if math.IsNaN(c) || math.IsNaN(fares[i]) {
			continue
		}
		k := int(c)
		if _, ok := groups[k]; !ok {
			classes = append(classes, k)
		}
		groups[k] = append(groups[k], fares[i])
	}
	slices.Sort(classes)

	boxes := make([]*plotter.BoxPlot, len(classes))
	for i, k := range classes {
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), groups[k])
		if err != nil {
			return nil, nil, fmt.Errorf("fare box for class %d: %w", k, err)
		}
		box.FillColor = boxFill
		boxes[i] = box
	}
	return classes, boxes, nil
}

// RenderDistributions draws the age histogram and the fare box plots side by
// side and writes the figure to w as PNG.
func RenderDistributions(w io.Writer, t *data.Table, opts Options) error {
	if err := t.Require(data.ColAge, data.ColPclass, data.ColFare); err != nil {
		return err
	}
	age, err := AgeDistribution(t, opts.Bins)
	if err != nil {
		return err
	}
	fare, err := FareByClass(t)
	if err != nil {
		return err
	}

	img := vgimg.New(opts.Width, opts.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 8,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	plots := [][]*plot.Plot{{age, fare}}
	canvases := plot.Align(plots, tiles, dc)
	for j, p := range plots[0] {
		p.Draw(canvases[0][j])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write figure: %w", err)
	}
	return nil
}

// SaveDistributions renders the figure to a PNG file at path.
func SaveDistributions(path string, t *data.Table, opts Options) (err error) {
	// Check columns first so a bad table leaves no empty file behind.
	if err := t.Require(data.ColAge, data.ColPclass, data.ColFare); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create figure: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close figure: %w", cerr)
		}
	}()
	return RenderDistributions(f, t, opts)
}
