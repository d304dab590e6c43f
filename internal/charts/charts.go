// Package charts renders the analysis figures as standalone HTML pages.
package charts

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bikeshare-cli/internal/geo"
)

// Renderer is implemented by every go-echarts chart.
type Renderer interface {
	Render(w io.Writer) error
}

// palette is used for rush-hour bands.
var palette = []string{"#FF6B6B", "#FFD166", "#06D6A0", "#277DA1", "#FEAA40"}

const (
	noiseColor    = "#9e9e9e"
	boundaryColor = "#8fb3de"
)

// Save renders r to dir/name.html, creating dir if needed, and returns the
// file path.
func Save(r Renderer, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "charts: create %s", dir)
	}
	path := filepath.Join(dir, name+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "charts: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := r.Render(f); err != nil {
		return "", eris.Wrapf(err, "charts: render %s", name)
	}
	if err := f.Close(); err != nil {
		return "", eris.Wrapf(err, "charts: close %s", path)
	}

	zap.L().Info("chart written", zap.String("chart", name), zap.String("path", path))
	return path, nil
}

func initOpts(title string) echarts.GlobalOpts {
	return echarts.WithInitializationOpts(opts.Initialization{
		PageTitle: title,
		Width:     "1000px",
		Height:    "640px",
	})
}

// boundarySeries draws each boundary ring as a closed, filled line.
func boundarySeries(b *geo.Boundary) *echarts.Line {
	line := echarts.NewLine()
	if b == nil {
		return line
	}
	for _, ring := range b.Rings() {
		data := make([]opts.LineData, len(ring))
		for i, c := range ring {
			data[i] = opts.LineData{Value: []interface{}{c.X(), c.Y()}}
		}
		line.AddSeries("boundary", data,
			echarts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			echarts.WithLineStyleOpts(opts.LineStyle{Color: boundaryColor, Width: 1}),
			echarts.WithAreaStyleOpts(opts.AreaStyle{Color: boundaryColor, Opacity: opts.Float(0.5)}),
		)
	}
	return line
}

// goldenAngle spreads successive hues so neighbouring labels differ widely.
const goldenAngle = 137.508

// clusterColor returns a distinct hue for each cluster label.
func clusterColor(label int) string {
	hue := math.Mod(float64(label)*goldenAngle, 360)
	return fmt.Sprintf("hsl(%.1f, 70%%, 50%%)", hue)
}

// mapAxes returns value axes for charts drawn in map coordinates. With a
// boundary the axes span its bounding box, the y axis widened by padY on
// both sides; otherwise they are scaled to the data.
func mapAxes(x, y string, b *geo.Boundary, padY float64) []echarts.GlobalOpts {
	xAxis := opts.XAxis{Type: "value", Name: x, Scale: opts.Bool(true)}
	yAxis := opts.YAxis{Type: "value", Name: y, Scale: opts.Bool(true)}
	if b != nil && len(b.Polygons) > 0 {
		bounds := b.Bounds()
		xAxis.Min, xAxis.Max = bounds.Min(0), bounds.Max(0)
		yAxis.Min, yAxis.Max = bounds.Min(1)-padY, bounds.Max(1)+padY
	}
	return []echarts.GlobalOpts{
		echarts.WithXAxisOpts(xAxis),
		echarts.WithYAxisOpts(yAxis),
	}
}
