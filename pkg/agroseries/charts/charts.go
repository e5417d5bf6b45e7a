// Package charts renders the descriptive report as PNG files.
package charts

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/ukaji3/agroseries-go/pkg/agroseries/analysis"
	"github.com/ukaji3/agroseries-go/pkg/agroseries/parser"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	growthColor      = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	declineColor     = color.RGBA{R: 205, G: 92, B: 92, A: 255}
	productivityBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
)

// Options configures the report.
type Options struct {
	// Dir receives the PNG files.
	Dir string
	// ProductFilter selects products by substring.
	ProductFilter string
	// FocusState is the state of the single-state trend.
	FocusState string
	// RankingSize is the number of states in each growth ranking.
	RankingSize int
	// WidthPx and HeightPx are the chart size at 96 DPI.
	WidthPx  int
	HeightPx int
	// Logger receives progress messages. If nil, nothing is logged.
	Logger *zap.Logger
}

// DefaultOptions returns the fixed soybean report.
func DefaultOptions() Options {
	return Options{
		Dir:           "charts",
		ProductFilter: "Soja",
		FocusState:    "Acre",
		RankingSize:   10,
		WidthPx:       1152,
		HeightPx:      576,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

type chart struct {
	file  string
	build func() (*plot.Plot, error)
}

// Render draws the report from zero-filled observations and returns the
// paths written, in report order. Charts without data are skipped.
func Render(obs []analysis.Observation, opts Options) ([]string, error) {
	log := opts.logger()
	r := &renderer{opts: opts, log: log}

	product := analysis.FilterProduct(obs, opts.ProductFilter)
	totals := analysis.SumByStateYear(product)
	ranking := analysis.Growth(totals)
	log.Info("report data",
		zap.String("product", opts.ProductFilter),
		zap.Int("observations", len(product)),
		zap.Int("ranked_states", len(ranking)))

	list := []chart{
		{"trend_" + parser.NormalizeName(opts.FocusState) + ".png", func() (*plot.Plot, error) {
			return r.trend(analysis.FilterState(product, opts.FocusState))
		}},
		{"scatter_area_quantity.png", func() (*plot.Plot, error) { return r.scatter(product) }},
		{"boxplot_yield.png", func() (*plot.Plot, error) { return r.yieldBoxPlot(product) }},
		{"growth_top.png", func() (*plot.Plot, error) {
			return r.growth(analysis.Top(ranking, opts.RankingSize),
				fmt.Sprintf("Top %d Estados que Mais Cresceram na Produção de %s", opts.RankingSize, opts.ProductFilter),
				growthColor)
		}},
		{"growth_bottom.png", func() (*plot.Plot, error) {
			return r.growth(analysis.Bottom(ranking, opts.RankingSize),
				fmt.Sprintf("Estados com Menor Crescimento ou Queda na Produção de %s", opts.ProductFilter),
				declineColor)
		}},
		{"region_trend.png", func() (*plot.Plot, error) { return r.regions(totals) }},
		{"productivity.png", func() (*plot.Plot, error) {
			return r.productivity(analysis.MeanProductivity(product))
		}},
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, err
	}

	w, h := PixelsToLength(opts.WidthPx), PixelsToLength(opts.HeightPx)
	var written []string
	for _, c := range list {
		p, err := c.build()
		if err != nil {
			return written, fmt.Errorf("chart %s: %w", c.file, err)
		}
		if p == nil {
			log.Warn("chart skipped: no data", zap.String("chart", c.file))
			continue
		}
		path := filepath.Join(opts.Dir, c.file)
		if err := p.Save(w, h, path); err != nil {
			return written, fmt.Errorf("save chart %s: %w", path, err)
		}
		log.Info("chart written", zap.String("path", path))
		written = append(written, path)
	}
	return written, nil
}

type renderer struct {
	opts Options
	log  *zap.Logger
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func (r *renderer) trend(obs []analysis.Observation) (*plot.Plot, error) {
	series := analysis.MeanByYear(obs, func(o analysis.Observation) float64 { return o.Area })
	if len(series) == 0 {
		return nil, nil
	}

	var pts plotter.XYs
	for _, yv := range series {
		if isFinite(yv.Value) {
			pts = append(pts, plotter.XY{X: float64(yv.Year), Y: yv.Value})
		}
	}
	if len(pts) == 0 {
		return nil, nil
	}

	p := newPlot(
		fmt.Sprintf("Evolução da Área Colhida de %s em %s", r.opts.ProductFilter, r.opts.FocusState),
		"Ano", "Área Colhida (ha)")
	if err := plotutil.AddLinePoints(p, pts); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *renderer) scatter(obs []analysis.Observation) (*plot.Plot, error) {
	byState := make(map[string]plotter.XYs)
	for _, o := range obs {
		if !isFinite(o.Area) || !isFinite(o.Quantity) {
			continue
		}
		byState[o.State] = append(byState[o.State], plotter.XY{X: o.Area, Y: o.Quantity})
	}
	if len(byState) == 0 {
		return nil, nil
	}
	states := make([]string, 0, len(byState))
	for s := range byState {
		states = append(states, s)
	}
	sort.Strings(states)

	p := newPlot(
		fmt.Sprintf("Relação entre Área Colhida e Quantidade Produzida (%s)", r.opts.ProductFilter),
		"Área Colhida (ha)", "Quantidade Produzida (t)")
	for i, state := range states {
		s, err := plotter.NewScatter(byState[state])
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(state, s)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

func (r *renderer) yieldBoxPlot(obs []analysis.Observation) (*plot.Plot, error) {
	years, groups := analysis.ValuesByYear(obs, func(o analysis.Observation) float64 { return o.Yield })
	if len(years) == 0 {
		return nil, nil
	}

	p := newPlot(
		fmt.Sprintf("Distribuição do Rendimento Médio de %s por Ano", r.opts.ProductFilter),
		"Ano", "Rendimento Médio (kg/ha)")
	var names []string
	for i, y := range years {
		vals := finite(groups[i])
		if len(vals) == 0 {
			continue
		}
		b, err := plotter.NewBoxPlot(vg.Points(20), float64(len(names)), vals)
		if err != nil {
			return nil, err
		}
		b.FillColor = productivityBlue
		p.Add(b)
		names = append(names, fmt.Sprint(y))
	}
	if len(names) == 0 {
		return nil, nil
	}
	p.NominalX(names...)
	return p, nil
}

func (r *renderer) growth(rows []analysis.GrowthRow, title string, c color.Color) (*plot.Plot, error) {
	// Horizontal bars are drawn bottom-up; reverse so rank 1 is on top.
	var names []string
	var vals plotter.Values
	for i := len(rows) - 1; i >= 0; i-- {
		if !isFinite(rows[i].Percent) {
			r.log.Warn("growth omitted from chart",
				zap.String("state", rows[i].State),
				zap.Float64("first", rows[i].First),
				zap.Float64("last", rows[i].Last))
			continue
		}
		names = append(names, rows[i].State)
		vals = append(vals, rows[i].Percent)
	}
	if len(vals) == 0 {
		return nil, nil
	}

	p := newPlot(title, "Crescimento Percentual (%)", "Estado")
	bars, err := plotter.NewBarChart(vals, vg.Points(14))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = c
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(names...)
	return p, nil
}

func (r *renderer) regions(totals []analysis.StateYear) (*plot.Plot, error) {
	rows, unmapped := analysis.SumByRegionYear(totals)
	if len(unmapped) > 0 {
		r.log.Debug("states without region", zap.Strings("states", unmapped))
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var order []string
	byRegion := make(map[string]plotter.XYs)
	for _, ry := range rows {
		if !isFinite(ry.Value) {
			continue
		}
		if _, ok := byRegion[ry.Region]; !ok {
			order = append(order, ry.Region)
		}
		byRegion[ry.Region] = append(byRegion[ry.Region], plotter.XY{X: float64(ry.Year), Y: ry.Value})
	}

	if len(order) == 0 {
		return nil, nil
	}

	p := newPlot(
		fmt.Sprintf("Evolução da Produção de %s por Região", r.opts.ProductFilter),
		"Ano", "Produção (toneladas)")
	var lines []interface{}
	for _, region := range order {
		lines = append(lines, region, byRegion[region])
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return nil, err
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

func (r *renderer) productivity(means []analysis.StateValue) (*plot.Plot, error) {
	var names []string
	var vals plotter.Values
	for _, m := range means {
		if !isFinite(m.Value) {
			r.log.Warn("productivity omitted from chart",
				zap.String("state", m.State),
				zap.Float64("value", m.Value))
			continue
		}
		names = append(names, m.State)
		vals = append(vals, m.Value)
	}
	if len(vals) == 0 {
		return nil, nil
	}

	p := newPlot(
		fmt.Sprintf("Produtividade Média de %s por Estado (t/ha)", r.opts.ProductFilter),
		"Estado", "Toneladas por hectare")
	bars, err := plotter.NewBarChart(vals, vg.Points(14))
	if err != nil {
		return nil, err
	}
	bars.Color = productivityBlue
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finite(vs []float64) plotter.Values {
	out := make(plotter.Values, 0, len(vs))
	for _, v := range vs {
		if isFinite(v) {
			out = append(out, v)
		}
	}
	return out
}
