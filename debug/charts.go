package debug

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// MaxPoints samples per waveform series sent to the browser
var MaxPoints = 2000

// Charts field and waveform page
type Charts struct {
	Record
}

// Render HTML page with the AM heat map and the electrode currents
func (c *Charts) Render(w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = "IFC"
	page.AddCharts(c.heatMap())
	if len(c.Time) > 0 {
		page.AddCharts(c.currents(), c.total())
	}
	if len(c.Beats) > 0 {
		page.AddCharts(c.beats())
	}
	return page.Render(w)
}

func (c *Charts) heatMap() *charts.HeatMap {
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "720px",
			Height: "720px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "AM envelope",
			Subtitle: fmt.Sprintf("normalized, peak %.3g V", c.Peak),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Name:      "x (mm)",
			SplitArea: &opts.SplitArea{Show: opts.Bool(false)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Name:      "y (mm)",
			Data:      axisLabels(c.Y),
			SplitArea: &opts.SplitArea{Show: opts.Bool(false)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        1,
			InRange: &opts.VisualMapInRange{
				Color: []string{"#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921"},
			},
		}),
	)
	items := make([]opts.HeatMapData, 0, len(c.X)*len(c.Y))
	for i, row := range c.Field {
		for j, v := range row {
			if v == nil {
				items = append(items, opts.HeatMapData{Value: [3]interface{}{j, i, "-"}})
				continue
			}
			items = append(items, opts.HeatMapData{Value: [3]interface{}{j, i, *v}})
		}
	}
	hm.SetXAxis(axisLabels(c.X)).AddSeries("AM", items)
	return hm
}

func (c *Charts) lineChart(title, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)
	line.SetXAxis(decimate(c.Time))
	return line
}

func (c *Charts) currents() *charts.Line {
	line := c.lineChart("Electrode currents", "burst-gated carriers per pole")
	for e, s := range c.Signals {
		name := fmt.Sprintf("E%d", e+1)
		if e < len(c.Labels) {
			name = c.Labels[e]
		}
		line.AddSeries(name, lineData(decimate(s)),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}
	return line
}

func (c *Charts) total() *charts.Line {
	line := c.lineChart("Interference", "sum of all electrode currents")
	line.AddSeries("Σ", lineData(decimate(c.Total)),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	return line
}

func (c *Charts) beats() *charts.Line {
	line := c.lineChart("Beat envelope", "amplitude of the two carriers of each pair")
	for k, b := range c.Beats {
		name := fmt.Sprintf("P%d", k+1)
		if k < len(c.Pairs) && c.Pairs[k].Label != "" {
			name = c.Pairs[k].Label
		}
		line.AddSeries(name, lineData(decimate(b)),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}
	return line
}

// Handler serves the page
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		c.Error(err)
	}
}

func (c *Charts) Error(err error) { log.Println(err) }

func axisLabels(v []float64) []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = fmt.Sprintf("%.3f", x)
	}
	return out
}

func lineData(v []float64) []opts.LineData {
	out := make([]opts.LineData, len(v))
	for i, x := range v {
		out[i] = opts.LineData{Value: x}
	}
	return out
}

// decimate keeps at most MaxPoints evenly strided samples
func decimate(v []float64) []float64 {
	if MaxPoints <= 0 || len(v) <= MaxPoints {
		return v
	}
	stride := (len(v) + MaxPoints - 1) / MaxPoints
	out := make([]float64, 0, MaxPoints)
	for i := 0; i < len(v); i += stride {
		out = append(out, v[i])
	}
	return out
}
