// Copyright 2025 Sonic Labs
// This file is part of Drvsum, a toolkit for sums of discrete random variables
//
// Drvsum is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Drvsum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Drvsum. If not, see <http://www.gnu.org/licenses/>.

package visualizer

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/0xsoniclabs/drvsum/pmf"
	"github.com/cockroachdb/errors"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HTML references for the rendered pages.
const pmfRef = "pmf"
const cdfRef = "cdf"
const summaryRef = "summary"
const planRef = "plan"

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Drvsum: Sum of Discrete Random Variables</title>
  </head>
  <body>
    <h1>Drvsum: Sum of Discrete Random Variables</h1>
    <ul>
    <li> <h3> <a href="/` + pmfRef + `"> Probability Mass Function </a> </h3> </li>
    <li> <h3> <a href="/` + cdfRef + `"> Cumulative Distribution Function </a> </h3> </li>
    <li> <h3> <a href="/` + summaryRef + `"> Summary </a> </h3> </li>
    <li> <h3> <a href="/` + planRef + `"> Summation Plan </a> </h3> </li>
    </ul>
</body>
</html>
`

// renderMain renders the main menu.
func renderMain(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, MainHtml)
}

// chartOptions returns the options shared by all charts.
func chartOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeChalk,
			PageTitle: title,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
	}
}

// convertPMFData produces the axis labels and bars of a distribution.
func convertPMFData(p *pmf.PMF) ([]string, []opts.BarData) {
	labels := make([]string, 0, p.Len())
	items := make([]opts.BarData, 0, p.Len())
	p.Each(func(v int, q float64) {
		labels = append(labels, strconv.Itoa(v))
		items = append(items, opts.BarData{Value: q})
	})
	return labels, items
}

// newPMFChart creates a bar chart of a distribution.
func newPMFChart(title string, p *pmf.PMF) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(chartOptions(title, fmt.Sprintf("Mean %.4g, Std. deviation %.4g", p.Mean(), p.StdDev()))...)
	labels, items := convertPMFData(p)
	bar.SetXAxis(labels).AddSeries("Probability", items)
	return bar
}

// convertCDFData produces the points of the cumulative distribution.
func convertCDFData(p *pmf.PMF) []opts.LineData {
	items := make([]opts.LineData, 0, p.Len())
	cdf := 0.0
	p.Each(func(v int, q float64) {
		cdf = min(cdf+q, 1)
		items = append(items, opts.LineData{Value: [2]float64{float64(v), cdf}})
	})
	return items
}

// newCDFChart creates a line chart of the cumulative distribution.
func newCDFChart(title string, p *pmf.PMF) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(append(chartOptions(title, "Cumulative Distribution"),
		charts.WithXAxisOpts(opts.XAxis{Type: "value"}))...)
	chart.AddSeries("CDF", convertCDFData(p))
	return chart
}

// renderPMF renders the probability mass function.
func renderPMF(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = newPMFChart(view.title, view.pmf).Render(w)
}

// renderCDF renders the cumulative distribution function.
func renderCDF(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = newCDFChart(view.title, view.pmf).Render(w)
}

// renderSummary renders the summary table.
func renderSummary(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_, _ = fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<body>\n<pre>\n%s\n</pre>\n</body>\n</html>\n", html.EscapeString(view.summary))
}

// renderPlan renders the summation plan as a graph.
func renderPlan(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if view.graph == "" {
		http.Error(w, "visualizer: no summation plan", http.StatusNotFound)
		return
	}
	_, _ = fmt.Fprint(w, view.graph)
}

// WriteCharts writes a page with the PMF and CDF charts of a distribution.
func WriteCharts(w io.Writer, title string, p *pmf.PMF) error {
	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(newPMFChart(title, p), newCDFChart(title, p))
	return page.Render(w)
}

// WriteChartsFile writes the charts of a distribution to an HTML file.
func WriteChartsFile(filename, title string, p *pmf.PMF) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "cannot create chart file %v", filename)
	}
	defer func(f *os.File) {
		err = errors.CombineErrors(err, f.Close())
	}(f)
	return WriteCharts(f, title, p)
}

// NewMux returns the handlers serving the current view.
func NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", renderMain)
	mux.HandleFunc("/"+pmfRef, renderPMF)
	mux.HandleFunc("/"+cdfRef, renderCDF)
	mux.HandleFunc("/"+summaryRef, renderSummary)
	mux.HandleFunc("/"+planRef, renderPlan)
	return mux
}

// FireUpWeb publishes the view and serves it with a local web-server.
func FireUpWeb(view *View, addr string) error {
	if err := setViewState(view); err != nil {
		return err
	}
	return http.ListenAndServe(":"+addr, NewMux())
}
