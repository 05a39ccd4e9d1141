/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/medimind/db"
)

// renderTestChart draws the history of one test as a line chart with the
// reference range of the latest result as dashed lines.
func renderTestChart(testName string, points []db.TestHistoryPoint) (string, error) {
	if len(points) == 0 {
		return "", nil
	}

	xAxis := make([]string, 0, len(points))
	yData := make([]opts.LineData, 0, len(points))
	dataMin, dataMax := points[0].Value, points[0].Value

	for _, p := range points {
		xAxis = append(xAxis, p.CreatedAt.Format("Jan 2, 2006 15:04"))
		yData = append(yData, opts.LineData{Value: p.Value})

		dataMin = min(dataMin, p.Value)
		dataMax = max(dataMax, p.Value)
	}

	latest := points[len(points)-1]
	yAxisMin, yAxisMax := chartBounds(latest.Min, latest.Max, dataMin, dataMax)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: testName,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: latest.Unit,
			Min:  yAxisMin,
			Max:  yAxisMax,
		}),
	)

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			ShowSymbol: opts.Bool(true),
		}),
		charts.WithMarkPointNameTypeItemOpts(
			opts.MarkPointNameTypeItem{Name: "Max", Type: "max"},
			opts.MarkPointNameTypeItem{Name: "Min", Type: "min"},
		),
		func(s *charts.SingleSeries) {
			s.MarkLines = &opts.MarkLines{
				Data: []interface{}{
					opts.MarkLineNameYAxisItem{Name: "Ref Min", YAxis: latest.Min},
					opts.MarkLineNameYAxisItem{Name: "Ref Max", YAxis: latest.Max},
				},
				MarkLineStyle: opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					LineStyle: &opts.LineStyle{
						Color: "rgba(128, 128, 128, 0.6)",
						Type:  "dashed",
						Width: 1.5,
					},
				},
			}
		},
	}

	line.SetXAxis(xAxis).
		AddSeries(testName, yData).
		SetSeriesOptions(seriesOpts...)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// chartBounds pads the reference range by 10% and widens it to fit any
// value outside it.
func chartBounds(refMin, refMax, dataMin, dataMax float64) (float64, float64) {
	padding := (refMax - refMin) * 0.1
	lo, hi := refMin-padding, refMax+padding

	spread := (dataMax - dataMin) * 0.05
	if dataMin < lo {
		lo = dataMin - spread
	}
	if dataMax > hi {
		hi = dataMax + spread
	}

	if lo < 0 && refMin >= 0 && dataMin >= 0 {
		lo = 0
	}

	return lo, hi
}
