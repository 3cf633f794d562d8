package handler

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	quoteentity "finance_dashboard/internal/feature/quotes/domain/entity"
)

// Chart is the SVG polyline model of the close-price series.
type Chart struct {
	Width  int
	Height int
	Points string // "x,y x,y ..." in series order
	Min    string
	Max    string
}

const (
	chartWidth  = 800
	chartHeight = 300
)

// NewChart はx軸を時刻、y軸を値として系列をSVG座標に写像します。系列は並べ替えません。
func NewChart(series []quoteentity.Point) Chart {
	c := Chart{Width: chartWidth, Height: chartHeight}
	if len(series) == 0 {
		return c
	}

	minT, maxT := series[0].Time, series[0].Time
	minV, maxV := series[0].Value, series[0].Value
	for _, p := range series[1:] {
		if p.Time.Before(minT) {
			minT = p.Time
		}
		if p.Time.After(maxT) {
			maxT = p.Time
		}
		minV = decimal.Min(minV, p.Value)
		maxV = decimal.Max(maxV, p.Value)
	}
	c.Min, c.Max = minV.String(), maxV.String()

	span := maxT.Sub(minT).Seconds()
	valueSpan := maxV.Sub(minV)
	pts := make([]string, 0, len(series))
	for _, p := range series {
		x := 0.0
		if span > 0 {
			x = p.Time.Sub(minT).Seconds() / span * chartWidth
		}
		y := float64(chartHeight) / 2
		if !valueSpan.IsZero() {
			ratio, _ := p.Value.Sub(minV).Div(valueSpan).Float64()
			y = chartHeight - ratio*chartHeight
		}
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	c.Points = strings.Join(pts, " ")
	return c
}
