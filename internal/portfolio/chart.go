package portfolio

import (
	"errors"

	charts "github.com/vicanso/go-charts/v2"

	"portfolioAdvisor/internal/models"
)

// ValueHistoryChart renders the portfolio value across past briefings as a
// PNG line chart, attached to the briefing email. Briefings must be in
// chronological order.
func ValueHistoryChart(briefings []models.Briefing) ([]byte, error) {
	if len(briefings) < 2 {
		return nil, errors.New("not enough history to chart")
	}

	var xAxisData []string
	var yAxisData []float64
	for _, b := range briefings {
		xAxisData = append(xAxisData, b.Date)
		yAxisData = append(yAxisData, b.PortfolioValue)
	}

	painter, err := charts.LineRender([][]float64{yAxisData},
		charts.TitleTextOptionFunc("Portfolio Value"),
		charts.XAxisDataOptionFunc(xAxisData),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
