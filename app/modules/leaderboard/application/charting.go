package leaderboardservice

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// GenerateStandingsChart produces a PNG bar chart of the best-four totals of
// the top limit teams, leader first.
func GenerateStandingsChart(view *StandingsView, palette ChartPalette, limit int) ([]byte, error) {
	if view == nil || len(view.Standings) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	standings := view.Standings
	if limit > 0 && len(standings) > limit {
		standings = standings[:limit]
	}

	bars := make([]chart.Value, 0, len(standings))
	low, high := 0.0, 0.0
	for i, s := range standings {
		total := float64(s.TotalScore)
		low, high = min(low, total), max(high, total)

		color := palette.PrimaryLine
		if i == 0 {
			color = palette.AccentLine
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%d. %s", s.Position, s.TeamName),
			Value: total,
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
			},
		})
	}

	graph := chart.BarChart{
		Title: view.TournamentName,
		TitleStyle: chart.Style{
			FontColor: palette.TextColor,
		},
		Width:  max(400, 80*len(bars)),
		Height: 400,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.TextColor,
			FontSize:  8,
		},
		YAxis: chart.YAxis{
			Name: "To par",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
			// Padding keeps the range non-empty when every total is even.
			Range: &chart.ContinuousRange{Min: low - 1, Max: high + 1},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return formatToPar(int(f))
				}
				return ""
			},
		},
		BarWidth:     40,
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// formatToPar renders a to-par number the way golf scoreboards do.
func formatToPar(v int) string {
	switch {
	case v == 0:
		return "E"
	case v > 0:
		return fmt.Sprintf("+%d", v)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// renderNoDataPlaceholder draws a centered message directly on a raster
// renderer; go-chart refuses to render a chart without series.
func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No teams yet"
	)

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}

	r.SetFillColor(palette.Background)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(palette.TextColor)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
