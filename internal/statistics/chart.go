package statistics

import (
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"
)

const (
	chartWidth  = 640
	chartHeight = 360
	chartMargin = 40
)

var (
	chartBackground = color.RGBA{250, 250, 255, 255}
	chartAxis       = color.RGBA{60, 60, 70, 255}
	chartBar        = color.RGBA{110, 120, 150, 255}
	chartRed        = color.RGBA{255, 68, 68, 255}
	chartBlue       = color.RGBA{0, 170, 255, 255}
)

// RoundsHistogram counts matches by the number of rounds they took. Index i
// holds the matches that lasted i rounds.
func (s *Statistics) RoundsHistogram() []int {
	var hist []int
	for _, r := range s.RoundsPerMatch {
		n := int(r)
		for len(hist) <= n {
			hist = append(hist, 0)
		}
		hist[n]++
	}
	return hist
}

// RenderChart draws the rounds-per-match histogram with a red/blue win
// split strip across the top and encodes it as PNG.
func (s *Statistics) RenderChart(w io.Writer) error {
	dc := gg.NewContext(chartWidth, chartHeight)

	dc.SetColor(chartBackground)
	dc.DrawRectangle(0, 0, chartWidth, chartHeight)
	dc.Fill()

	// Win split
	stripY := float64(chartMargin) / 2
	plotW := float64(chartWidth - 2*chartMargin)
	redW := plotW * s.RedWinRate()
	dc.SetColor(chartRed)
	dc.DrawRectangle(chartMargin, stripY-6, redW, 12)
	dc.Fill()
	dc.SetColor(chartBlue)
	dc.DrawRectangle(chartMargin+redW, stripY-6, plotW-redW, 12)
	dc.Fill()

	top := float64(chartMargin + 10)
	bottom := float64(chartHeight - chartMargin)
	dc.SetColor(chartAxis)
	dc.SetLineWidth(1)
	dc.DrawLine(chartMargin, bottom, chartWidth-chartMargin, bottom)
	dc.DrawLine(chartMargin, top, chartMargin, bottom)
	dc.Stroke()

	hist := s.RoundsHistogram()
	peak, first := 0, -1
	for i, n := range hist {
		peak = max(peak, n)
		if n > 0 && first < 0 {
			first = i
		}
	}
	if peak == 0 {
		dc.DrawStringAnchored("no matches", chartWidth/2, (top+bottom)/2, 0.5, 0.5)
		return dc.EncodePNG(w)
	}

	slot := plotW / float64(len(hist)-first)
	for rounds := first; rounds < len(hist); rounds++ {
		n := hist[rounds]
		x := chartMargin + float64(rounds-first)*slot
		h := (bottom - top) * float64(n) / float64(peak)

		dc.SetColor(chartBar)
		dc.DrawRectangle(x+slot*0.1, bottom-h, slot*0.8, h)
		dc.Fill()

		dc.SetColor(chartAxis)
		dc.DrawStringAnchored(fmt.Sprint(rounds), x+slot/2, bottom+12, 0.5, 0.5)
		if n > 0 {
			dc.DrawStringAnchored(fmt.Sprint(n), x+slot/2, bottom-h-8, 0.5, 0.5)
		}
	}

	dc.DrawStringAnchored(fmt.Sprintf("rounds per match (%d matches)", s.Matches),
		chartWidth/2, chartHeight-10, 0.5, 0.5)

	return dc.EncodePNG(w)
}

// WriteChart renders the chart to filename atomically
func (s *Statistics) WriteChart(filename string) error {
	return writeFileAtomic(filename, s.RenderChart)
}
