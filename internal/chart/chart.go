// Package chart renders bounded price series as interactive HTML charts.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog/log"

	"StockLens/internal/calculator"
	"StockLens/internal/model"
)

const (
	dateLayout = "2006-01-02"
	width      = "1400px"
	height     = "600px"

	increaseColour = "green"
	decreaseColour = "red"
	volumeColour   = "blue"

	// Axis headroom over the range maximum, so bars and candles do not overlap.
	priceHeadroom  = 2.5
	volumeHeadroom = 5
)

// Line is one symbol's records for a closing-price line chart.
type Line struct {
	Symbol  string
	Records []model.PriceRecord
}

// Renderer writes chart HTML files into Dir.
type Renderer struct {
	Dir string
}

// NewRenderer creates a Renderer writing into dir.
func NewRenderer(dir string) *Renderer {
	return &Renderer{Dir: dir}
}

// TimeSeries writes the closing-price line chart and returns its path.
func (r *Renderer) TimeSeries(lines []Line) (string, error) {
	return r.write("timeseries.html", func(w io.Writer) error { return RenderLines(w, lines) })
}

// Candlestick writes the OHLC + volume chart for one symbol and returns its path.
func (r *Renderer) Candlestick(symbol string, records []model.PriceRecord) (string, error) {
	return r.write("candlestick_"+symbol+".html", func(w io.Writer) error {
		return RenderCandlestick(w, symbol, records)
	})
}

func (r *Renderer) write(name string, render func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(r.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	log.Info().Str("path", path).Msg("chart written")
	return path, nil
}

// RenderLines draws one closing-price series per line on a shared time axis.
func RenderLines(w io.Writer, lines []Line) error {
	chart := charts.NewLine()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Time Series Plot for Stocks", Width: width, Height: height}),
		charts.WithTitleOpts(opts.Title{Title: "Time Series Plot for Stocks"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time", Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Closing Price [$]"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)

	for _, l := range lines {
		if len(l.Records) == 0 {
			log.Warn().Str("symbol", l.Symbol).Msg("no records in range")
		}
		data := make([]opts.LineData, 0, len(l.Records))
		for _, rec := range ascending(l.Records) {
			data = append(data, opts.LineData{Value: []interface{}{rec.Date.Format(dateLayout), rec.Close.InexactFloat64()}})
		}
		chart.AddSeries(l.Symbol, data)
	}
	return chart.Render(w)
}

// RenderCandlestick draws daily candles with a volume bar overlay on a second axis.
func RenderCandlestick(w io.Writer, symbol string, records []model.PriceRecord) error {
	bars := ascending(records)

	dates := make([]string, len(bars))
	candles := make([]opts.KlineData, len(bars))
	volumes := make([]opts.BarData, len(bars))
	for i, rec := range bars {
		dates[i] = rec.Date.Format(dateLayout)
		// echarts candle order: open, close, low, high
		candles[i] = opts.KlineData{Value: [4]float64{
			rec.Open.InexactFloat64(), rec.Close.InexactFloat64(),
			rec.Low.InexactFloat64(), rec.High.InexactFloat64(),
		}}
		volumes[i] = opts.BarData{Value: rec.Volume}
	}

	priceAxis := opts.YAxis{Name: "Daily Price Range [$]", Min: 0}
	volumeAxis := opts.YAxis{Name: "Volume", Min: 0}
	subtitle := "no records in range"
	if maxClose, err := calculator.MaxClose(records); err == nil {
		priceAxis.Max = maxClose * priceHeadroom
		high, low, _ := calculator.PriceRange(records)
		subtitle = fmt.Sprintf("%s to %s, low %.2f / high %.2f", dates[0], dates[len(dates)-1], low, high)
	} else {
		log.Warn().Str("symbol", symbol).Msg("no records in range")
	}
	if maxVol, err := calculator.MaxVolume(records); err == nil && maxVol > 0 {
		volumeAxis.Max = maxVol * volumeHeadroom
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: symbol, Width: width, Height: height}),
		charts.WithTitleOpts(opts.Title{Title: symbol, Subtitle: subtitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(priceAxis),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	kline.ExtendYAxis(volumeAxis)
	kline.SetXAxis(dates).AddSeries(symbol, candles,
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color:        increaseColour,
			Color0:       decreaseColour,
			BorderColor:  increaseColour,
			BorderColor0: decreaseColour,
		}),
	)

	volume := charts.NewBar()
	volume.SetXAxis(dates).AddSeries("Volume", volumes,
		charts.WithBarChartOpts(opts.BarChart{YAxisIndex: 1}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: volumeColour}),
	)
	kline.Overlap(volume)

	return kline.Render(w)
}

// ascending returns records oldest first.
func ascending(records []model.PriceRecord) []model.PriceRecord {
	out := make([]model.PriceRecord, len(records))
	for i, rec := range records {
		out[len(records)-1-i] = rec
	}
	return out
}
