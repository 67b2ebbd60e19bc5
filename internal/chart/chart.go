package chart

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"hrview/internal/history"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ErrNoData 表示两条序列都没有可绘制的数据。
var ErrNoData = errors.New("no history to chart")

// Options 控制导出的页面。
type Options struct {
	Title    string
	Location *time.Location
}

// Render 把状态与心率历史写成一个 ECharts HTML 页面，时间轴从旧到新。
// 非数值的心率会被跳过；状态值无法解析为数字时按出现顺序编号。
func Render(w io.Writer, snap history.Snapshot, opt Options) error {
	if snap.Empty() {
		return ErrNoData
	}
	if opt.Title == "" {
		opt.Title = "MindMurmur history"
	}
	page := components.NewPage()
	if len(snap.HeartRate) > 0 {
		page.AddCharts(heartRateChart(snap.HeartRate, opt))
	}
	if len(snap.State) > 0 {
		page.AddCharts(stateChart(snap.State, opt))
	}
	return page.Render(w)
}

func heartRateChart(buf history.Buffer, opt Options) *charts.Line {
	line := newLine(opt, "Heart rate", "bpm")
	xs := make([]string, 0, len(buf))
	items := make([]opts.LineData, 0, len(buf))
	for i := len(buf) - 1; i >= 0; i-- {
		v, err := strconv.ParseFloat(strings.TrimSpace(buf[i].Value), 64)
		if err != nil {
			continue
		}
		xs = append(xs, history.FormatTimestamp(buf[i].Timestamp, opt.Location))
		items = append(items, opts.LineData{Value: v})
	}
	line.SetXAxis(xs).AddSeries("heart rate", items)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func stateChart(buf history.Buffer, opt Options) *charts.Line {
	line := newLine(opt, "Meditation state", "level")
	levels := map[string]int{}
	xs := make([]string, 0, len(buf))
	items := make([]opts.LineData, 0, len(buf))
	for i := len(buf) - 1; i >= 0; i-- {
		xs = append(xs, history.FormatTimestamp(buf[i].Timestamp, opt.Location))
		items = append(items, opts.LineData{Value: stateLevel(buf[i].Value, levels), Name: buf[i].Value})
	}
	line.SetXAxis(xs).AddSeries("state", items)
	return line
}

func stateLevel(value string, levels map[string]int) float64 {
	if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return f
	}
	if n, ok := levels[value]; ok {
		return float64(n)
	}
	n := len(levels) + 1
	levels[value] = n
	return float64(n)
}

func newLine(opt Options, title, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons", PageTitle: opt.Title}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: opt.Title}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 45},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         yName,
			NameLocation: "middle",
			NameGap:      40,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)
	return line
}
