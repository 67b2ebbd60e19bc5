package historyview

import (
	"context"
	"time"

	"hrview/internal/history"
)

// 显示目标的固定标识。
const (
	StateSinkID     = "state_history"
	HeartRateSinkID = "heart_rate_history"
)

// Sink 是文本输出目标，按 id 整体替换内容。
type Sink interface {
	SetText(id, text string)
}

// SinkFunc 让普通函数满足 Sink。
type SinkFunc func(id, text string)

// SetText 实现 Sink。
func (f SinkFunc) SetText(id, text string) {
	f(id, text)
}

// Fetcher 从 History Provider 获取 since 之后的新记录。
type Fetcher interface {
	Fetch(ctx context.Context, since int64) (history.Snapshot, error)
}

// Options 控制 View 的可选行为；零值即默认行为（不去重、不限长、本地时区）。
type Options struct {
	Location   *time.Location
	MaxEntries int
	Dedup      bool
}

// View 持有两条历史 buffer。它不加锁，调用方需保证所有调用发生在同一个事件循环里。
type View struct {
	state     history.Buffer
	heartRate history.Buffer
	loc       *time.Location
	max       int
	dedup     bool
}

// New 构造空的 View。
func New(opts Options) *View {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &View{loc: loc, max: opts.MaxEntries, dedup: opts.Dedup}
}

// Since 返回下一次请求的下界：两条 buffer 头部时间戳的最大值，全空为 0。
func (v *View) Since() int64 {
	return history.Since(v.state, v.heartRate)
}

// Apply 把一次 fetch 的结果合并进 buffer：新记录放在已有记录之前。
func (v *View) Apply(s history.Snapshot) {
	v.state = v.merge(s.State, v.state)
	v.heartRate = v.merge(s.HeartRate, v.heartRate)
}

func (v *View) merge(fresh, buf history.Buffer) history.Buffer {
	if len(fresh) == 0 {
		return buf
	}
	out := history.Merge(fresh, buf)
	if v.dedup {
		out = history.Dedup(out)
	}
	return history.Truncate(out, v.max)
}

// FetchHistory 同步执行一次 since → fetch → merge。失败时 buffer 保持不变。
func (v *View) FetchHistory(ctx context.Context, f Fetcher) error {
	snap, err := f.Fetch(ctx, v.Since())
	if err != nil {
		return err
	}
	v.Apply(snap)
	return nil
}

// State 返回状态 buffer（最新在前）。
func (v *View) State() history.Buffer {
	return v.state
}

// HeartRate 返回心率 buffer（最新在前）。
func (v *View) HeartRate() history.Buffer {
	return v.heartRate
}

// Location 返回格式化使用的时区。
func (v *View) Location() *time.Location {
	return v.loc
}

// Rendering 是一次 render 的结果。
type Rendering struct {
	State     string
	HeartRate string
}

// Render 按 now 格式化两条 buffer，不修改状态。
func (v *View) Render(now time.Time) Rendering {
	return Rendering{
		State:     history.FormatHistory(v.state, now, v.loc),
		HeartRate: history.FormatHistory(v.heartRate, now, v.loc),
	}
}

// RenderInto 渲染并写入 sink。
func (v *View) RenderInto(sink Sink, now time.Time) {
	r := v.Render(now)
	sink.SetText(StateSinkID, r.State)
	sink.SetText(HeartRateSinkID, r.HeartRate)
}
