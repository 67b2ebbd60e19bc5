package tui

import (
	"context"
	"sort"
	"strings"
	"time"

	"hrview/internal/features"
	"hrview/internal/history"
	"hrview/internal/historyview"
	"hrview/internal/logger"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

const (
	defaultRenderInterval = 80 * time.Millisecond
	defaultFetchInterval  = time.Second
	noticeTTL             = 3 * time.Second

	defaultWidth  = 80
	defaultHeight = 24
	// header、filter、status、help 各占一行。
	reservedRows = 4
)

// Options 配置 TUI。
type Options struct {
	Fetcher        historyview.Fetcher
	View           historyview.Options
	URL            string
	RenderInterval time.Duration
	FetchInterval  time.Duration
	Features       features.Set
	Clock          func() time.Time
	Clipboard      func(string) error
	Log            *logger.LogEntry
}

type renderTickMsg time.Time

type fetchTickMsg time.Time

type fetchResultMsg struct {
	snap history.Snapshot
	err  error
}

// Model 是 history view 的 Bubble Tea 模型。所有 buffer 的读写都发生在 Update 里。
type Model struct {
	opts    Options
	view    *historyview.View
	fetcher historyview.Fetcher
	clock   func() time.Time
	copyFn  func(string) error
	log     *logger.LogEntry

	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped bool

	now         time.Time
	lastSuccess time.Time
	failures    int // 连续失败次数，成功后清零
	inFlight    int

	panes     [2]*pane
	focus     int
	filter    textinput.Model
	filtering bool
	help      help.Model
	showHelp  bool
	keys      keyMap
	spin      spinner.Model

	width  int
	height int

	notice      string
	noticeUntil time.Time
}

// New 构造 Model；零值字段使用默认值。
func New(opts Options) *Model {
	if opts.RenderInterval <= 0 {
		opts.RenderInterval = defaultRenderInterval
	}
	if opts.FetchInterval <= 0 {
		opts.FetchInterval = defaultFetchInterval
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Log == nil {
		opts.Log = logger.Named("tui")
	}
	ctx, cancel := context.WithCancel(context.Background())

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter values"
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	m := &Model{
		opts:    opts,
		view:    historyview.New(opts.View),
		fetcher: opts.Fetcher,
		clock:   opts.Clock,
		copyFn:  opts.Clipboard,
		log:     opts.Log,
		ctx:     ctx,
		cancel:  cancel,
		panes: [2]*pane{
			newPane(historyview.StateSinkID, "Meditation state"),
			newPane(historyview.HeartRateSinkID, "Heart rate"),
		},
		filter: ti,
		help:   help.New(),
		keys:   defaultKeyMap(),
		spin:   sp,
	}
	m.now = m.clock()
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Init 实现 tea.Model，等价于 Start。
func (m *Model) Init() tea.Cmd {
	return m.Start()
}

// Start 立即发起第一次抓取，并按固定频率排定 render 与 fetch。重复调用无效果。
func (m *Model) Start() tea.Cmd {
	if m.started || m.stopped {
		return nil
	}
	m.started = true
	cmds := []tea.Cmd{m.fetchNow(), m.scheduleRender(), m.scheduleFetch()}
	if m.opts.Features.Enabled(features.Animations) {
		cmds = append(cmds, m.spin.Tick)
	}
	return tea.Batch(cmds...)
}

// Stop 取消进行中的请求，停止排定新的 tick；之后到达的结果会被丢弃。
func (m *Model) Stop() {
	if m.stopped {
		return
	}
	m.stopped = true
	m.cancel()
}

// Stopped 报告 Stop 是否已被调用。
func (m *Model) Stopped() bool {
	return m.stopped
}

// Update 实现 tea.Model。
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case renderTickMsg:
		if m.stopped {
			return m, nil
		}
		m.render()
		return m, m.scheduleRender()
	case fetchTickMsg:
		if m.stopped {
			return m, nil
		}
		return m, tea.Batch(m.fetchNow(), m.scheduleFetch())
	case fetchResultMsg:
		m.inFlight--
		if m.stopped {
			return m, nil
		}
		if msg.err != nil {
			// 失败只记日志，界面照常渲染已有数据。
			m.failures++
			m.log.WithField("consecutive", m.failures).Debug("fetch failed, keeping current history")
			return m, nil
		}
		if m.failures > 0 {
			m.log.WithField("after_failures", m.failures).Debug("fetch recovered")
			m.failures = 0
		}
		m.view.Apply(msg.snap)
		m.lastSuccess = m.clock()
		return m, nil
	case spinner.TickMsg:
		if m.stopped || !m.opts.Features.Enabled(features.Animations) {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) scheduleRender() tea.Cmd {
	if m.stopped {
		return nil
	}
	return tea.Every(m.opts.RenderInterval, func(t time.Time) tea.Msg {
		return renderTickMsg(t)
	})
}

func (m *Model) scheduleFetch() tea.Cmd {
	if m.stopped {
		return nil
	}
	return tea.Every(m.opts.FetchInterval, func(t time.Time) tea.Msg {
		return fetchTickMsg(t)
	})
}

// fetchNow 在发起时读取 since；前一次请求未返回时也会照常发起。
func (m *Model) fetchNow() tea.Cmd {
	if m.stopped || m.fetcher == nil {
		return nil
	}
	since := m.view.Since()
	ctx, fetcher := m.ctx, m.fetcher
	m.inFlight++
	return func() tea.Msg {
		snap, err := fetcher.Fetch(ctx, since)
		return fetchResultMsg{snap: snap, err: err}
	}
}

// SetText 实现 historyview.Sink，把文本写进对应的 pane。
func (m *Model) SetText(id, text string) {
	for _, p := range m.panes {
		if p.id == id {
			p.setText(text)
			return
		}
	}
}

func (m *Model) render() {
	m.now = m.clock()
	if m.notice != "" && !m.now.Before(m.noticeUntil) {
		m.notice = ""
	}
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.view.RenderInto(m, m.now)
		return
	}
	loc := m.view.Location()
	m.SetText(historyview.StateSinkID, history.FormatHistory(filterBuffer(m.view.State(), query), m.now, loc))
	m.SetText(historyview.HeartRateSinkID, history.FormatHistory(filterBuffer(m.view.HeartRate(), query), m.now, loc))
}

// filterBuffer 保留值与 query 模糊匹配的记录，顺序仍是最新在前。
func filterBuffer(buf history.Buffer, query string) history.Buffer {
	matches := fuzzy.Find(query, buf.Values())
	idx := make([]int, 0, len(matches))
	for _, match := range matches {
		idx = append(idx, match.Index)
	}
	sort.Ints(idx)
	out := make(history.Buffer, 0, len(idx))
	for _, i := range idx {
		out = append(out, buf[i])
	}
	return out
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.filtering {
		switch msg.Type {
		case tea.KeyCtrlC:
			m.Stop()
			return tea.Quit
		case tea.KeyEsc:
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.render()
			return nil
		case tea.KeyEnter:
			m.filtering = false
			m.filter.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.render()
		return cmd
	}

	focused := m.panes[m.focus]
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Stop()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.resize(m.width, m.height)
	case key.Matches(msg, m.keys.Focus):
		m.focus = (m.focus + 1) % len(m.panes)
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m.filter.Focus()
	case key.Matches(msg, m.keys.Clear):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.render()
		}
	case key.Matches(msg, m.keys.Copy):
		m.copyPane(focused)
	case key.Matches(msg, m.keys.Top):
		focused.vp.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		focused.vp.GotoBottom()
	default:
		var cmd tea.Cmd
		focused.vp, cmd = focused.vp.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) copyPane(p *pane) {
	switch {
	case !m.opts.Features.Enabled(features.Clipboard):
		m.setNotice("clipboard disabled")
	case p.text == "":
		m.setNotice("nothing to copy")
	default:
		if err := m.copyFn(p.text); err != nil {
			m.log.WithError(err).Warn("clipboard copy failed")
			m.setNotice("clipboard unavailable")
			return
		}
		m.setNotice("copied " + countLabel(p.lines))
	}
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeUntil = m.clock().Add(noticeTTL)
}

func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width, m.height = width, height
	m.help.Width = width
	m.filter.Width = maxInt(10, width-4)

	avail := height - reservedRows
	if m.showHelp {
		avail -= len(m.keys.FullHelp()[0]) + 1
	}
	per := maxInt(paneChromeHeight+1, avail/len(m.panes))
	for _, p := range m.panes {
		p.resize(maxInt(10, width-paneChromeWidth), per-paneChromeHeight)
	}
}

// View 实现 tea.Model。
func (m *Model) View() string {
	header := headerStyle.Render("MindMurmur") + faintStyle.Render(" history view")
	rows := []string{clampLine(header, m.width)}
	for i, p := range m.panes {
		rows = append(rows, p.view(i == m.focus))
	}
	if m.filtering || m.filter.Value() != "" {
		rows = append(rows, m.filter.View())
	} else {
		rows = append(rows, "")
	}
	rows = append(rows, statusStyle.Render(clampLine(m.statusText(), maxInt(10, m.width-2))))
	if m.showHelp {
		rows = append(rows, modalStyle.Render(m.help.View(m.keys)))
	} else {
		rows = append(rows, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) statusText() string {
	info := statusInfo{
		URL:         m.opts.URL,
		States:      len(m.view.State()),
		HeartRates:  len(m.view.HeartRate()),
		LastSuccess: m.lastSuccess,
		Now:         m.now,
		Filter:      strings.TrimSpace(m.filter.Value()),
		Notice:      m.notice,
	}
	if m.opts.Features.Enabled(features.Animations) && !m.stopped {
		info.Spinner = m.spin.View()
	}
	return statusText(info)
}

// State 返回状态 buffer（最新在前）。
func (m *Model) State() history.Buffer {
	return m.view.State()
}

// HeartRate 返回心率 buffer（最新在前）。
func (m *Model) HeartRate() history.Buffer {
	return m.view.HeartRate()
}
