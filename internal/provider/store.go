package provider

import (
	"sync"
	"time"

	"hrview/internal/history"
)

// MaxMessages 是演示 provider 每条序列保留的最大条数。
const MaxMessages = 500

const (
	noStateText     = "No Meditation State Seen On MQ Bus, Has Webserver Just Started?"
	noHeartRateText = "No Heart Rate Seen On MQ Bus, Has Webserver Just Started?"
)

// Store 是演示用的内存 History Provider：两条按时间倒序的序列，各自只保留最新的 MaxMessages 条。
type Store struct {
	mu        sync.RWMutex
	state     history.Buffer
	heartRate history.Buffer
	max       int
	clock     func() time.Time
	last      int64
}

// NewStore 构造 Store；clock 为 nil 时使用 time.Now，max <= 0 时使用 MaxMessages。
func NewStore(max int, clock func() time.Time) *Store {
	if max <= 0 {
		max = MaxMessages
	}
	if clock == nil {
		clock = time.Now
	}
	return &Store{max: max, clock: clock}
}

// AddState 记录一次冥想状态变化，返回写入的记录。
func (s *Store) AddState(value string) history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(value)
	s.state = history.Truncate(history.Merge(history.Buffer{e}, s.state), s.max)
	return e
}

// AddHeartRate 记录一次心率采样，返回写入的记录。
func (s *Store) AddHeartRate(value string) history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(value)
	s.heartRate = history.Truncate(history.Merge(history.Buffer{e}, s.heartRate), s.max)
	return e
}

// entry 以当前毫秒打时间戳。两条序列共用同一个单调时钟：
// 任何写入都晚于此前的所有写入，客户端以两者头部最大值作 since 时不会漏掉记录。
// 调用方需持有 s.mu。
func (s *Store) entry(value string) history.Entry {
	ts := s.clock().UnixMilli()
	if ts <= s.last {
		ts = s.last + 1
	}
	s.last = ts
	return history.Entry{Timestamp: ts, Value: value}
}

// History 返回两条序列中时间戳严格大于 since 的记录，保持最新在前。
func (s *Store) History(since int64) history.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return history.Snapshot{
		State:     newerThan(s.state, since),
		HeartRate: newerThan(s.heartRate, since),
	}
}

// Current 返回最新状态与心率；尚未收到时返回提示文本。
func (s *Store) Current() (state, heartRate string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, heartRate = noStateText, noHeartRateText
	if len(s.state) > 0 {
		state = s.state[0].Value
	}
	if len(s.heartRate) > 0 {
		heartRate = s.heartRate[0].Value
	}
	return state, heartRate
}

func newerThan(buf history.Buffer, since int64) history.Buffer {
	n := 0
	for n < len(buf) && buf[n].Timestamp > since {
		n++
	}
	out := make(history.Buffer, n)
	copy(out, buf[:n])
	return out
}
