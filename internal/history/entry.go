package history

// Entry 是一条历史记录：毫秒时间戳 + 可展示的值，获取后不再修改。
type Entry struct {
	Timestamp int64
	Value     string
}

// Buffer 按时间倒序保存历史记录，下标 0 为最新一条。
type Buffer []Entry

// Snapshot 是一次 fetch 返回的两条新序列，各自按时间倒序。
type Snapshot struct {
	State     Buffer
	HeartRate Buffer
}

// Empty 报告两条序列是否都为空。
func (s Snapshot) Empty() bool {
	return len(s.State) == 0 && len(s.HeartRate) == 0
}

// Head 返回最新一条的时间戳；空 buffer 返回 0。
func (b Buffer) Head() int64 {
	if len(b) == 0 {
		return 0
	}
	return b[0].Timestamp
}

// Merge 把新记录放到已有记录之前：concat(newEntries, buf)。
// 不排序也不去重，输入顺序由 provider 保证。
func Merge(newEntries, buf Buffer) Buffer {
	if len(newEntries) == 0 {
		return buf
	}
	out := make(Buffer, 0, len(newEntries)+len(buf))
	out = append(out, newEntries...)
	return append(out, buf...)
}

// Since 计算下一次请求的下界：所有 buffer 头部时间戳的最大值，全空时为 0。
func Since(buffers ...Buffer) int64 {
	var since int64
	for _, b := range buffers {
		if head := b.Head(); head > since {
			since = head
		}
	}
	return since
}

// Dedup 丢弃时间戳已出现过的记录，保留先出现（更新）的那条。
func Dedup(buf Buffer) Buffer {
	if len(buf) < 2 {
		return buf
	}
	seen := make(map[int64]struct{}, len(buf))
	out := buf[:0:0]
	for _, e := range buf {
		if _, ok := seen[e.Timestamp]; ok {
			continue
		}
		seen[e.Timestamp] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Truncate 只保留最新的 max 条；max <= 0 表示不限制。
func Truncate(buf Buffer, max int) Buffer {
	if max <= 0 || len(buf) <= max {
		return buf
	}
	return buf[:max:max]
}

// Values 返回按 buffer 顺序排列的值。
func (b Buffer) Values() []string {
	out := make([]string, 0, len(b))
	for _, e := range b {
		out = append(out, e.Value)
	}
	return out
}
