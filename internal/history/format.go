package history

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout 对应 MM/DD HH:MM:SS.mmm（24 小时制）。
const TimestampLayout = "01/02 15:04:05.000"

// FormatTimestamp 将毫秒时间戳按 loc 时区格式化；loc 为 nil 时使用本地时区。
func FormatTimestamp(millis int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(millis).In(loc).Format(TimestampLayout)
}

// FormatElapsed 将时长格式化为 HH:MM:SS.mmm，小时不封顶。
// 负时长按绝对值格式化，符号由调用方决定。
func FormatElapsed(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		return FormatElapsedMillis(uint64(-(ms + 1)) + 1)
	}
	return FormatElapsedMillis(uint64(ms))
}

// FormatElapsedMillis 按毫秒数格式化，覆盖任意两个 int64 时间戳之差。
func FormatElapsedMillis(ms uint64) string {
	hours := ms / 3_600_000
	minutes := (ms / 60_000) % 60
	seconds := (ms / 1000) % 60
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// ElapsedMillis 返回 now 与记录时间戳之差的绝对值（毫秒），future 表示记录晚于 now。
// 以 uint64 求差，不经过 time.Duration，时间戳再离谱也不会溢出。
func ElapsedMillis(e Entry, now time.Time) (ms uint64, future bool) {
	n := now.UnixMilli()
	if e.Timestamp > n {
		return uint64(e.Timestamp) - uint64(n), true
	}
	return uint64(n) - uint64(e.Timestamp), false
}

// FormatLine 生成单行："<local-ts> (-<elapsed>) <value>"。
// 时间戳晚于 now（时钟偏差）时写作 (+<elapsed>)。
func FormatLine(e Entry, now time.Time, loc *time.Location) string {
	ms, future := ElapsedMillis(e, now)
	sign := "-"
	if future {
		sign = "+"
	}
	return fmt.Sprintf("%s (%s%s) %s", FormatTimestamp(e.Timestamp, loc), sign, FormatElapsedMillis(ms), e.Value)
}

// Lines 按 buffer 顺序（最新在前）逐条格式化。
func Lines(entries Buffer, now time.Time, loc *time.Location) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, FormatLine(e, now, loc))
	}
	return out
}

// FormatHistory 用换行连接所有行，末尾不带换行；空 buffer 返回空串。
func FormatHistory(entries Buffer, now time.Time, loc *time.Location) string {
	return strings.Join(Lines(entries, now, loc), "\n")
}
