package provider

import (
	"errors"
	"fmt"

	"hrview/internal/history"

	"github.com/tidwall/gjson"
)

// ErrMalformedResponse 表示响应体不是约定的 {state: [[ts, v]...], heart_rate: [...]} 结构。
var ErrMalformedResponse = errors.New("malformed history response")

const (
	keyState     = "state"
	keyHeartRate = "heart_rate"
)

// DecodeSnapshot 解析 History Provider 的响应体。缺失的键视为空序列。
func DecodeSnapshot(body []byte) (history.Snapshot, error) {
	if !gjson.ValidBytes(body) {
		return history.Snapshot{}, fmt.Errorf("%w: invalid json", ErrMalformedResponse)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return history.Snapshot{}, fmt.Errorf("%w: expected object, got %s", ErrMalformedResponse, root.Type)
	}
	state, err := decodeSeries(root.Get(keyState), keyState)
	if err != nil {
		return history.Snapshot{}, err
	}
	heartRate, err := decodeSeries(root.Get(keyHeartRate), keyHeartRate)
	if err != nil {
		return history.Snapshot{}, err
	}
	return history.Snapshot{State: state, HeartRate: heartRate}, nil
}

func decodeSeries(r gjson.Result, name string) (history.Buffer, error) {
	if !r.Exists() || r.Type == gjson.Null {
		return nil, nil
	}
	if !r.IsArray() {
		return nil, fmt.Errorf("%w: %s is not an array", ErrMalformedResponse, name)
	}
	items := r.Array()
	out := make(history.Buffer, 0, len(items))
	for i, item := range items {
		pair := item.Array()
		if !item.IsArray() || len(pair) != 2 {
			return nil, fmt.Errorf("%w: %s[%d] is not a [timestamp, value] pair", ErrMalformedResponse, name, i)
		}
		if pair[0].Type != gjson.Number {
			return nil, fmt.Errorf("%w: %s[%d] timestamp is not a number", ErrMalformedResponse, name, i)
		}
		// 原 provider 输出浮点毫秒，Int() 向零截断。
		out = append(out, history.Entry{Timestamp: pair[0].Int(), Value: scalarText(pair[1])})
	}
	return out, nil
}

func scalarText(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Raw
	case gjson.True, gjson.False:
		return r.String()
	case gjson.Null:
		return ""
	default:
		return r.Raw
	}
}
