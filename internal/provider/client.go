package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"hrview/internal/history"
	"hrview/internal/logger"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// RequestIDHeader 随每个请求发送，服务端原样回写。
const RequestIDHeader = "X-Request-Id"

// StatusError 表示 provider 返回了非 2xx 状态码。
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// Options 配置 Client。
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     logger.FetchLogger
}

// Client 访问 History Provider。并发安全；不做重试。
type Client struct {
	base       *url.URL
	timeout    time.Duration
	httpClient *http.Client
	log        logger.FetchLogger
	newID      func() string
}

// NewClient 校验 BaseURL 并构造 Client；缺少 scheme 时补 http://。
func NewClient(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, errors.New("provider url is empty")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse provider url %q: %w", opts.BaseURL, err)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("provider url %q has no host", opts.BaseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	var fl logger.FetchLogger = logger.NoopFetchLogger{}
	if opts.Logger != nil {
		fl = opts.Logger
	}
	return &Client{
		base:       base,
		timeout:    opts.Timeout,
		httpClient: httpClient,
		log:        fl,
		newID:      uuid.NewString,
	}, nil
}

// BaseURL 返回规范化后的 provider 地址。
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) endpoint(elem ...string) *url.URL {
	u := *c.base
	u.Path = path.Join(append([]string{"/", u.Path}, elem...)...)
	u.RawPath = ""
	u.RawQuery = ""
	return &u
}

// HistoryURL 返回 GET history?since=<since> 的完整地址。
func (c *Client) HistoryURL(since int64) string {
	u := c.endpoint("history")
	u.RawQuery = url.Values{"since": {strconv.FormatInt(since, 10)}}.Encode()
	return u.String()
}

// Fetch 请求时间戳严格大于 since 的新记录。
// 返回的两条序列保持 provider 给出的顺序（最新在前），本地不做校验。
func (c *Client) Fetch(ctx context.Context, since int64) (history.Snapshot, error) {
	id := c.newID()
	c.log.Request(id, since)
	start := time.Now()

	body, err := c.do(ctx, http.MethodGet, c.HistoryURL(since), id)
	if err != nil {
		c.log.Error(id, err)
		return history.Snapshot{}, err
	}
	snap, err := DecodeSnapshot(body)
	if err != nil {
		c.log.Error(id, err)
		return history.Snapshot{}, err
	}
	c.log.Response(id, len(snap.State), len(snap.HeartRate), time.Since(start))
	return snap, nil
}

// Result 是写接口的响应，沿用原 web API 的 (success, message) 形式。
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// SendState 设置冥想状态。
func (c *Client) SendState(ctx context.Context, state string) (Result, error) {
	return c.send(ctx, "state", state)
}

// SendHeartRate 设置心率。
func (c *Client) SendHeartRate(ctx context.Context, bpm int) (Result, error) {
	return c.send(ctx, "heart_rate", strconv.Itoa(bpm))
}

func (c *Client) send(ctx context.Context, kind, value string) (Result, error) {
	if strings.TrimSpace(value) == "" {
		return Result{}, fmt.Errorf("%s value is empty", kind)
	}
	u := c.endpoint("api", kind)
	u.RawPath = u.EscapedPath() + "/" + url.PathEscape(value)
	u.Path += "/" + value

	body, err := c.do(ctx, http.MethodPost, u.String(), c.newID())
	var statusErr *StatusError
	if err != nil && !errors.As(err, &statusErr) {
		return Result{}, err
	}
	parsed := gjson.ParseBytes(body)
	res := Result{OK: parsed.Get("ok").Bool(), Message: parsed.Get("message").String()}
	if res.Message == "" && err != nil {
		return Result{}, err
	}
	return res, nil
}

// do 执行请求并读取完整响应体；非 2xx 时返回 *StatusError 以及已读取的 body。
func (c *Client) do(ctx context.Context, method, target, requestID string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, &StatusError{Method: method, URL: target, StatusCode: resp.StatusCode}
	}
	return body, nil
}
