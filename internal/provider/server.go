package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hrview/internal/history"
	"hrview/internal/logger"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// NewHandler 返回演示 provider 的 HTTP 路由：
//
//	GET  /history?since=<millis>
//	GET  /api/current
//	POST /api/state/{value}
//	POST /api/heart_rate/{value}
func NewHandler(store *Store, log *logger.LogEntry) http.Handler {
	if log == nil {
		log = logger.Named("provider")
	}
	h := &handler{store: store, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /history", h.history)
	mux.HandleFunc("GET /api/current", h.current)
	mux.HandleFunc("POST /api/state/{value}", h.setState)
	mux.HandleFunc("POST /api/heart_rate/{value}", h.setHeartRate)
	return requestID(logging(log, mux))
}

type handler struct {
	store *Store
	log   *logger.LogEntry
}

func (h *handler) history(w http.ResponseWriter, r *http.Request) {
	since := int64(0)
	if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
		// 兼容原 provider 输出的浮点毫秒。
		f, err := strconv.ParseFloat(raw, 64)
		if err == nil && (math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64) {
			err = strconv.ErrRange
		}
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Result{Message: fmt.Sprintf("invalid since %q", raw)})
			return
		}
		since = int64(f)
	}
	snap := h.store.History(since)
	writeJSON(w, http.StatusOK, historyBody{
		State:     pairs(snap.State),
		HeartRate: pairs(snap.HeartRate),
	})
}

func (h *handler) current(w http.ResponseWriter, _ *http.Request) {
	state, heartRate := h.store.Current()
	writeJSON(w, http.StatusOK, map[string]string{keyState: state, keyHeartRate: heartRate})
}

func (h *handler) setState(w http.ResponseWriter, r *http.Request) {
	value := strings.TrimSpace(r.PathValue("value"))
	if value == "" {
		writeJSON(w, http.StatusBadRequest, Result{Message: "Meditation Level could not be set: empty value"})
		return
	}
	e := h.store.AddState(value)
	h.log.WithField(logger.RequestIDField, requestIDFrom(r.Context())).Infof("state set to %s at %d", value, e.Timestamp)
	writeJSON(w, http.StatusOK, Result{OK: true, Message: "Meditation Level " + value + " set!"})
}

func (h *handler) setHeartRate(w http.ResponseWriter, r *http.Request) {
	value := strings.TrimSpace(r.PathValue("value"))
	bpm, err := strconv.Atoi(value)
	if err != nil || bpm <= 0 {
		writeJSON(w, http.StatusBadRequest, Result{Message: "Heartrate " + value + " could not be set: not a positive integer"})
		return
	}
	e := h.store.AddHeartRate(strconv.Itoa(bpm))
	h.log.WithField(logger.RequestIDField, requestIDFrom(r.Context())).Infof("heart rate set to %d at %d", bpm, e.Timestamp)
	writeJSON(w, http.StatusOK, Result{OK: true, Message: "Heartrate " + strconv.Itoa(bpm) + " set!"})
}

type historyBody struct {
	State     [][2]any `json:"state"`
	HeartRate [][2]any `json:"heart_rate"`
}

func pairs(buf history.Buffer) [][2]any {
	out := make([][2]any, 0, len(buf))
	for _, e := range buf {
		out = append(out, [2]any{e.Timestamp, e.Value})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func logging(log *logger.LogEntry, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.WithField(logger.RequestIDField, requestIDFrom(r.Context())).
			Debugf("%s %s %d %v", r.Method, r.URL.Path, rec.statusCode, time.Since(start).Round(time.Microsecond))
	})
}

// Serve 在 addr 上运行 handler，ctx 结束时优雅关闭。
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
