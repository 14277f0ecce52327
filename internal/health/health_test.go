package health

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestState_Defaults(t *testing.T) {
	s := NewState()
	if s.Connected() || s.Alive() {
		t.Error("new state should be neither connected nor alive")
	}

	s.SetAlive(true)
	s.SetConnected(true)
	if !s.Connected() || !s.Alive() {
		t.Error("flags should be set")
	}
}

func TestState_ConcurrentAccess(t *testing.T) {
	s := NewState()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(v bool) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.SetConnected(v)
			}
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = s.Connected()
			}
		}()
	}
	wg.Wait()
}

func TestProbes(t *testing.T) {
	tests := []struct {
		name      string
		alive     bool
		connected bool
		want      map[string]int
	}{
		{
			name: "starting",
			want: map[string]int{
				PathLiveness:  http.StatusServiceUnavailable,
				PathReadiness: http.StatusServiceUnavailable,
				PathStartup:   http.StatusServiceUnavailable,
			},
		},
		{
			name:  "alive but disconnected",
			alive: true,
			want: map[string]int{
				PathLiveness:  http.StatusOK,
				PathReadiness: http.StatusServiceUnavailable,
				PathStartup:   http.StatusServiceUnavailable,
			},
		},
		{
			name:      "consuming",
			alive:     true,
			connected: true,
			want: map[string]int{
				PathLiveness:  http.StatusOK,
				PathReadiness: http.StatusOK,
				PathStartup:   http.StatusOK,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.SetAlive(tt.alive)
			s.SetConnected(tt.connected)

			mux := http.NewServeMux()
			Register(mux, s)

			for path, status := range tt.want {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

				if rec.Code != status {
					t.Errorf("%s: expected %d, got %d", path, status, rec.Code)
				}
				wantBody := "ok"
				if status != http.StatusOK {
					wantBody = "unhealthy"
				}
				if rec.Body.String() != wantBody {
					t.Errorf("%s: expected body %q, got %q", path, wantBody, rec.Body.String())
				}
			}
		})
	}
}

func TestGuard_RecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := Guard(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), logger)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathReadiness, nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
	if rec.Body.String() != "unhealthy" {
		t.Errorf("expected unhealthy body, got %q", rec.Body.String())
	}
	if !strings.Contains(buf.String(), "probe handler panic") {
		t.Errorf("expected panic to be logged, got %q", buf.String())
	}
}

func TestGuard_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mux := http.NewServeMux()
	Register(mux, NewState())

	rec := httptest.NewRecorder()
	Guard(mux, logger).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathLiveness, nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for a stopped worker, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "status=503") || !strings.Contains(buf.String(), "path=/healthz") {
		t.Errorf("unexpected request log: %q", buf.String())
	}
}
