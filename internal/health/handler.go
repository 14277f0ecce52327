package health

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Пути проб.
const (
	PathLiveness  = "/healthz"
	PathReadiness = "/readyz"
	PathStartup   = "/startupz"
)

// Register регистрирует пробы в mux.
//
//   - /healthz  — 200, пока жив цикл потребления
//   - /readyz   — 200, только при активном соединении с брокером
//   - /startupz — то же, что /readyz
func Register(mux *http.ServeMux, r Reader) {
	mux.HandleFunc(PathLiveness, probe(r.Alive))
	mux.HandleFunc(PathReadiness, probe(r.Connected))
	mux.HandleFunc(PathStartup, probe(r.Connected))
}

// Guard оборачивает служебный сервер: паника обработчика отдаёт 503 "unhealthy",
// каждый запрос пишется в лог на уровне debug.
func Guard(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				logger.Error("probe handler panic", "path", r.URL.Path, "panic", p)
				write(sw, http.StatusServiceUnavailable, "unhealthy")
			}
			logger.Debug("probe request",
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start),
			)
		}()

		next.ServeHTTP(sw, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func probe(check func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if check() {
			write(w, http.StatusOK, "ok")
			return
		}
		write(w, http.StatusServiceUnavailable, "unhealthy")
	}
}

func write(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
