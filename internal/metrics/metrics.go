package metrics

import (
	"net/http"
	"strconv"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carchat_http_requests_total",
			Help: "HTTP requests by path, method and status code.",
		},
		[]string{"path", "method", "status"},
	)

	questionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carchat_questions_total",
		Help: "Questions received on /ask.",
	})

	cacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carchat_cache_hits_total",
		Help: "Questions answered from the chat cache.",
	})

	cacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carchat_cache_misses_total",
		Help: "Questions that went through retrieval and generation.",
	})
)

// Register adds the service metrics to the default registry. Called once
// from the serve command; no init() registration.
func Register() {
	prometheus.MustRegister(requestsTotal, questionsTotal, cacheHitsTotal, cacheMissesTotal)
}

// Middleware counts every request with its final status code.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			requestsTotal.WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(ww.Status())).Inc()
		})
	}
}

func QuestionReceived() { questionsTotal.Inc() }
func CacheHit()         { cacheHitsTotal.Inc() }
func CacheMiss()        { cacheMissesTotal.Inc() }
