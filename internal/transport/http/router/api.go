package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gab-correia/w1-app/internal/core/server"
	mdw "github.com/gab-correia/w1-app/internal/transport/http/middleware"
	resp "github.com/gab-correia/w1-app/internal/transport/http/response"
)

type Options struct {
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	MaxInFlight    int64
	CORSOrigins    []string

	// whole-server token bucket; zero disables it
	GlobalRatePerSec float64
	GlobalRateBurst  int

	// per client IP on /api/auth/*; zero disables the limiter
	AuthRatePerSec float64
	AuthRateBurst  int
}

func (o *Options) defaults() {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 10 * time.Second
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 1 << 20
	}
	if o.MaxInFlight <= 0 {
		o.MaxInFlight = 300
	}
}

// NewAPIEngine builds the /api routes. Everything a module mounts on the
// protected group runs only after mdw.AuthJWT accepted the bearer token.
func NewAPIEngine(l *zap.Logger, verifier mdw.TokenVerifier, opts Options, mods ...Module) *gin.Engine {
	opts.defaults()
	r := server.NewRouter(l, opts.CORSOrigins)

	r.Use(mdw.RequestID())
	if opts.GlobalRatePerSec > 0 {
		r.Use(mdw.RateLimit(rate.Limit(opts.GlobalRatePerSec), max(1, opts.GlobalRateBurst)))
	}
	r.Use(
		mdw.ConcurrencyLimit(opts.MaxInFlight),
		mdw.MaxBodyBytes(opts.MaxBodyBytes),
		mdw.Timeout(opts.RequestTimeout),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", mdw.MetricsHandler())

	api := r.Group("/api")
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, resp.Message{Message: "backend running"})
	})

	public := api.Group("")
	if opts.AuthRatePerSec > 0 {
		public = api.Group("", mdw.RateLimitPerIP(rate.Limit(opts.AuthRatePerSec), max(1, opts.AuthRateBurst), 10*time.Minute))
	}
	protected := api.Group("", mdw.AuthJWT(verifier, l))

	mountAll(public, protected, mods)
	return r
}
