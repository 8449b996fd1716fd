package web

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"techfest/internal/adapters/email"
	"techfest/internal/adapters/http/middleware"
	store "techfest/internal/adapters/storage/participant"
	domain "techfest/internal/domain/participant"
	"techfest/internal/metrics"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// App holds the explicit handles every handler works through: the
// participant store, the one deadline computed at startup, and the ambient
// adapters. No hidden globals; the presentation layer is a thin translator
// from HTTP to orchestrator/projection calls.
type App struct {
	ParticipantStore store.Store
	Deadline         domain.Deadline
	Metrics          *metrics.Metrics
	Sender           email.Sender

	EventName string
	EventInfo string // markdown, rendered on the registration page
	EmailFrom string

	Now        func() time.Time
	GenerateID func() string
}

// NewMux wires HTTP handlers for the app.
func NewMux(app *App, csrfKey []byte, ratePerSecond int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", app.handleRegistrationPage)
	mux.HandleFunc("/register", app.handleRegister)
	mux.HandleFunc("/admin", app.handleAdminDashboard)
	mux.HandleFunc("/admin/participants/delete", app.handleDeleteParticipant)
	mux.HandleFunc("/admin/clear", app.handleClearAll)
	mux.HandleFunc("/admin/export", app.handleExport)
	mux.HandleFunc("/api/stats", app.handleStats)
	mux.Handle("/metrics", promhttp.Handler())

	if len(csrfKey) == 0 {
		csrfKey = generateCSRFKey()
	}

	limiter := middleware.NewRateLimiter(ratePerSecond, time.Second)

	// Apply middleware: RateLimit -> RequestID -> Timing -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Timing(app.Metrics),
		middleware.RequestID,
		middleware.RateLimit(limiter),
	)
}

// generateCSRFKey makes an ephemeral key for development. Tokens stop
// verifying across restarts, so production sets TECHFEST_CSRF_KEY.
func generateCSRFKey() []byte {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate CSRF key: " + err.Error())
	}
	slog.Warn("csrf_key_generated", "hint", "set TECHFEST_CSRF_KEY to persist sessions across restarts", "key", hex.EncodeToString(key))
	return key
}
