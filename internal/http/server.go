// Package http exposes the billing engine as a JSON API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"fatura/internal/cache"
	"fatura/internal/core"
	"fatura/internal/services"
	"fatura/internal/sheets"
)

// Store is the slice of the repository the API writes and reads through.
type Store interface {
	CreateCard(ctx context.Context, c core.Card) (core.Card, error)
	ListCards(ctx context.Context) ([]core.Card, error)
	CreateInstallmentDebt(ctx context.Context, d core.InstallmentDebt) (core.InstallmentDebt, error)
	CreateRecurringTransaction(ctx context.Context, r core.RecurringTransaction) (core.RecurringTransaction, error)
}

type Server struct {
	http.Server
	store       Store
	invoices    *services.InvoiceService
	rateLimiter *rateLimiter

	// Optional spreadsheet log of exported statements; nil disables it.
	stmtWriter sheets.StatementWriter

	// LRU cache for assembled statements, invalidated on every write
	stmtCache *cache.LRUCache[*services.Statement]
	cacheMgr  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run http.Server.
// stmtWriter may be nil when no spreadsheet is configured.
func NewServer(addr string, store Store, invoices *services.InvoiceService, stmtWriter sheets.StatementWriter) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:       store,
		invoices:    invoices,
		stmtWriter:  stmtWriter,
		rateLimiter: newRateLimiter(),
		stmtCache:   cache.NewLRUCache[*services.Statement](100, 5*time.Minute),
		cacheMgr:    cache.NewManager(),
	}

	s.cacheMgr.Register(s.stmtCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/cards", s.withSecurityHeaders(s.handleCards))
	mux.HandleFunc("/installments", s.withSecurityHeaders(s.handleCreateInstallment))
	mux.HandleFunc("/recurring", s.withSecurityHeaders(s.handleCreateRecurring))
	mux.HandleFunc("/invoice", s.withSecurityHeaders(s.handleInvoice))
	mux.HandleFunc("/invoice/status", s.withSecurityHeaders(s.handleInvoiceStatus))
	mux.HandleFunc("/invoice/export", s.withSecurityHeaders(s.handleInvoiceExport))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheMgr != nil {
			s.cacheMgr.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting and request logging.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Rate limit writes only; reads are cached and cheap.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) statementCacheKey(cardID string, month time.Month, year int) string {
	return cardID + "-" + strconv.Itoa(year) + "-" + strconv.Itoa(int(month))
}

// invalidateStatements drops the cached statements for a card. Months are
// bounded, so probing all twelve keys per plausible year is cheaper than
// keeping a reverse index. Only year±1 is probed: a statement cached under a
// further-out explicitly-queried year survives the write until its TTL
// expires (5 minutes, see NewServer).
func (s *Server) invalidateStatements(cardID string, year int) {
	for y := year - 1; y <= year+1; y++ {
		for m := 1; m <= 12; m++ {
			s.stmtCache.Delete(s.statementCacheKey(cardID, time.Month(m), y))
		}
	}
}

func (s *Server) getStatement(ctx context.Context, cardID string, month time.Month, year int, now time.Time) (*services.Statement, error) {
	// month 0 means "let the billing cycle pick"; the resolved month is only
	// known after assembly, so the cache is keyed on the statement itself.
	if month != 0 {
		key := s.statementCacheKey(cardID, month, year)
		if stmt, found := s.stmtCache.Get(key); found {
			slog.DebugContext(ctx, "Statement cache hit", "card_id", cardID, "year", year, "month", int(month))
			return stmt, nil
		}
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	stmt, err := s.invoices.Statement(cctx, cardID, month, year, now)
	if err != nil {
		return nil, err
	}

	s.stmtCache.Set(s.statementCacheKey(cardID, stmt.Month, stmt.Year), stmt)
	return stmt, nil
}
