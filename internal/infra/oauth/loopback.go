// Package oauth implements the browser-redirect half of the GitHub
// authorization-code flow with a loopback HTTP listener.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/pkg/browser"
	"golang.org/x/oauth2"

	"github.com/runoshun/idraft/internal/domain"
)

// Ensure Loopback implements domain.Authorizer.
var _ domain.Authorizer = (*Loopback)(nil)

// ErrStateMismatch is reported when the callback state does not match the request.
var ErrStateMismatch = errors.New("oauth state mismatch")

const shutdownTimeout = 2 * time.Second

// Loopback opens the authorize page in a browser and waits for the redirect
// on a local listener.
// Fields are ordered to minimize memory padding.
type Loopback struct {
	open         func(url string) error
	onAuthURL    func(url string)
	newState     func() string
	logger       domain.Logger
	authorizeURL string
	host         string
	port         int
}

// LoopbackOptions configures a Loopback.
type LoopbackOptions struct {
	Logger       domain.Logger
	AuthorizeURL string
	Host         string
	Port         int // 0 picks a free port

	// Opener opens url in a browser. Defaults to the system browser.
	Opener func(url string) error

	// OnAuthURL is called with the authorize URL before the browser opens.
	OnAuthURL func(url string)
}

// NewLoopback creates a new Loopback.
func NewLoopback(opts LoopbackOptions) *Loopback {
	open := opts.Opener
	if open == nil {
		open = openBrowser
	}
	host := opts.Host
	if host == "" {
		host = domain.DefaultRedirectHost
	}
	authorizeURL := opts.AuthorizeURL
	if authorizeURL == "" {
		authorizeURL = domain.DefaultAuthorizeURL
	}
	return &Loopback{
		open:         open,
		onAuthURL:    opts.OnAuthURL,
		newState:     uuid.NewString,
		logger:       opts.Logger,
		authorizeURL: authorizeURL,
		host:         host,
		port:         opts.Port,
	}
}

func openBrowser(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

// Authorize starts the listener, opens the authorize page and returns.
// The first callback is delivered on the channel, after which the listener
// shuts down and the channel is closed. Cancelling ctx closes the channel
// without a result.
func (l *Loopback) Authorize(ctx context.Context, req domain.AuthorizationRequest) (<-chan domain.AuthorizationResult, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort(l.host, strconv.Itoa(l.port)))
	if err != nil {
		return nil, fmt.Errorf("listen for oauth callback: %w", err)
	}

	state := l.newState()
	cfg := oauth2.Config{
		ClientID:    req.ClientID,
		Scopes:      req.Scopes,
		RedirectURL: "http://" + ln.Addr().String() + domain.DefaultCallbackRoute,
		Endpoint:    oauth2.Endpoint{AuthURL: l.authorizeURL},
	}
	authURL := cfg.AuthCodeURL(state)

	results := make(chan domain.AuthorizationResult, 1)
	done := make(chan struct{})
	var (
		mu       sync.Mutex
		finished bool
	)
	deliver := func(res domain.AuthorizationResult) bool {
		mu.Lock()
		defer mu.Unlock()
		if finished {
			return false
		}
		finished = true
		results <- res
		close(done)
		return true
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get(domain.DefaultCallbackRoute, func(w http.ResponseWriter, r *http.Request) {
		res := l.parseCallback(r, state)
		if !deliver(res) {
			http.Error(w, "authorization already completed", http.StatusConflict)
			return
		}
		writeCallbackPage(w, res)
	})

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.warn(fmt.Sprintf("callback server: %v", err))
		}
	}()

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		case <-stop:
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		_ = srv.Shutdown(shutdownCtx)
		cancel()

		mu.Lock()
		finished = true
		close(results)
		mu.Unlock()
	}()

	if l.onAuthURL != nil {
		l.onAuthURL(authURL)
	}
	if err := l.open(authURL); err != nil {
		if l.onAuthURL == nil {
			close(stop)
			return nil, fmt.Errorf("open browser: %w", err)
		}
		l.warn(fmt.Sprintf("open browser: %v", err))
	}

	l.debug("waiting for oauth callback on " + ln.Addr().String())
	return results, nil
}

// parseCallback classifies the redirect query.
func (l *Loopback) parseCallback(r *http.Request, state string) domain.AuthorizationResult {
	q := r.URL.Query()

	if q.Get("state") != state {
		return domain.AuthorizationResult{Outcome: domain.AuthorizationErrored, Err: ErrStateMismatch}
	}

	if e := q.Get("error"); e != "" {
		if e == "access_denied" {
			return domain.AuthorizationResult{Outcome: domain.AuthorizationCancelled}
		}
		if desc := q.Get("error_description"); desc != "" {
			return domain.AuthorizationResult{Outcome: domain.AuthorizationErrored, Err: fmt.Errorf("%s: %s", e, desc)}
		}
		return domain.AuthorizationResult{Outcome: domain.AuthorizationErrored, Err: errors.New(e)}
	}

	code := q.Get("code")
	if code == "" {
		return domain.AuthorizationResult{Outcome: domain.AuthorizationErrored, Err: errors.New("callback has no code")}
	}
	return domain.AuthorizationResult{Outcome: domain.AuthorizationSucceeded, Code: code}
}

func writeCallbackPage(w http.ResponseWriter, res domain.AuthorizationResult) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	switch res.Outcome {
	case domain.AuthorizationSucceeded:
		_, _ = io.WriteString(w, "Authorization received. You can close this window and return to idraft.\n")
	case domain.AuthorizationCancelled:
		_, _ = io.WriteString(w, "Authorization was cancelled. You can close this window.\n")
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprintf(w, "Authorization failed: %v\n", res.Err)
	}
}

func (l *Loopback) warn(msg string) {
	if l.logger != nil {
		l.logger.Warn("oauth", msg)
	}
}

func (l *Loopback) debug(msg string) {
	if l.logger != nil {
		l.logger.Debug("oauth", msg)
	}
}
