package yahoohdd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Connection supplies the process-wide authenticated session used by every
// fetch worker. Both accessors are cheap and idempotent after construction;
// refresh policy belongs to the implementation, not to the fetch pipeline.
type Connection interface {
	// Session returns the HTTP client carrying the session cookies.
	Session() *http.Client

	// Crumb returns the auth token required by the download endpoint.
	Crumb() string
}

// DefaultQuoteURL is the page the crumb is scraped from.
const DefaultQuoteURL = "https://finance.yahoo.com/quote/SPY/history?p=SPY"

var crumbPattern = regexp.MustCompile(`CrumbStore":{"crumb":"(.*?)"}`)

// maxCrumbAttempts bounds the re-negotiation loop on escaped crumbs. The
// endpoint rejects crumbs containing backslash escapes with 401, so such a
// crumb forces a fresh session.
const maxCrumbAttempts = 5

// Session is a Connection backed by a cookie-session against the quote page.
type Session struct {
	quoteURL string
	client   *http.Client
	crumb    string
	logger   *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithQuoteURL overrides the page the crumb is scraped from.
func WithQuoteURL(u string) SessionOption {
	return func(s *Session) { s.quoteURL = u }
}

// WithSessionClient sets a custom HTTP client. A cookie jar is attached if
// the client has none.
func WithSessionClient(hc *http.Client) SessionOption {
	return func(s *Session) { s.client = hc }
}

// WithSessionLogger sets the logger.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// NewSession negotiates a new session and scrapes its crumb. The returned
// Session is read-only shared state, safe for use by concurrent workers.
func NewSession(ctx context.Context, opts ...SessionOption) (*Session, error) {
	s := &Session{
		quoteURL: DefaultQuoteURL,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: 30 * time.Second}
	}
	if s.client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, &AuthError{Err: fmt.Errorf("cookie jar: %w", err)}
		}
		s.client.Jar = jar
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Session implements Connection.
func (s *Session) Session() *http.Client { return s.client }

// Crumb implements Connection.
func (s *Session) Crumb() string { return s.crumb }

// Refresh drops the current cookies and negotiates a fresh crumb. Crumbs
// containing backslash escapes lead to 401 responses downstream, so those
// trigger another negotiation with a clean jar.
func (s *Session) Refresh(ctx context.Context) error {
	for attempt := 1; attempt <= maxCrumbAttempts; attempt++ {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return &AuthError{Err: fmt.Errorf("cookie jar: %w", err)}
		}
		s.client.Jar = jar

		crumb, err := s.fetchCrumb(ctx)
		if err != nil {
			return &AuthError{Err: err}
		}
		if !strings.Contains(crumb, `\`) {
			s.crumb = crumb
			s.logger.Debug("session crumb negotiated", "attempt", attempt)
			return nil
		}
		s.logger.Debug("discarding escaped crumb", "attempt", attempt)
	}
	return &AuthError{Err: fmt.Errorf("no usable crumb after %d attempts", maxCrumbAttempts)}
}

// fetchCrumb downloads the quote page and extracts the crumb from its
// embedded script payloads.
func (s *Session) fetchCrumb(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.quoteURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get quote page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("quote page returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read quote page: %w", err)
	}

	crumb, ok := extractCrumb(body)
	if !ok {
		return "", fmt.Errorf("no crumb found in quote page")
	}
	return crumb, nil
}

// extractCrumb walks the page's script nodes looking for the CrumbStore
// payload, falling back to a scan of the raw document.
func extractCrumb(page []byte) (string, bool) {
	doc, err := html.Parse(strings.NewReader(string(page)))
	if err == nil {
		if crumb, ok := crumbFromScripts(doc); ok {
			return crumb, true
		}
	}

	if m := crumbPattern.FindSubmatch(page); m != nil {
		return string(m[1]), true
	}
	return "", false
}

func crumbFromScripts(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "script" {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.TextNode {
				continue
			}
			if m := crumbPattern.FindStringSubmatch(child.Data); m != nil {
				return m[1], true
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if crumb, ok := crumbFromScripts(child); ok {
			return crumb, true
		}
	}
	return "", false
}
