// ABOUTME: Standard HTTP client with retry logic, a concurrency cap and browser headers
// ABOUTME: Shared transport for the page and image fetchers

package standard

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"newscard-api/core/interfaces"
)

const (
	maxRetries   = 3
	maxRedirects = 10
)

// Options configures the HTTP client
type Options struct {
	// Timeout bounds one request including retries' individual attempts
	Timeout time.Duration

	// MaxConcurrent caps simultaneous requests; zero means unlimited
	MaxConcurrent int

	// InsecureSkipVerify disables certificate checks. News CDNs are often
	// served with broken chains.
	InsecureSkipVerify bool
}

// StandardHTTPClient implements the HTTPClient interface using net/http
type StandardHTTPClient struct {
	client *http.Client
	slots  chan struct{}
}

// NewStandardHTTPClient creates a new HTTP client
func NewStandardHTTPClient(opts Options) *StandardHTTPClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: opts.InsecureSkipVerify} //nolint:gosec

	c := &StandardHTTPClient{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
	if opts.MaxConcurrent > 0 {
		c.slots = make(chan struct{}, opts.MaxConcurrent)
	}
	return c
}

func (c *StandardHTTPClient) acquire(ctx context.Context) error {
	if c.slots == nil {
		return nil
	}
	select {
	case c.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *StandardHTTPClient) release() {
	if c.slots != nil {
		<-c.slots
	}
}

// Get performs an HTTP GET request with browser headers, retrying 5xx
// responses and transport errors
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.release()
		return nil, err
	}
	req.Header.Set("User-Agent", interfaces.BrowserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", interfaces.BrowserAcceptLanguage)
	req.Header.Set("Accept-Encoding", "identity")

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				c.release()
				return nil, ctx.Err()
			}
		}

		resp, err = c.client.Do(req)
		if err != nil {
			lastErr = err
			resp = nil
			if ctx.Err() != nil || isCertificateError(err) {
				break
			}
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 || attempt == maxRetries-1 {
			break
		}

		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp.Body.Close()
		resp = nil
	}

	if resp == nil {
		c.release()
		if lastErr == nil {
			lastErr = errors.New("request failed")
		}
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       &releasingBody{ReadCloser: resp.Body, release: c.release},
		headers:    resp.Header,
		finalURL:   resp.Request.URL.String(),
	}, nil
}

// isCertificateError reports whether err is a failed certificate check,
// which no retry can fix
func isCertificateError(err error) bool {
	var verifyErr *tls.CertificateVerificationError
	var authorityErr x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	var invalidErr x509.CertificateInvalidError
	return errors.As(err, &verifyErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &invalidErr)
}

// releasingBody frees the concurrency slot when the caller closes the body
type releasingBody struct {
	io.ReadCloser
	release func()
	closed  bool
}

func (b *releasingBody) Close() error {
	err := b.ReadCloser.Close()
	if !b.closed {
		b.closed = true
		b.release()
	}
	return err
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
	finalURL   string
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}

// FinalURL returns the URL after redirects
func (r *httpResponse) FinalURL() string {
	return r.finalURL
}
