package listafirme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-firme/internal/audit"
	"go-firme/internal/config"
	"go-firme/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	infoPath        = "/info-v2.asp"
	formContentType = "application/x-www-form-urlencoded"
	maxErrorSnippet = 200
)

// Client calls the Lista Firme info-v2 endpoint. Each Fetch is a single
// attempt and records exactly one audit entry.
type Client struct {
	http        *http.Client
	endpoint    string
	apiKey      string
	userAgent   string
	timeout     time.Duration
	openTimeout time.Duration
	sink        audit.Sink
	logger      *zap.Logger
}

func NewClient(cfg config.ListaFirmeConfig, sink audit.Sink, logger ...*zap.Logger) *Client {
	l := zap.L().Named("listafirme.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("listafirme.client")
	}
	if sink == nil {
		sink = audit.Nop
	}

	dialer := &net.Dialer{
		Timeout:   cfg.OpenTimeout,
		KeepAlive: 30 * time.Second,
	}

	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         dialer.DialContext,
				TLSHandshakeTimeout: cfg.OpenTimeout,
				ForceAttemptHTTP2:   true,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		endpoint:    strings.TrimRight(cfg.BaseURL, "/") + infoPath,
		apiKey:      cfg.APIKey,
		userAgent:   cfg.UserAgent,
		timeout:     cfg.Timeout,
		openTimeout: cfg.OpenTimeout,
		sink:        sink,
		logger:      l,
	}
}

// Fetch posts the field request for cui and returns the decoded payload.
// On failure the error is an *Error and the payload is nil.
func (c *Client) Fetch(ctx context.Context, cui string) (raw RawResponse, err error) {
	payload, _ := json.Marshal(BuildPayload(cui))

	headers := map[string]string{
		"User-Agent":   c.userAgent,
		"Content-Type": formContentType,
	}

	entry := audit.Entry{
		CUI:            cui,
		RequestURL:     c.endpoint,
		HTTPMethod:     http.MethodPost,
		RequestHeaders: headers,
		RequestBody:    "key=" + RedactKey(c.apiKey) + "&data=" + string(payload),
		UserIP:         audit.StrPtr(contextutil.GetClientIP(ctx)),
		OccurredAt:     time.Now(),
	}

	defer func() {
		if r := recover(); r != nil {
			raw = nil
			err = &Error{Kind: KindUnexpected, Message: fmt.Sprintf("unexpected error (%T): %v", r, r)}
			entry.ResponseStatus = 0
			entry.Duration = 0
		}

		var fetchErr *Error
		if errors.As(err, &fetchErr) {
			entry.ErrorMessage = &fetchErr.Message
			contextutil.GetLogger(ctx, c.logger).Warn("lista firme fetch failed",
				zap.String("cui", cui),
				zap.String("kind", string(fetchErr.Kind)),
				zap.Int("status", entry.ResponseStatus),
				zap.String("error", fetchErr.Message),
			)
		}

		// the audit row outlives a cancelled request
		c.sink.Record(context.WithoutCancel(ctx), entry)
	}()

	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("data", string(payload))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, unexpected(err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		fetchErr, d := c.classify(err)
		entry.Duration = d
		return nil, fetchErr
	}
	defer resp.Body.Close()

	entry.ResponseStatus = resp.StatusCode
	entry.ResponseHeaders = flattenHeaders(resp.Header)

	body, err := io.ReadAll(resp.Body)
	entry.ResponseBody = string(body)
	if err != nil {
		fetchErr, d := c.classify(err)
		entry.Duration = d
		return nil, fetchErr
	}
	entry.Duration = time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:       KindHTTPStatus,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, errorSnippet(body)),
		}
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &Error{
			Kind:       KindParse,
			StatusCode: resp.StatusCode,
			Message:    "invalid JSON response: " + err.Error(),
			Err:        err,
		}
	}
	if raw == nil {
		return nil, &Error{Kind: KindParse, StatusCode: resp.StatusCode, Message: "empty JSON response"}
	}

	if msg, ok := raw.ErrorText(); ok {
		return nil, &Error{Kind: KindProvider, StatusCode: resp.StatusCode, Message: msg}
	}

	return raw, nil
}

// classify maps a transport error to an *Error and the duration to record.
func (c *Client) classify(err error) (*Error, time.Duration) {
	var (
		netErr net.Error
		opErr  *net.OpError
		dnsErr *net.DNSError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()):
		if errors.As(err, &opErr) && opErr.Op == "dial" {
			return &Error{
				Kind:    KindTimeout,
				Message: fmt.Sprintf("connection open timed out after %s", c.openTimeout),
				Err:     err,
			}, c.openTimeout
		}
		return &Error{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("request timed out after %s", c.timeout),
			Err:     err,
		}, c.timeout
	case errors.As(err, &dnsErr), errors.As(err, &opErr):
		return &Error{Kind: KindConnection, Message: "connection failed: " + innermost(err).Error(), Err: err}, 0
	default:
		return unexpected(err), 0
	}
}

func unexpected(err error) *Error {
	inner := innermost(err)
	return &Error{
		Kind:    KindUnexpected,
		Message: fmt.Sprintf("unexpected error (%T): %v", inner, inner),
		Err:     err,
	}
}

// innermost strips the *url.Error wrapper added by net/http.
func innermost(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}

// errorSnippet prefers a JSON "error" or "message" field and falls back to
// the raw body cut to maxErrorSnippet runes.
func errorSnippet(body []byte) string {
	var obj map[string]any
	if json.Unmarshal(body, &obj) == nil {
		for _, k := range []string{"error", "message"} {
			if v, ok := obj[k]; ok && v != nil {
				return fmt.Sprint(v)
			}
		}
	}

	r := []rune(strings.TrimSpace(string(body)))
	if len(r) > maxErrorSnippet {
		r = r[:maxErrorSnippet]
	}
	return string(r)
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}
