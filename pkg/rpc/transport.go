package rpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"golang.org/x/time/rate"
)

// HTTPDoer performs a single HTTP request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Credentials is a username and password for HTTP Digest authentication.
type Credentials struct {
	Username string
	Password string
}

// Exchange describes one HTTP request issued by the client.
type Exchange struct {
	URL         string
	Method      string // http.MethodPost or http.MethodGet
	Header      map[string]string
	Credentials *Credentials
	Body        []byte
}

// Reply is the status and body of a completed HTTP exchange.
type Reply struct {
	Status int
	Header http.Header
	Body   []byte
	// Challenged is set when the reply followed a digest handshake.
	Challenged bool
}

// Transport sends exchanges over an HTTPDoer and answers HTTP Digest
// challenges. It is safe for concurrent use when the HTTPDoer is.
type Transport struct {
	doer    HTTPDoer
	limiter *rate.Limiter
}

// NewTransport creates a Transport. A nil limiter disables rate limiting.
func NewTransport(doer HTTPDoer, limiter *rate.Limiter) *Transport {
	return &Transport{doer: doer, limiter: limiter}
}

// Send performs the exchange. When the server answers 401 with a Digest
// challenge and credentials are set, the request is repeated exactly once
// with an Authorization header; a second 401 is an authentication failure.
// Replies with other statuses are returned as they are, leaving their
// interpretation to the caller.
func (t *Transport) Send(ctx context.Context, ex Exchange) (Reply, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return Reply{}, waitFailure(ctx, err)
		}
	}

	reply, uri, err := t.do(ctx, ex, "")
	if err != nil || reply.Status != http.StatusUnauthorized {
		return reply, err
	}

	if ex.Credentials == nil {
		return Reply{}, authFailure(reply.Status, "server requires authentication and no credentials are configured", nil)
	}
	authorization, err := answerChallenge(reply.Header, *ex.Credentials, ex.Method, uri)
	if err != nil {
		return Reply{}, authFailure(reply.Status, "cannot answer authentication challenge", err)
	}

	reply, _, err = t.do(ctx, ex, authorization)
	if err != nil {
		return Reply{}, err
	}
	if reply.Status == http.StatusUnauthorized {
		return Reply{}, authFailure(reply.Status, "credentials rejected", nil)
	}
	reply.Challenged = true
	return reply, nil
}

// do issues one request and returns the reply together with the request URI
// used for the digest computation.
func (t *Transport) do(ctx context.Context, ex Exchange, authorization string) (Reply, string, error) {
	var body io.Reader
	if ex.Body != nil {
		body = bytes.NewReader(ex.Body)
	}

	req, err := http.NewRequestWithContext(ctx, ex.Method, ex.URL, body)
	if err != nil {
		return Reply{}, "", NewConfigurationError(fmt.Sprintf("invalid request url %q", ex.URL), err)
	}
	for k, v := range ex.Header {
		req.Header.Set(k, v)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if ex.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := t.doer.Do(req)
	if err != nil {
		return Reply{}, "", transportFailure(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, "", transportFailure(ctx, fmt.Errorf("read response body: %w", err))
	}

	return Reply{Status: resp.StatusCode, Header: resp.Header, Body: respBody}, req.URL.RequestURI(), nil
}

func authFailure(status int, msg string, cause error) *Error {
	e := newError(KindAuthentication, msg, cause)
	e.Status = status
	return e
}

// transportFailure classifies an error returned while exchanging a request.
func transportFailure(ctx context.Context, err error) *Error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return newError(KindCanceled, "", err)
	}

	e := newError(KindTransport, "", err)
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		e.timeout = true
	}
	return e
}

// waitFailure classifies an error from the rate limiter. The limiter refuses
// to wait past the context deadline before the deadline has expired.
func waitFailure(ctx context.Context, err error) *Error {
	if ctx.Err() != nil {
		return transportFailure(ctx, ctx.Err())
	}
	e := newError(KindTransport, "rate limit wait", err)
	e.timeout = true
	return e
}
