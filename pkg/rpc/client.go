package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/refring/monero-rpc-go/pkg/log"
)

// JSONRPCPath is the endpoint of the JSON-RPC interface below the base URL.
const JSONRPCPath = "/json_rpc"

// Config configures a Client.
type Config struct {
	// URL is the base URL of the node, e.g. "http://127.0.0.1:18081".
	URL string
	// Doer performs the HTTP requests.
	Doer HTTPDoer
	// Header is sent with every request.
	Header map[string]string
	// Credentials enable HTTP Digest authentication when set.
	Credentials *Credentials
	// Classifier maps JSON-RPC errors. Defaults to the standard rules only.
	Classifier *Classifier
	// Logger receives one entry per call. Defaults to a NoopLogger.
	Logger log.Logger
	// Timeout bounds every call when positive.
	Timeout time.Duration
	// Metrics is optional.
	Metrics *Metrics
	// Limiter is waited on before every HTTP exchange when set.
	Limiter *rate.Limiter
}

// settings is the mutable part of the configuration. A snapshot is never
// modified after it is stored.
type settings struct {
	header      map[string]string
	credentials *Credentials
}

// Client performs JSON-RPC calls against one Monero node or wallet.
//
// The base URL is fixed at creation. Headers and credentials can be replaced
// at any time; each call reads them once, so a call in flight keeps using the
// values it started with.
//
// The Client is safe for concurrent use.
//
// Example usage:
//
//	client := rpc.NewClient(rpc.Config{
//	    URL:  "http://127.0.0.1:18082",
//	    Doer: http.DefaultClient,
//	})
//
//	var res struct {
//	    Height uint64 `json:"height"`
//	}
//	if err := client.Invoke(ctx, "get_height", nil, &res); err != nil {
//	    return err
//	}
type Client struct {
	baseURL     string
	redactedURL string
	transport   *Transport
	classifier  *Classifier
	logger      log.Logger
	timeout     time.Duration
	metrics     *Metrics

	settings atomic.Pointer[settings]
}

// NewClient creates a Client. Missing optional fields take their defaults;
// a nil Doer uses http.DefaultClient.
func NewClient(conf Config) *Client {
	doer := conf.Doer
	if doer == nil {
		doer = http.DefaultClient
	}
	classifier := conf.Classifier
	if classifier == nil {
		classifier = NewClassifier()
	}
	logger := conf.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	baseURL := strings.TrimRight(conf.URL, "/")
	redacted := redactURL(baseURL)
	c := &Client{
		baseURL:     baseURL,
		redactedURL: redacted,
		transport:   NewTransport(doer, conf.Limiter),
		classifier:  classifier,
		logger:      logger.WithName("rpc").WithKV("url", redacted),
		timeout:     conf.Timeout,
		metrics:     conf.Metrics,
	}
	c.settings.Store(&settings{
		header:      maps.Clone(conf.Header),
		credentials: cloneCredentials(conf.Credentials),
	})
	return c
}

// URL returns the base URL of the client.
func (c *Client) URL() string {
	return c.baseURL
}

// Classifier returns the classifier used for JSON-RPC errors.
func (c *Client) Classifier() *Classifier {
	return c.classifier
}

// Headers returns a copy of the headers sent with every request.
func (c *Client) Headers() map[string]string {
	return maps.Clone(c.settings.Load().header)
}

// SetHeaders replaces the headers sent with every request.
func (c *Client) SetHeaders(header map[string]string) {
	header = maps.Clone(header)
	c.update(func(s *settings) { s.header = header })
}

// SetCredentials enables HTTP Digest authentication for subsequent calls.
func (c *Client) SetCredentials(username, password string) {
	creds := &Credentials{Username: username, Password: password}
	c.update(func(s *settings) { s.credentials = creds })
}

// ClearCredentials disables authentication for subsequent calls.
func (c *Client) ClearCredentials() {
	c.update(func(s *settings) { s.credentials = nil })
}

func (c *Client) update(apply func(s *settings)) {
	for {
		old := c.settings.Load()
		next := *old
		apply(&next)
		if c.settings.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Invoke calls a JSON-RPC method. params is encoded as the "params" member
// and may be nil. On success the result is decoded into result, which must
// be a pointer or nil. On failure result is left untouched and the returned
// error is an *Error.
func (c *Client) Invoke(ctx context.Context, method string, params, result any) error {
	body, err := EncodeRequest(method, params)
	if err != nil {
		c.observe(ctx, method, uuid.NewString(), time.Now(), err)
		return err
	}

	return c.exchange(ctx, method, http.MethodPost, c.baseURL+JSONRPCPath, body, func(reply Reply) error {
		if !isSuccess(reply.Status) {
			return c.classifyHTTP(reply)
		}
		return DecodeResponse(reply.Status, reply.Body, result, c.classifier)
	})
}

// InvokeOther calls one of the daemon endpoints outside the JSON-RPC
// interface. The request is POST {base}/{path} with params as a bare JSON
// body, or GET when params is nil. The reply body is decoded into result.
func (c *Client) InvokeOther(ctx context.Context, path string, params, result any) error {
	path = strings.TrimPrefix(path, "/")

	httpMethod := http.MethodGet
	var body []byte
	if !isNilValue(params) {
		var err error
		if body, err = json.Marshal(params); err != nil {
			encErr := newError(KindEncode, fmt.Sprintf("params of %q", path), err)
			c.observe(ctx, path, uuid.NewString(), time.Now(), encErr)
			return encErr
		}
		httpMethod = http.MethodPost
	}

	return c.exchange(ctx, path, httpMethod, c.baseURL+"/"+path, body, func(reply Reply) error {
		if !isSuccess(reply.Status) {
			return c.classifyHTTP(reply)
		}
		return DecodeBare(reply.Body, result)
	})
}

// Call invokes a JSON-RPC method and returns its decoded result. On failure
// it returns the zero R.
func Call[R any](ctx context.Context, c *Client, method string, params any) (R, error) {
	var res R
	if err := c.Invoke(ctx, method, params, &res); err != nil {
		var zero R
		return zero, err
	}
	return res, nil
}

// CallOther is Call for the endpoints served by InvokeOther.
func CallOther[R any](ctx context.Context, c *Client, path string, params any) (R, error) {
	var res R
	if err := c.InvokeOther(ctx, path, params, &res); err != nil {
		var zero R
		return zero, err
	}
	return res, nil
}

func (c *Client) exchange(ctx context.Context, name, httpMethod, endpoint string, body []byte, decode func(Reply) error) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	callID := uuid.NewString()
	start := time.Now()
	snapshot := c.settings.Load()

	reply, err := c.transport.Send(ctx, Exchange{
		URL:         endpoint,
		Method:      httpMethod,
		Header:      snapshot.header,
		Credentials: snapshot.credentials,
		Body:        body,
	})
	if err == nil {
		if reply.Challenged {
			c.metrics.observeChallenge(name)
		}
		err = decode(reply)
	}

	c.observe(ctx, name, callID, start, err)
	return err
}

// classifyHTTP handles a non-2xx reply. A JSON-RPC error object in the body
// takes precedence over the status.
func (c *Client) classifyHTTP(reply Reply) error {
	var envelope struct {
		Error *ErrorObject `json:"error"`
	}
	if err := json.Unmarshal(reply.Body, &envelope); err == nil && envelope.Error != nil {
		return c.classifier.Classify(reply.Status, &envelope.Error.Code, envelope.Error.Message, envelope.Error.Data)
	}
	return c.classifier.Classify(reply.Status, nil, http.StatusText(reply.Status), nil)
}

func (c *Client) observe(ctx context.Context, name, callID string, start time.Time, err error) {
	duration := time.Since(start)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if rpcErr, ok := AsError(err); ok {
			outcome = rpcErr.Kind.String()
		}
	}
	c.metrics.observe(name, outcome, duration)

	lg := c.callLogger(ctx)
	kv := []any{"method", name, "call_id", callID, "duration", duration, "outcome", outcome}
	if err != nil {
		lg.Warn("rpc call failed", append(kv, "error", err)...)
		return
	}
	lg.Debug("rpc call finished", kv...)
}

// callLogger prefers a logger the caller stored in ctx with
// log.SetContextLogger. Otherwise the client's logger is used, recording to
// the span in ctx if there is one.
func (c *Client) callLogger(ctx context.Context) log.Logger {
	if lg, ok := log.ContextLogger(ctx); ok {
		return lg.WithName("rpc").WithKV("url", c.redactedURL)
	}
	return log.FromContext(log.SetContextLogger(ctx, c.logger))
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}

func cloneCredentials(creds *Credentials) *Credentials {
	if creds == nil {
		return nil
	}
	cp := *creds
	return &cp
}

// redactURL hides the password of a URL carrying user info.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
