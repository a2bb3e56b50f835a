// Package monerorpc builds typed clients for the Monero wallet and daemon RPC
// interfaces.
//
// One ClientBuilder collects the configuration shared by all client kinds and
// produces one of three facades:
//
//	wallet, err := monerorpc.NewClientBuilder("http://127.0.0.1:18082").
//	    WithAuthentication("monero", "secret").
//	    WithTimeout(30 * time.Second).
//	    BuildWalletClient()
//
//	daemon, err := monerorpc.NewClientBuilder("http://127.0.0.1:18081").BuildDaemonClient()
//	other, err := monerorpc.NewClientBuilder("http://127.0.0.1:18081").BuildDaemonOtherClient()
package monerorpc

import (
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/refring/monero-rpc-go/pkg/daemonother"
	"github.com/refring/monero-rpc-go/pkg/daemonrpc"
	"github.com/refring/monero-rpc-go/pkg/log"
	"github.com/refring/monero-rpc-go/pkg/rpc"
	"github.com/refring/monero-rpc-go/pkg/walletrpc"
)

// ClientType selects the facade produced by ClientBuilder.Build.
type ClientType int

const (
	// WalletClient talks to monero-wallet-rpc. It is the zero value.
	WalletClient ClientType = iota
	// DaemonClient talks to the JSON-RPC interface of monerod.
	DaemonClient
	// DaemonOtherClient talks to the non-JSON-RPC endpoints of monerod.
	DaemonOtherClient
)

func (t ClientType) String() string {
	switch t {
	case WalletClient:
		return "wallet"
	case DaemonClient:
		return "daemon"
	case DaemonOtherClient:
		return "daemon-other"
	default:
		return fmt.Sprintf("ClientType(%d)", int(t))
	}
}

// ParseClientType converts "wallet", "daemon" or "daemon-other" into a ClientType.
func ParseClientType(s string) (ClientType, error) {
	for _, t := range []ClientType{WalletClient, DaemonClient, DaemonOtherClient} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown client type %q", s)
}

// Facade is implemented by *walletrpc.Client, *daemonrpc.Client and
// *daemonother.Client.
type Facade interface {
	RPC() *rpc.Client
}

var (
	_ Facade = &walletrpc.Client{}
	_ Facade = &daemonrpc.Client{}
	_ Facade = &daemonother.Client{}
)

// HTTPClientDiscoverer provides an HTTP client when none was configured.
type HTTPClientDiscoverer func(timeout time.Duration) (rpc.HTTPDoer, error)

// DiscoverHTTPClient returns an *http.Client using a clone of
// http.DefaultTransport that honours the proxy environment variables.
func DiscoverHTTPClient(timeout time.Duration) (rpc.HTTPDoer, error) {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("http.DefaultTransport is a %T, not an *http.Transport", http.DefaultTransport)
	}

	transport := base.Clone()
	transport.Proxy = http.ProxyFromEnvironment
	return &http.Client{Transport: transport, Timeout: timeout}, nil
}

// builderConfig holds the validated part of the configuration.
type builderConfig struct {
	URL       string        `validate:"required,rpcurl"`
	Timeout   time.Duration `validate:"gte=0"`
	RateLimit float64       `validate:"gte=0"`
	RateBurst int           `validate:"gte=0"`
}

// ClientBuilder accumulates client configuration. Its methods return the
// builder so calls can be chained. A ClientBuilder is not safe for concurrent
// use; the clients it builds are.
type ClientBuilder struct {
	conf        builderConfig
	httpClient  rpc.HTTPDoer
	discover    HTTPClientDiscoverer
	headers     map[string]string
	credentials *rpc.Credentials
	logger      log.Logger
	metrics     *rpc.Metrics
}

// NewClientBuilder starts a builder for the node or wallet at rawURL, e.g.
// "http://127.0.0.1:18081".
func NewClientBuilder(rawURL string) *ClientBuilder {
	return &ClientBuilder{
		conf:     builderConfig{URL: rawURL},
		discover: DiscoverHTTPClient,
		headers:  map[string]string{},
	}
}

// WithHTTPClient sets the HTTP client. Without one, the builder discovers one
// with the configured HTTPClientDiscoverer.
func (b *ClientBuilder) WithHTTPClient(client rpc.HTTPDoer) *ClientBuilder {
	b.httpClient = client
	return b
}

// WithTransportDiscovery replaces DiscoverHTTPClient.
func (b *ClientBuilder) WithTransportDiscovery(discover HTTPClientDiscoverer) *ClientBuilder {
	b.discover = discover
	return b
}

// WithHTTPHeader adds a header sent with every request. Setting the same name
// again overwrites the value.
func (b *ClientBuilder) WithHTTPHeader(name, value string) *ClientBuilder {
	b.headers[name] = value
	return b
}

// WithAuthentication enables HTTP Digest authentication.
func (b *ClientBuilder) WithAuthentication(username, password string) *ClientBuilder {
	b.credentials = &rpc.Credentials{Username: username, Password: password}
	return b
}

// WithLogger sets the logger receiving one entry per call.
func (b *ClientBuilder) WithLogger(logger log.Logger) *ClientBuilder {
	b.logger = logger
	return b
}

// WithTimeout bounds every call. Zero means no timeout.
func (b *ClientBuilder) WithTimeout(timeout time.Duration) *ClientBuilder {
	b.conf.Timeout = timeout
	return b
}

// WithMetrics records call metrics.
func (b *ClientBuilder) WithMetrics(metrics *rpc.Metrics) *ClientBuilder {
	b.metrics = metrics
	return b
}

// WithRateLimit limits the client to perSecond requests with the given
// burst. Zero disables limiting.
func (b *ClientBuilder) WithRateLimit(perSecond float64, burst int) *ClientBuilder {
	b.conf.RateLimit = perSecond
	b.conf.RateBurst = burst
	return b
}

// Build creates the facade selected by t. Building never contacts the server.
// Every failure is an *rpc.Error of kind rpc.KindConfiguration.
func (b *ClientBuilder) Build(t ClientType) (Facade, error) {
	switch t {
	case WalletClient:
		return asFacade(b.BuildWalletClient())
	case DaemonClient:
		return asFacade(b.BuildDaemonClient())
	case DaemonOtherClient:
		return asFacade(b.BuildDaemonOtherClient())
	default:
		return nil, rpc.NewConfigurationError(fmt.Sprintf("unknown client type %s", t), nil)
	}
}

// asFacade keeps a failed build from returning a non-nil Facade holding a nil pointer.
func asFacade[F Facade](f F, err error) (Facade, error) {
	if err != nil {
		return nil, err
	}
	return f, nil
}

// BuildWalletClient creates a wallet RPC client.
func (b *ClientBuilder) BuildWalletClient() (*walletrpc.Client, error) {
	core, err := b.buildCore(walletrpc.NewClassifier(), WalletClient)
	if err != nil {
		return nil, err
	}
	return walletrpc.NewClient(core), nil
}

// BuildDaemonClient creates a daemon JSON-RPC client.
func (b *ClientBuilder) BuildDaemonClient() (*daemonrpc.Client, error) {
	core, err := b.buildCore(daemonrpc.NewClassifier(), DaemonClient)
	if err != nil {
		return nil, err
	}
	return daemonrpc.NewClient(core), nil
}

// BuildDaemonOtherClient creates a client for the daemon's other endpoints.
func (b *ClientBuilder) BuildDaemonOtherClient() (*daemonother.Client, error) {
	core, err := b.buildCore(daemonrpc.NewClassifier(), DaemonOtherClient)
	if err != nil {
		return nil, err
	}
	return daemonother.NewClient(core), nil
}

func (b *ClientBuilder) buildCore(classifier *rpc.Classifier, t ClientType) (*rpc.Client, error) {
	if err := getValidator().Struct(b.conf); err != nil {
		return nil, rpc.NewConfigurationError("invalid client configuration", err)
	}

	doer := b.httpClient
	if doer == nil {
		if b.discover == nil {
			return nil, rpc.NewConfigurationError("no http transport configured and discovery disabled", nil)
		}
		discovered, err := b.discover(b.conf.Timeout)
		if err != nil {
			return nil, rpc.NewConfigurationError("no http transport could be discovered", err)
		}
		if discovered == nil {
			return nil, rpc.NewConfigurationError("no http transport could be discovered", nil)
		}
		doer = discovered
	}

	var limiter *rate.Limiter
	if b.conf.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(b.conf.RateLimit), max(b.conf.RateBurst, 1))
	}

	var credentials *rpc.Credentials
	if b.credentials != nil {
		creds := *b.credentials
		credentials = &creds
	}

	logger := b.logger
	if logger != nil {
		logger = logger.WithKV("client", t.String())
	}

	return rpc.NewClient(rpc.Config{
		URL:         b.conf.URL,
		Doer:        doer,
		Header:      maps.Clone(b.headers),
		Credentials: credentials,
		Classifier:  classifier,
		Logger:      logger,
		Timeout:     b.conf.Timeout,
		Metrics:     b.metrics,
		Limiter:     limiter,
	}), nil
}

func getValidator() *validator.Validate {
	validate := validator.New()

	if err := validate.RegisterValidation("rpcurl", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	}); err != nil {
		panic(fmt.Sprintf("failed to register rpcurl validation: %v", err))
	}
	return validate
}
