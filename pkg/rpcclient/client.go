package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/evmclient/evm-go/pkg/ethrpc"
	"github.com/evmclient/evm-go/pkg/util"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	defaultDialTimeout    = 4 * time.Second
	defaultRequestTimeout = 4 * time.Second
)

// ErrNoAccounts is returned when the default account is requested, but it's
// not configured and the node doesn't manage any accounts.
var ErrNoAccounts = errors.New("node has no accounts")

// Client represents the middleman for executing JSON RPC calls to remote
// Ethereum-compatible nodes. Client is thread-safe and can be used from
// multiple goroutines.
type Client struct {
	cli      *http.Client
	endpoint *url.URL
	ctx      context.Context
	opts     Options
	log      *zap.Logger
	requestF func(*ethrpc.Request) (*ethrpc.Response, error)

	cacheLock sync.RWMutex
	// cache stores node related information the client is bound to, it's
	// filled in lazily.
	cache cache

	latestReqID *atomic.Uint64
	// getNextRequestID returns an ID to be used for the subsequent request creation.
	// It is defined on Client, so that our testing code can override this method
	// for the sake of more predictable request IDs generation behavior.
	getNextRequestID func() uint64
}

// Options defines options for the RPC client.
// All values are optional. If any duration is not specified,
// a default of 4 seconds will be used.
type Options struct {
	DialTimeout    time.Duration
	RequestTimeout time.Duration
	// Limit total number of connections per host. No limit by default.
	MaxConnsPerHost int
	// DefaultAccount is used as a sender when set, otherwise the first
	// account returned by eth_accounts is used.
	DefaultAccount *util.Address
	// Logger is used for request tracing at debug level, no logging is
	// performed if it's nil.
	Logger *zap.Logger
}

// cache stores cache values for the RPC client methods.
type cache struct {
	defaultAccount *util.Address
	netVersion     string
}

// New returns a new Client ready to use.
func New(ctx context.Context, endpoint string, opts Options) (*Client, error) {
	cl := new(Client)
	err := initClient(ctx, cl, endpoint, opts)
	if err != nil {
		return nil, err
	}
	return cl, nil
}

func initClient(ctx context.Context, cl *Client, endpoint string, opts Options) error {
	url, err := url.Parse(endpoint)
	if err != nil {
		return err
	}

	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}

	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.DialTimeout,
			}).DialContext,
			MaxConnsPerHost: opts.MaxConnsPerHost,
		},
		Timeout: opts.RequestTimeout,
	}

	cl.ctx = ctx
	cl.cli = httpClient
	cl.endpoint = url
	cl.log = opts.Logger
	if opts.DefaultAccount != nil {
		acc := *opts.DefaultAccount
		cl.cache.defaultAccount = &acc
	}
	cl.latestReqID = atomic.NewUint64(0)
	cl.getNextRequestID = (cl).getRequestID
	cl.opts = opts
	cl.requestF = cl.makeHTTPRequest
	return nil
}

func (c *Client) getRequestID() uint64 {
	return c.latestReqID.Inc()
}

// Endpoint returns the client endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Context returns client instance context, the one given to New.
func (c *Client) Context() context.Context {
	return c.ctx
}

// Close closes unused underlying networks connections.
func (c *Client) Close() {
	c.cli.CloseIdleConnections()
}

func (c *Client) performRequest(method string, p []any, v any) error {
	var (
		r     = ethrpc.NewRequest(c.getNextRequestID(), method, p...)
		start = time.Now()
	)

	raw, err := c.requestF(r)
	addReqTimeMetric(method, time.Since(start), err != nil || (raw != nil && raw.Error != nil))

	if raw != nil && raw.Error != nil {
		c.log.Debug("RPC error", zap.String("method", method), zap.Uint64("id", r.ID),
			zap.Int64("code", raw.Error.Code), zap.String("message", raw.Error.Message))
		return raw.Error
	} else if err != nil {
		c.log.Debug("RPC request failed", zap.String("method", method), zap.Uint64("id", r.ID), zap.Error(err))
		return err
	} else if raw == nil || raw.Result == nil {
		return errors.New("no result returned")
	}
	c.log.Debug("RPC request", zap.String("method", method), zap.Uint64("id", r.ID),
		zap.Duration("duration", time.Since(start)))
	return json.Unmarshal(raw.Result, v)
}

func (c *Client) makeHTTPRequest(r *ethrpc.Request) (*ethrpc.Response, error) {
	var (
		buf = new(bytes.Buffer)
		raw = new(ethrpc.Response)
	)

	if err := json.NewEncoder(buf).Encode(r); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, c.endpoint.String(), buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// The node might send us a proper JSON anyway, so look there first and if
	// it parses, it has more relevant data than HTTP error code.
	err = json.NewDecoder(resp.Body).Decode(raw)
	if err != nil {
		if resp.StatusCode != http.StatusOK {
			err = fmt.Errorf("HTTP %d/%s", resp.StatusCode, http.StatusText(resp.StatusCode))
		} else {
			err = fmt.Errorf("JSON decoding: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Ping attempts to create a connection to the endpoint
// and returns an error if there is any.
func (c *Client) Ping() error {
	conn, err := net.DialTimeout("tcp", c.endpoint.Host, defaultDialTimeout)
	if err != nil {
		return err
	}
	_ = conn.Close()
	return nil
}
