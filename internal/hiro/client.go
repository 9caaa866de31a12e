// Package hiro provides a client for the Hiro Stacks blockchain API.
package hiro

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/metrics"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

const (
	// DefaultTimeout is the per-request timeout for Hiro API calls.
	DefaultTimeout = 10 * time.Second

	// ReadOnlySender is the fixed sender principal used for read-only
	// contract calls. Read-only calls need a syntactically valid sender
	// but no key, so the burn address is used.
	ReadOnlySender = "SP000000000000000000002Q6VF78"

	// maxResponseBody bounds how much of a response body is read.
	maxResponseBody = 4 << 20
)

// ClientOptions contains optional configuration for the Hiro client.
type ClientOptions struct {
	// MainnetURL overrides the default mainnet API URL.
	MainnetURL string

	// TestnetURL overrides the default testnet API URL.
	TestnetURL string

	// Timeout overrides the per-request timeout.
	Timeout time.Duration

	// HTTPClient overrides the underlying HTTP client.
	HTTPClient *http.Client

	// RateLimiter overrides the default per-endpoint rate limiter.
	RateLimiter *chain.RateLimiter

	// UserAgent overrides the User-Agent header.
	UserAgent string
}

// Client provides access to the Hiro Stacks API. It is safe for
// concurrent use. Every method takes the target network explicitly so
// callers that switch networks never talk to a stale endpoint.
type Client struct {
	mainnetURL string
	testnetURL string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *chain.RateLimiter
	breaker    *gobreaker.CircuitBreaker
	userAgent  string
}

// NewClient creates a new Hiro API client.
func NewClient(opts *ClientOptions) *Client {
	c := &Client{
		mainnetURL: chain.MainnetAPIURL,
		testnetURL: chain.TestnetAPIURL,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
		limiter:    chain.DefaultRateLimiter(),
		userAgent:  "stackskit",
	}

	if opts != nil {
		c.applyOptions(opts)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "hiro",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests > 20 && failureRatio >= 0.7
		},
		IsSuccessful: func(err error) bool {
			// Caller-driven cancellation says nothing about API health.
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
	})

	return c
}

func (c *Client) applyOptions(opts *ClientOptions) {
	if opts.MainnetURL != "" {
		c.mainnetURL = opts.MainnetURL
	}
	if opts.TestnetURL != "" {
		c.testnetURL = opts.TestnetURL
	}
	if opts.Timeout > 0 {
		c.timeout = opts.Timeout
	}
	if opts.HTTPClient != nil {
		c.httpClient = opts.HTTPClient
	}
	if opts.RateLimiter != nil {
		c.limiter = opts.RateLimiter
	}
	if opts.UserAgent != "" {
		c.userAgent = opts.UserAgent
	}
}

// BaseURL returns the API base URL for the given network.
func (c *Client) BaseURL(network chain.Network) string {
	if network == chain.Testnet {
		return c.testnetURL
	}
	return c.mainnetURL
}

// AccountBalances is the balance summary for a Stacks address.
type AccountBalances struct {
	STX STXBalance `json:"stx"`
}

// STXBalance holds the STX portion of an account balance response.
// Amounts are micro-STX encoded as decimal strings.
type STXBalance struct {
	Balance       string `json:"balance"`
	Locked        string `json:"locked"`
	TotalSent     string `json:"total_sent"`
	TotalReceived string `json:"total_received"`
}

// GetAccountBalances fetches the balances for an address.
func (c *Client) GetAccountBalances(ctx context.Context, network chain.Network, address string) (*AccountBalances, error) {
	url := fmt.Sprintf("%s/extended/v1/address/%s/balances", c.BaseURL(network), address)

	body, _, err := c.get(ctx, network, url)
	if err != nil {
		return nil, err
	}

	var balances AccountBalances
	if err := json.Unmarshal(body, &balances); err != nil {
		return nil, fmt.Errorf("%w: decoding balances: %w", kiterr.ErrInvalidResponse, err)
	}

	if balances.STX.Balance == "" {
		return nil, fmt.Errorf("%w: missing stx balance", kiterr.ErrInvalidResponse)
	}

	return &balances, nil
}

// Transaction is the status view of a Stacks transaction.
type Transaction struct {
	TxID        string         `json:"tx_id"`
	Status      chain.TxStatus `json:"tx_status"`
	BlockHeight *int64         `json:"block_height,omitempty"`
}

// transactionResponse mirrors the wire format with pointer fields so
// missing keys can be told apart from zero values.
type transactionResponse struct {
	TxID        *string `json:"tx_id"`
	TxStatus    *string `json:"tx_status"`
	BlockHeight *int64  `json:"block_height"`
}

// GetTransaction fetches the current status of a transaction. A
// transaction the API has never seen yields StatusNotFound with a nil
// error: unknown transactions are an expected state, not a failure.
func (c *Client) GetTransaction(ctx context.Context, network chain.Network, txID string) (*Transaction, error) {
	url := fmt.Sprintf("%s/extended/v1/tx/%s", c.BaseURL(network), txID)

	body, status, err := c.get(ctx, network, url)
	if status == http.StatusNotFound {
		return &Transaction{TxID: txID, Status: chain.StatusNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	var resp transactionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding transaction: %w", kiterr.ErrInvalidResponse, err)
	}

	if resp.TxID == nil || resp.TxStatus == nil {
		return nil, fmt.Errorf("%w: transaction missing tx_id or tx_status", kiterr.ErrInvalidResponse)
	}

	return &Transaction{
		TxID:        *resp.TxID,
		Status:      chain.TxStatus(*resp.TxStatus),
		BlockHeight: resp.BlockHeight,
	}, nil
}

// ReadOnlyResult is the outcome of a read-only contract call.
type ReadOnlyResult struct {
	Okay   bool
	Result string
	Cause  string
}

type readOnlyRequest struct {
	Sender    string   `json:"sender"`
	Arguments []string `json:"arguments"`
}

type readOnlyResponse struct {
	Okay   *bool  `json:"okay"`
	Result string `json:"result"`
	Cause  string `json:"cause"`
}

// CallReadOnly executes a read-only contract function and returns the
// raw hex-encoded Clarity result. Arguments must already be
// hex-encoded Clarity values.
func (c *Client) CallReadOnly(ctx context.Context, network chain.Network, contract chain.ContractID, function string, args []string) (*ReadOnlyResult, error) {
	url := fmt.Sprintf("%s/v2/contracts/call-read/%s/%s/%s",
		c.BaseURL(network), contract.Address, contract.Name, function)

	if args == nil {
		args = []string{}
	}
	payload, err := json.Marshal(readOnlyRequest{Sender: ReadOnlySender, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	body, _, err := c.post(ctx, network, url, payload)
	if err != nil {
		return nil, err
	}

	var resp readOnlyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding call-read response: %w", kiterr.ErrInvalidResponse, err)
	}

	if resp.Okay == nil {
		return nil, fmt.Errorf("%w: call-read response missing okay", kiterr.ErrInvalidResponse)
	}
	if *resp.Okay && resp.Result == "" {
		return nil, fmt.Errorf("%w: call-read response missing result", kiterr.ErrInvalidResponse)
	}

	return &ReadOnlyResult{Okay: *resp.Okay, Result: resp.Result, Cause: resp.Cause}, nil
}

func (c *Client) get(ctx context.Context, network chain.Network, url string) ([]byte, int, error) {
	return c.do(ctx, network, http.MethodGet, url, nil)
}

func (c *Client) post(ctx context.Context, network chain.Network, url string, payload []byte) ([]byte, int, error) {
	return c.do(ctx, network, http.MethodPost, url, payload)
}

// do performs one rate-limited, breaker-guarded request with the
// client timeout applied. It returns the body and HTTP status; a 404
// is reported via the status with a nil error so callers can decide
// whether it is exceptional.
func (c *Client) do(ctx context.Context, network chain.Network, method, url string, payload []byte) (body []byte, status int, err error) {
	start := time.Now()
	defer func() {
		metrics.Global.RecordAPICall(string(network), time.Since(start), err)
	}()

	if err = c.limiter.Wait(ctx, endpointKey(method, url)); err != nil {
		return nil, 0, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, url, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.breaker.Execute(func() (any, error) {
		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			if reqCtx.Err() != nil && ctx.Err() == nil {
				return nil, fmt.Errorf("%w: %s %s", kiterr.ErrTimeout, method, url)
			}
			return nil, fmt.Errorf("%w: %w", kiterr.ErrNetworkError, doErr)
		}
		defer func() { _ = resp.Body.Close() }()

		data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
		if readErr != nil {
			return nil, fmt.Errorf("%w: reading response: %w", kiterr.ErrNetworkError, readErr)
		}

		if resp.StatusCode == http.StatusNotFound {
			return &response{status: resp.StatusCode, body: data}, nil
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("%w: status %d", kiterr.ErrNetworkError, resp.StatusCode)
		}

		return &response{status: resp.StatusCode, body: data}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, 0, fmt.Errorf("%w: %w", kiterr.ErrNetworkError, err)
		}
		return nil, 0, err
	}

	resp := res.(*response)
	return resp.body, resp.status, nil
}

type response struct {
	status int
	body   []byte
}

// endpointKey collapses a request URL to a coarse rate-limit bucket so
// every transaction or address does not get its own token bucket.
func endpointKey(method, url string) string {
	switch {
	case strings.Contains(url, "/extended/v1/address/"):
		return method + " /extended/v1/address"
	case strings.Contains(url, "/extended/v1/tx/"):
		return method + " /extended/v1/tx"
	case strings.Contains(url, "/v2/contracts/call-read/"):
		return method + " /v2/contracts/call-read"
	default:
		return method + " " + url
	}
}

// IsAborted reports whether an error stems from caller cancellation or
// a request timeout rather than a definite API failure. Pollers treat
// these as soft and keep their last committed state.
func IsAborted(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		kiterr.Is(err, kiterr.ErrTimeout)
}
