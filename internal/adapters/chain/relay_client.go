package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/homestead-go/internal/domain/marketplace"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultPollInterval = 2 * time.Second
)

// RelayError is a non-2xx answer from the relay
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("relay error (status %d): %s", e.StatusCode, e.Message)
}

// RevertedError is returned when a transaction was mined but reverted
type RevertedError struct {
	Hash string
}

func (e *RevertedError) Error() string {
	return fmt.Sprintf("transaction %s reverted", e.Hash)
}

// RequestRecorder observes relay requests
type RequestRecorder interface {
	RecordRelayRequest(method, endpoint string, statusCode int, duration float64)
	RecordRateLimitWait(method, endpoint string, duration float64)
}

// RelayClient talks to the JSON relay that signs and submits transactions for
// the farm's wallet. It implements marketplace.ContractWriter,
// marketplace.ReceiptWaiter and marketplace.SessionProvider.
type RelayClient struct {
	httpClient   *http.Client
	rateLimiter  *rate.Limiter
	baseURL      string
	pollInterval time.Duration
	clock        shared.Clock
	recorder     RequestRecorder
}

// RelayOptions tunes a RelayClient; zero values fall back to defaults
type RelayOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	Requests     int
	Burst        int
	Clock        shared.Clock
	Recorder     RequestRecorder
}

// NewRelayClient creates a relay client for baseURL
func NewRelayClient(baseURL string, opts RelayOptions) *RelayClient {
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.Requests == 0 {
		opts.Requests = 2
	}
	if opts.Burst == 0 {
		opts.Burst = opts.Requests
	}
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}
	return &RelayClient{
		httpClient:   &http.Client{Timeout: opts.Timeout},
		rateLimiter:  rate.NewLimiter(rate.Limit(opts.Requests), opts.Burst),
		baseURL:      baseURL,
		pollInterval: opts.PollInterval,
		clock:        opts.Clock,
		recorder:     opts.Recorder,
	}
}

// WriteContract submits a contract write and returns its transaction hash
func (c *RelayClient) WriteContract(ctx context.Context, call marketplace.ContractCall) (string, error) {
	body := map[string]interface{}{
		"address":      call.Address,
		"functionName": call.FunctionName,
		"args":         call.Args,
	}
	if call.Account != "" {
		body["account"] = call.Account
	}

	var response struct {
		Data struct {
			Hash string `json:"hash"`
		} `json:"data"`
	}
	if err := c.request(ctx, http.MethodPost, "/contracts/write", "/contracts/write", body, &response); err != nil {
		return "", err
	}
	if response.Data.Hash == "" {
		return "", fmt.Errorf("relay returned no transaction hash")
	}
	return response.Data.Hash, nil
}

// WaitForTransactionReceipt polls the relay until the transaction is mined.
// Only ctx bounds the wait.
func (c *RelayClient) WaitForTransactionReceipt(ctx context.Context, hash string) error {
	path := "/transactions/" + url.PathEscape(hash) + "/receipt"

	for {
		var response struct {
			Data struct {
				Status string `json:"status"`
			} `json:"data"`
		}
		err := c.request(ctx, http.MethodGet, "/transactions/receipt", path, nil, &response)
		switch {
		case err == nil && response.Data.Status == "reverted":
			return &RevertedError{Hash: hash}
		case err == nil:
			return nil
		case !isPending(err):
			return err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.clock.Sleep(c.pollInterval)
	}
}

// NextSessionID asks the relay for the session id that follows oldSessionID
func (c *RelayClient) NextSessionID(ctx context.Context, sender string, farmID int64, oldSessionID string) (string, error) {
	query := url.Values{}
	query.Set("sender", sender)
	query.Set("farmId", strconv.FormatInt(farmID, 10))
	query.Set("sessionId", oldSessionID)

	var response struct {
		Data struct {
			SessionID string `json:"sessionId"`
		} `json:"data"`
	}
	if err := c.request(ctx, http.MethodGet, "/sessions/next", "/sessions/next?"+query.Encode(), nil, &response); err != nil {
		return "", err
	}
	return response.Data.SessionID, nil
}

// isPending reports the relay's 404 for a receipt that does not exist yet
func isPending(err error) bool {
	var relayErr *RelayError
	return errors.As(err, &relayErr) && relayErr.StatusCode == http.StatusNotFound
}

// request performs one call. endpoint is the path template used as metric label.
func (c *RelayClient) request(ctx context.Context, method, endpoint, path string, body interface{}, result interface{}) error {
	waitStart := time.Now()
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}
	if c.recorder != nil {
		c.recorder.RecordRateLimitWait(method, endpoint, time.Since(waitStart).Seconds())
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, endpoint, 0, start)
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()
	c.observe(method, endpoint, resp.StatusCode, start)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		message := string(respBody)
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			message = apiErr.Error.Message
		}
		return &RelayError{StatusCode: resp.StatusCode, Message: message}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

func (c *RelayClient) observe(method, endpoint string, statusCode int, start time.Time) {
	if c.recorder != nil {
		c.recorder.RecordRelayRequest(method, endpoint, statusCode, time.Since(start).Seconds())
	}
}

var (
	_ marketplace.ContractWriter  = (*RelayClient)(nil)
	_ marketplace.ReceiptWaiter   = (*RelayClient)(nil)
	_ marketplace.SessionProvider = (*RelayClient)(nil)
)
