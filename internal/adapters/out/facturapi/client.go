// Package facturapi is a client for a Facturapi-compatible fiscal document service.
package facturapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const serviceName = "facturapi"

const (
	DefaultTimeout          = 30 * time.Second
	DefaultDownloadAttempts = 4
)

// maxResponseSize bounds how much of a response body is read into memory.
const maxResponseSize = 20 << 20

// ErrResponseTooLarge is returned for a body over the read limit instead of a
// truncated artifact.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

type Config struct {
	BaseURL string
	APIKey  string

	// Timeout bounds each HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration

	// DownloadAttempts bounds artifact download retries. Zero means DefaultDownloadAttempts.
	DownloadAttempts int

	// HTTPClient overrides the transport; its Timeout is replaced by Timeout.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client implements ports.FiscalDocumentService over the Facturapi REST API.
type Client struct {
	baseURL          string
	apiKey           string
	httpClient       *http.Client
	downloadAttempts int
	initialInterval  time.Duration
	maxResponseSize  int64
	logger           *slog.Logger
}

var _ ports.FiscalDocumentService = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("BaseURL")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("BaseURL", err)
	}
	if cfg.APIKey == "" {
		return nil, errs.NewValueIsRequiredError("APIKey")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		copied.Timeout = timeout
		httpClient = &copied
	}

	attempts := cfg.DownloadAttempts
	if attempts <= 0 {
		attempts = DefaultDownloadAttempts
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:           cfg.APIKey,
		httpClient:       httpClient,
		downloadAttempts: attempts,
		initialInterval:  500 * time.Millisecond,
		maxResponseSize:  maxResponseSize,
		logger:           logger.With("component", "facturapi"),
	}, nil
}

func (c *Client) CreateDocument(ctx context.Context, doc invoice.Document) (invoice.IssuedDocument, error) {
	body, err := c.do(ctx, http.MethodPost, "/invoices", newInvoiceRequest(doc))
	if err != nil {
		return invoice.IssuedDocument{}, errs.NewExternalServiceError(serviceName, "create invoice", err)
	}

	var resp invoiceResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return invoice.IssuedDocument{}, errs.NewExternalServiceError(serviceName, "create invoice",
			fmt.Errorf("decode response: %w", err))
	}
	if resp.ID == "" {
		return invoice.IssuedDocument{}, errs.NewExternalServiceError(serviceName, "create invoice",
			errors.New("response has no invoice id"))
	}

	c.logger.InfoContext(ctx, "fiscal document issued", "externalId", resp.ID, "uuid", resp.UUID)
	return resp.toDomain(), nil
}

func (c *Client) CancelDocument(ctx context.Context, externalID, reason string) error {
	path := "/invoices/" + url.PathEscape(externalID) + "/cancel"
	if _, err := c.do(ctx, http.MethodPost, path, cancelRequest{Reason: reason}); err != nil {
		return errs.NewExternalServiceError(serviceName, "cancel invoice", err)
	}
	return nil
}

// Download fetches a rendition of an issued document. Transport failures, 429 and 5xx
// responses are retried with exponential backoff; other API errors fail at once.
func (c *Client) Download(ctx context.Context, externalID string, format ports.ArtifactFormat) ([]byte, error) {
	if format != ports.FormatPDF && format != ports.FormatXML {
		return nil, errs.NewValueIsInvalidError("format")
	}
	path := "/invoices/" + url.PathEscape(externalID) + "/" + string(format)
	op := "download " + string(format)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialInterval
	policy.MaxElapsedTime = 0

	var body []byte
	err := backoff.RetryNotify(
		func() error {
			var reqErr error
			body, reqErr = c.do(ctx, http.MethodGet, path, nil)
			if reqErr != nil && !isRetryable(reqErr) {
				return backoff.Permanent(reqErr)
			}
			return reqErr
		},
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.downloadAttempts-1)), ctx),
		func(err error, wait time.Duration) {
			c.logger.WarnContext(ctx, "artifact download failed, retrying",
				"externalId", externalID, "format", format, "wait", wait, "error", err)
		},
	)
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, op, err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) > c.maxResponseSize {
		return nil, fmt.Errorf("%s %s: %w (%d bytes)", method, path, ErrResponseTooLarge, c.maxResponseSize)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		msg = payload.Message
	}
	return &APIError{StatusCode: status, Message: msg}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("facturapi: status %d: %s", e.StatusCode, e.Message)
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return !errors.Is(err, context.Canceled) &&
			!errors.Is(err, context.DeadlineExceeded) &&
			!errors.Is(err, ErrResponseTooLarge)
	}
	return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
}
