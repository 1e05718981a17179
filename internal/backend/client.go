// Package backend is the HTTP client for the invoice-processing backend.
//
// The backend owns PDF parsing, AI categorization, Xero booking, and bank
// statement matching; this client only speaks its wire contract. Every
// client instance explicitly carries its own base URL and http.Client —
// there is no shared global configuration to mutate.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

// DefaultTimeout bounds every backend request unless overridden. Invoice
// parsing is the slowest call and usually completes within 15 seconds.
const DefaultTimeout = 120 * time.Second

const clientIDHeader = "X-Client-ID"

// Client talks to one backend instance.
type Client struct {
	baseURL  string
	clientID string
	httpc    *http.Client
	log      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client, mainly for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithClientID sets the client id sent as the X-Client-ID header and used
// as the default for client-scoped endpoints.
func WithClientID(id string) Option {
	return func(c *Client) { c.clientID = id }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrMissingBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: DefaultTimeout},
		log:     logger.WithComponent("backend-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ClientID returns the configured client id.
func (c *Client) ClientID() string {
	return c.clientID
}

// ProcessInvoice uploads one PDF for parsing and returns the backend's
// structured extraction result.
func (c *Client) ProcessInvoice(ctx context.Context, fileName string, r io.Reader) (models.RawParsedInvoice, error) {
	const op = "ProcessInvoice"

	var out struct {
		StructuredData models.RawParsedInvoice `json:"structured_data"`
	}
	if err := c.postMultipart(ctx, op, "/process-invoice/", fileName, r, &out); err != nil {
		return models.RawParsedInvoice{}, err
	}

	c.log.Debug().
		Str("file", fileName).
		Str("invoice_number", out.StructuredData.InvoiceNumber).
		Str("supplier", out.StructuredData.Supplier).
		Msg("Invoice parsed")
	return out.StructuredData, nil
}

// ExpenseAccounts lists the chart of expense accounts.
func (c *Client) ExpenseAccounts(ctx context.Context) ([]models.ExpenseAccount, error) {
	const op = "ExpenseAccounts"

	var accounts []models.ExpenseAccount
	if err := c.getJSON(ctx, op, "/accounts/expense/", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CategorizeExpense requests category suggestions for one invoice's line
// items.
func (c *Client) CategorizeExpense(ctx context.Context, req models.CategorizeRequest) ([]models.CategorySuggestion, error) {
	const op = "CategorizeExpense"

	if req.ClientID == "" {
		req.ClientID = c.clientID
	}

	var out struct {
		Categories []models.CategorySuggestion `json:"categories"`
	}
	if err := c.postJSON(ctx, op, "/categorize-expense/", req, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// DescribeInvoice requests a generated invoice-level description.
func (c *Client) DescribeInvoice(ctx context.Context, req models.DescribeRequest) (string, error) {
	const op = "DescribeInvoice"

	var out struct {
		Description string `json:"description"`
	}
	if err := c.postJSON(ctx, op, "/describe-invoice/", req, &out); err != nil {
		return "", err
	}
	return out.Description, nil
}

// BookInvoice submits one invoice for booking and returns the raw booking
// confirmation object.
func (c *Client) BookInvoice(ctx context.Context, req models.BookingRequest) (json.RawMessage, error) {
	const op = "BookInvoice"

	var out json.RawMessage
	if err := c.postJSON(ctx, op, "/book-invoice/", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BookBatch submits all invoices in one request. The response is an
// outcome-or-error list index-aligned with the request.
func (c *Client) BookBatch(ctx context.Context, reqs []models.BookingRequest) ([]models.BookingOutcome, error) {
	const op = "BookBatch"

	var outcomes []models.BookingOutcome
	if err := c.postJSON(ctx, op, "/batch/book-invoices/", reqs, &outcomes); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// UploadBankStatement uploads a bank statement PDF for reconciliation.
func (c *Client) UploadBankStatement(ctx context.Context, fileName string, r io.Reader) (models.ReconciliationReport, error) {
	const op = "UploadBankStatement"

	var report models.ReconciliationReport
	if err := c.postMultipart(ctx, op, "/upload-bank-reconciliation/", fileName, r, &report); err != nil {
		return models.ReconciliationReport{}, err
	}
	return report, nil
}

// BookBankTransaction books one reconciled bank transaction by id.
func (c *Client) BookBankTransaction(ctx context.Context, transactionID string) (string, error) {
	const op = "BookBankTransaction"

	req := struct {
		TransactionID string `json:"transaction_id"`
	}{TransactionID: transactionID}

	var out struct {
		Message string `json:"message"`
	}
	if err := c.postJSON(ctx, op, "/book-bank-transaction/", req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// MessageHistory fetches the backend's message history for a client.
func (c *Client) MessageHistory(ctx context.Context, clientID string) ([]models.Message, error) {
	const op = "MessageHistory"

	if clientID == "" {
		clientID = c.clientID
	}
	q := url.Values{"client_id": {clientID}}

	var messages []models.Message
	if err := c.getJSON(ctx, op, "/message-history/", q, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SummarizeContext asks the backend to summarize a client's context.
func (c *Client) SummarizeContext(ctx context.Context, clientID string) (string, error) {
	const op = "SummarizeContext"

	if clientID == "" {
		clientID = c.clientID
	}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := c.postJSON(ctx, op, "/summarize-context/"+url.PathEscape(clientID), nil, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	return c.do(op, req, out)
}

func (c *Client) postJSON(ctx context.Context, op, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("backend: %s: %w", op, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(op, req, out)
}

func (c *Client) postMultipart(ctx context.Context, op, path, fileName string, r io.Reader, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("backend: %s: read %s: %w", op, fileName, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("backend: %s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(op, req, out)
}

func (c *Client) do(op string, req *http.Request, out interface{}) error {
	if c.clientID != "" {
		req.Header.Set(clientIDHeader, c.clientID)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Str("url", req.URL.String()).Msg("Backend request failed")
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: %s: read response: %w", op, err)
	}

	c.log.Debug().
		Str("op", op).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Backend request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		return &APIError{Op: op, Status: resp.StatusCode, Detail: eb.message()}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("backend: %s: %w: %v", op, ErrUnexpectedResponse, err)
	}
	return nil
}
