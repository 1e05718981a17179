package models

// RawParsedInvoice is the structured_data object returned by the backend's
// invoice parser. Monetary and percentage fields arrive as locale-formatted
// strings (apostrophe or space thousands separators, comma or dot decimals)
// and are normalized into floats when a record is built.
type RawParsedInvoice struct {
	Supplier      string        `json:"supplier"`
	Date          string        `json:"date"`
	InvoiceNumber string        `json:"invoice_number"`
	Total         string        `json:"total"`
	VATRate       string        `json:"vat_rate"`
	TaxableBase   string        `json:"taxable_base"`
	DiscountTotal string        `json:"discount_total"`
	VATAmount     string        `json:"vat_amount"`
	NetSubtotal   string        `json:"net_subtotal"`
	Currency      string        `json:"currency"`
	LineItems     []RawLineItem `json:"line_items,omitempty"`
}

// RawLineItem is a backend-provided line item, present only when the parser
// was able to segment the invoice body.
type RawLineItem struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	AccountCode string `json:"account_code,omitempty"`
}

// ParsedInvoice holds the normalized extraction result for one invoice.
// All monetary and percentage fields are floats, zero when unparsable.
type ParsedInvoice struct {
	Supplier      string  `json:"supplier"`
	Date          string  `json:"date"` // canonical ISO (YYYY-MM-DD)
	InvoiceNumber string  `json:"invoice_number"`
	Total         float64 `json:"total"`
	VATRate       float64 `json:"vat_rate"`
	TaxableBase   float64 `json:"taxable_base"`
	DiscountTotal float64 `json:"discount_total"`
	VATAmount     float64 `json:"vat_amount"`
	NetSubtotal   float64 `json:"net_subtotal"`
	Currency      string  `json:"currency"`
}

// LineItem is one bookable expense row of an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	AccountCode string  `json:"account_code"`
	Category    string  `json:"category"`

	// AISuggestedCategory is the last suggestion received for this item.
	// It is only ever replaced by a newer suggestion, never cleared by
	// user edits, so a "differs from AI" indicator stays possible.
	AISuggestedCategory string `json:"ai_suggested_category,omitempty"`
}

// InvoiceRecord is one normalized invoice in the current batch. Records keep
// stable index correspondence with their originating files and with the
// booking outcome list: outcome i describes the record built from file i.
type InvoiceRecord struct {
	FileName  string        `json:"fileName"`
	Parsed    ParsedInvoice `json:"parsed"`
	DueDate   string        `json:"due_date"` // ISO, mutable after creation
	LineItems []LineItem    `json:"line_items"`

	// Description is the optional invoice-level description produced by
	// the describe enrichment. Independent of per-item categories.
	Description string `json:"description,omitempty"`
}

// BookingLineItem is the per-item shape of a booking request. Both the
// ledger account code and the human-readable category are carried; the
// backend consumes whichever its Xero mapping needs.
type BookingLineItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	AccountCode string  `json:"account_code,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// BookingRequest is the per-invoice payload of /book-invoice/ and of each
// element of the /batch/book-invoices/ request body.
type BookingRequest struct {
	InvoiceNumber string            `json:"invoice_number"`
	Supplier      string            `json:"supplier"`
	Date          string            `json:"date"`
	DueDate       string            `json:"due_date"`
	CurrencyCode  string            `json:"currency_code"`
	Total         float64           `json:"total"`
	VATRate       float64           `json:"vat_rate"`
	LineItems     []BookingLineItem `json:"line_items"`
}

// ExpenseAccount is one entry of the chart of expense accounts.
type ExpenseAccount struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// CategorizeRequest asks the backend for category suggestions for the line
// items of one invoice.
type CategorizeRequest struct {
	ClientID          string            `json:"client_id"`
	InvoiceNumber     string            `json:"invoice_number"`
	Supplier          string            `json:"supplier"`
	LineItems         []BookingLineItem `json:"line_items"`
	AllowedCategories []string          `json:"allowed_categories,omitempty"`
}

// CategorySuggestion maps one line item description to a suggested category.
type CategorySuggestion struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

// DescribeRequest asks the backend to generate an invoice-level description.
type DescribeRequest struct {
	Supplier      string            `json:"supplier"`
	InvoiceNumber string            `json:"invoice_number"`
	Date          string            `json:"date"`
	Total         float64           `json:"total"`
	LineItems     []BookingLineItem `json:"line_items"`
}

// Txn is one bank statement transaction from a reconciliation report.
type Txn struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Payee       string  `json:"payee"`
	Description string  `json:"description"`
}

// ReconciliationReport is the result of a bank statement upload: statement
// transactions split into those matched against known records and the rest.
type ReconciliationReport struct {
	Filename  string `json:"filename"`
	Matched   []Txn  `json:"matched"`
	Unmatched []Txn  `json:"unmatched"`
}

// Message is one entry of the backend's per-client message history.
type Message struct {
	Timestamp string `json:"timestamp"`
	Role      string `json:"role"`
	Content   string `json:"content"`
}
