// Package reconciliation handles the bank statement workflow: upload a
// statement PDF for matching against known records, then book unmatched
// transactions one by one.
package reconciliation

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

// StatementClient is the backend surface the workflow needs.
type StatementClient interface {
	UploadBankStatement(ctx context.Context, fileName string, r io.Reader) (models.ReconciliationReport, error)
	BookBankTransaction(ctx context.Context, transactionID string) (string, error)
}

// Manager drives one reconciliation session. The current report is a single
// state slot replaced wholesale on every transition.
type Manager struct {
	client StatementClient
	open   func(string) (io.ReadCloser, error)
	log    zerolog.Logger

	report models.ReconciliationReport
}

// NewManager creates a Manager reading statements from the local filesystem.
func NewManager(client StatementClient) *Manager {
	return &Manager{
		client: client,
		open:   func(path string) (io.ReadCloser, error) { return os.Open(path) },
		log:    logger.WithComponent("reconciliation"),
	}
}

// Upload sends a bank statement for matching and makes its report current.
func (m *Manager) Upload(ctx context.Context, path string) (models.ReconciliationReport, error) {
	name := filepath.Base(path)

	f, err := m.open(path)
	if err != nil {
		return models.ReconciliationReport{}, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	report, err := m.client.UploadBankStatement(ctx, name, f)
	if err != nil {
		return models.ReconciliationReport{}, err
	}

	m.report = report
	m.log.Info().
		Str("file", report.Filename).
		Int("matched", len(report.Matched)).
		Int("unmatched", len(report.Unmatched)).
		Msg("Bank statement processed")
	return report, nil
}

// Report returns the current reconciliation report.
func (m *Manager) Report() models.ReconciliationReport {
	return m.report
}

// Restore makes a previously saved report the current one, so booking can
// continue in a process other than the one that uploaded the statement.
func (m *Manager) Restore(report models.ReconciliationReport) {
	m.report = report
}

// Book books one unmatched transaction by id. On success the transaction
// moves from the unmatched to the matched list of the current report.
func (m *Manager) Book(ctx context.Context, transactionID string) (string, error) {
	message, err := m.client.BookBankTransaction(ctx, transactionID)
	if err != nil {
		return "", err
	}

	m.report = MoveToMatched(m.report, transactionID)
	m.log.Info().Str("transaction_id", transactionID).Msg("Bank transaction booked")
	return message, nil
}

// MoveToMatched returns a new report with the identified transaction moved
// from unmatched to matched. An unknown id returns the report unchanged.
func MoveToMatched(report models.ReconciliationReport, transactionID string) models.ReconciliationReport {
	idx := -1
	for i, txn := range report.Unmatched {
		if txn.ID == transactionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return report
	}

	matched := make([]models.Txn, len(report.Matched), len(report.Matched)+1)
	copy(matched, report.Matched)
	matched = append(matched, report.Unmatched[idx])

	unmatched := make([]models.Txn, 0, len(report.Unmatched)-1)
	unmatched = append(unmatched, report.Unmatched[:idx]...)
	unmatched = append(unmatched, report.Unmatched[idx+1:]...)

	report.Matched = matched
	report.Unmatched = unmatched
	return report
}
