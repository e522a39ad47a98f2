// Package pdf renders delivery notes as PDF files in a local directory,
// from where the HTTP layer serves them publicly.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
	"github.com/terangalabs/livraison-webhook/internal/domains/orders/ports"
)

var _ ports.ReceiptWriter = (*Writer)(nil)

// Writer writes one delivery note per confirmed order.
type Writer struct {
	dir string
	now func() time.Time
}

// Option configures optional Writer behavior.
type Option func(*Writer)

// WithClock overrides the clock used for file names.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWriter ensures the receipts directory exists and returns a Writer.
func NewWriter(dir string, opts ...Option) (*Writer, error) {
	if dir == "" {
		return nil, errors.New("receipt directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create receipt directory: %w", err)
	}
	w := &Writer{dir: dir, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Write renders the delivery note and returns the generated file name.
// Names carry the creation instant in milliseconds, so a call never
// overwrites an earlier artifact.
func (w *Writer) Write(_ context.Context, order *domain.Order) (string, error) {
	if order == nil {
		return "", errors.New("order is nil")
	}

	doc := fpdf.New("P", "mm", "A4", "")
	translate := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		"Colis à livrer",
		"Référence : " + order.Reference,
		"Client : " + order.ClientName,
		"Départ : " + order.DepartureAddress,
		"Arrivée : " + order.ArrivalAddress,
		"Tarif : " + order.Tariff,
		"Date : " + order.Date,
	} {
		doc.CellFormat(0, 8, translate(line), "", 1, "L", false, 0, "")
	}

	fileName := fmt.Sprintf("bon_livraison_%d.pdf", w.now().UnixMilli())
	if err := doc.OutputFileAndClose(filepath.Join(w.dir, fileName)); err != nil {
		return "", fmt.Errorf("write delivery note: %w", err)
	}
	return fileName, nil
}
