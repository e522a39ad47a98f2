package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
)

func testOrder() *domain.Order {
	return &domain.Order{
		DepartureAddress: "Dakar, Sénégal",
		ArrivalAddress:   "Thiès, Sénégal",
		Tariff:           "3500 FCFA",
		Date:             "14/03/2025",
		ClientName:       "Awa",
		Reference:        "CMD-20250314103005",
	}
}

func TestNewWriter_RequiresDirectory(t *testing.T) {
	_, err := NewWriter("")
	require.Error(t, err)
}

func TestNewWriter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receipts")
	_, err := NewWriter(dir)
	require.NoError(t, err)
	require.DirExists(t, dir)
}

func TestWrite_GeneratesDeliveryNote(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 3, 14, 10, 30, 5, 0, time.UTC)
	writer, err := NewWriter(dir, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	fileName, err := writer.Write(context.Background(), testOrder())
	require.NoError(t, err)
	require.Regexp(t, `^bon_livraison_\d+\.pdf$`, fileName)

	content, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	require.NotEmpty(t, content)
	require.True(t, len(content) > 4 && string(content[:4]) == "%PDF")
}

func TestWrite_UniqueNamesPerInvocation(t *testing.T) {
	dir := t.TempDir()
	instant := time.Date(2025, 3, 14, 10, 30, 5, 0, time.UTC)
	writer, err := NewWriter(dir, WithClock(func() time.Time {
		instant = instant.Add(time.Millisecond)
		return instant
	}))
	require.NoError(t, err)

	first, err := writer.Write(context.Background(), testOrder())
	require.NoError(t, err)
	second, err := writer.Write(context.Background(), testOrder())
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestWrite_FailsOnUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	_, err = writer.Write(context.Background(), testOrder())
	require.Error(t, err)
}
