package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/pasumbalss/wansilog/internal/entity"
)

type fakeLedger struct {
	next int64
	recs []*TransactionRecord
	err  error
}

func (f *fakeLedger) Append(_ context.Context, rec *TransactionRecord) (int64, error) {
	f.next++
	rec.ID = f.next
	f.recs = append(f.recs, rec)
	return f.next, f.err
}

func testCheckout(led *fakeLedger) *Checkout {
	return NewCheckout(led, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Tapsilog + Java Rice x2 twice: total 368.00.
func sampleOrder(t *testing.T) *domain.Order {
	t.Helper()
	cat := domain.DefaultCatalog()
	o := domain.NewOrder()
	for i := 0; i < 2; i++ {
		_, err := o.AddLine(cat, 0, 2, 2)
		require.NoError(t, err)
	}
	return o
}

func TestTenderEmptyOrderRejected(t *testing.T) {
	led := &fakeLedger{}
	_, err := testCheckout(led).Tender(context.Background(), "karl", domain.NewOrder(), "100")
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
	assert.Empty(t, led.recs)
}

func TestTenderCancel(t *testing.T) {
	led := &fakeLedger{}
	order := sampleOrder(t)

	res, err := testCheckout(led).Tender(context.Background(), "karl", order, "0")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, res.Status)
	assert.Empty(t, led.recs)
	assert.Equal(t, 2, order.Len()) // order untouched
}

func TestTenderNonNumericRetries(t *testing.T) {
	led := &fakeLedger{}
	order := sampleOrder(t)

	res, err := testCheckout(led).Tender(context.Background(), "karl", order, "four hundred")
	require.NoError(t, err)
	assert.Equal(t, StatusRetry, res.Status)
	assert.ErrorIs(t, res.Reason, domain.ErrFormat)
	assert.Empty(t, led.recs)
	assert.Equal(t, 2, order.Len())
}

func TestTenderInsufficientRetries(t *testing.T) {
	led := &fakeLedger{}
	order := sampleOrder(t)

	res, err := testCheckout(led).Tender(context.Background(), "karl", order, "367.99")
	require.NoError(t, err)
	assert.Equal(t, StatusRetry, res.Status)
	assert.ErrorIs(t, res.Reason, domain.ErrInsufficientPayment)
	assert.Empty(t, led.recs)
	assert.Equal(t, 2, order.Len())
}

func TestTenderExactAmountCommits(t *testing.T) {
	led := &fakeLedger{}
	order := sampleOrder(t)

	res, err := testCheckout(led).Tender(context.Background(), "karl", order, "368.00")
	require.NoError(t, err)
	assert.Equal(t, StatusCommitted, res.Status)
	assert.Equal(t, "0.00", res.Change.StringFixed(2))
	assert.Equal(t, int64(1), res.TxID)
	assert.True(t, order.IsEmpty())

	require.Len(t, led.recs, 1)
	rec := led.recs[0]
	assert.Equal(t, "karl", rec.Cashier)
	assert.Equal(t, "368.00", rec.Total.StringFixed(2))
	assert.Len(t, rec.Lines, 2)
}

func TestTenderOverpaymentChangeToTheCent(t *testing.T) {
	led := &fakeLedger{}
	order := sampleOrder(t)

	res, err := testCheckout(led).Tender(context.Background(), "karl", order, "400.00")
	require.NoError(t, err)
	assert.Equal(t, StatusCommitted, res.Status)
	assert.Equal(t, "32.00", res.Change.StringFixed(2))
}

func TestTenderCommitsDespiteLedgerFailure(t *testing.T) {
	led := &fakeLedger{err: errors.New("disk full")}
	order := sampleOrder(t)

	res, err := testCheckout(led).Tender(context.Background(), "karl", order, "400")
	require.NoError(t, err)
	assert.Equal(t, StatusCommitted, res.Status)
	assert.True(t, order.IsEmpty())
	require.Len(t, led.recs, 1)
}

func TestTenderSequentialIDs(t *testing.T) {
	led := &fakeLedger{}
	uc := testCheckout(led)

	first := sampleOrder(t)
	res1, err := uc.Tender(context.Background(), "karl", first, "368")
	require.NoError(t, err)

	second := sampleOrder(t)
	res2, err := uc.Tender(context.Background(), "karl", second, "368")
	require.NoError(t, err)

	assert.Equal(t, int64(1), res1.TxID)
	assert.Equal(t, int64(2), res2.TxID)
}
