package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/pasumbalss/wansilog/internal/entity"
	"github.com/pasumbalss/wansilog/internal/observ"
)

// CancelSentinel aborts a checkout when entered at the payment prompt.
const CancelSentinel = "0"

type TenderStatus int

const (
	StatusRetry TenderStatus = iota
	StatusCancelled
	StatusCommitted
)

// TenderResult is the outcome of one tender attempt. Reason is set only
// for StatusRetry and classifies with errors.Is against domain.ErrFormat
// or domain.ErrInsufficientPayment.
type TenderResult struct {
	Status TenderStatus
	TxID   int64
	Change decimal.Decimal
	Reason error
}

type Checkout struct {
	ledger TransactionLedger
	now    func() time.Time
	log    *slog.Logger
}

func NewCheckout(ledger TransactionLedger, log *slog.Logger) *Checkout {
	return &Checkout{ledger: ledger, now: time.Now, log: log}
}

// Tender runs one step of the checkout state machine for the given raw
// payment input. The order must be non-empty. Cancelled and Committed
// are terminal; on Retry the caller re-prompts and calls Tender again.
// A committed checkout clears the order.
func (uc *Checkout) Tender(ctx context.Context, cashier string, order *domain.Order, input string) (TenderResult, error) {
	if order.IsEmpty() {
		return TenderResult{}, domain.ErrEmptyOrder
	}

	input = strings.TrimSpace(input)
	if input == CancelSentinel {
		uc.log.Info("checkout cancelled", "cashier", cashier)
		return TenderResult{Status: StatusCancelled}, nil
	}

	tendered, err := decimal.NewFromString(input)
	if err != nil {
		observ.CheckoutRejections.WithLabelValues("format").Inc()
		return TenderResult{
			Status: StatusRetry,
			Reason: fmt.Errorf("%w: %q", domain.ErrFormat, input),
		}, nil
	}

	total := order.Total()
	if tendered.LessThan(total) {
		observ.CheckoutRejections.WithLabelValues("insufficient").Inc()
		return TenderResult{
			Status: StatusRetry,
			Reason: fmt.Errorf("%w: tendered %s, total %s",
				domain.ErrInsufficientPayment, tendered.StringFixed(2), total.StringFixed(2)),
		}, nil
	}

	change := tendered.Sub(total)
	rec := &TransactionRecord{
		Time:    uc.now(),
		Cashier: cashier,
		Lines:   order.Lines(),
		Total:   total,
	}

	// Best-effort durability: a ledger write failure is surfaced but the
	// checkout is already complete once the tender covered the total.
	id, err := uc.ledger.Append(ctx, rec)
	if err != nil {
		uc.log.Error("transaction not fully persisted",
			"tx_id", id, "cashier", cashier, "total", total.StringFixed(2), "err", err)
	}
	order.Clear()
	observ.TransactionsCommitted.Inc()
	uc.log.Info("checkout committed",
		"tx_id", id, "cashier", cashier,
		"total", total.StringFixed(2), "change", change.StringFixed(2))

	return TenderResult{Status: StatusCommitted, TxID: id, Change: change}, nil
}
