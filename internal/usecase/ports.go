package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/pasumbalss/wansilog/internal/entity"
)

// Persistence shape (kept out of domain).
type TransactionRecord struct {
	ID      int64
	Time    time.Time
	Cashier string
	Lines   []domain.LineItem
	Total   decimal.Decimal
}

// TransactionLedger assigns the record its ID and persists it. Append is
// not idempotent: every call consumes one ID and writes one record, so
// callers invoke it at most once per completed checkout.
type TransactionLedger interface {
	Append(ctx context.Context, rec *TransactionRecord) (int64, error)
}
