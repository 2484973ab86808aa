package repo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	domain "github.com/pasumbalss/wansilog/internal/entity"
	"github.com/pasumbalss/wansilog/internal/observ"
	"github.com/pasumbalss/wansilog/internal/usecase"
)

const (
	idPrefix   = "Transaction ID:"
	timeLayout = "2006-01-02 15:04:05"
	separator  = "============================================="
)

// FileLedger is the append-only transaction log. Every record is written
// to both the primary and the backup file; the two writes are independent
// and best-effort, so one failing never rolls back or retries the other.
type FileLedger struct {
	primary string
	backup  string
	nextID  int64
	log     *slog.Logger
}

// NewFileLedger recovers the next transaction ID from the primary file
// and returns a ready ledger. A missing or empty file starts at ID 1.
func NewFileLedger(primary, backup string, log *slog.Logger) (*FileLedger, error) {
	l := &FileLedger{primary: primary, backup: backup, log: log}
	if err := l.recoverNextID(); err != nil {
		return nil, err
	}
	return l, nil
}

// recoverNextID scans the primary file for "Transaction ID:" lines and
// takes the maximum parsed value, wherever it appears. Unparsable entries
// (a crash mid-append leaves partial records) are logged and skipped.
func (l *FileLedger) recoverNextID() error {
	f, err := os.Open(l.primary)
	if errors.Is(err, os.ErrNotExist) {
		l.nextID = 1
		return nil
	}
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	var maxID int64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, idPrefix) {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(line, idPrefix)), 10, 64)
		if err != nil {
			l.log.Warn("skipping unparsable transaction id", "line", line, "err", err)
			continue
		}
		if id > maxID {
			maxID = id
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan ledger: %w", err)
	}
	l.nextID = maxID + 1
	l.log.Info("ledger recovered", "path", l.primary, "next_id", l.nextID)
	return nil
}

// NextID reports the ID the next Append will assign.
func (l *FileLedger) NextID() int64 {
	return l.nextID
}

// Append assigns rec the next ID and writes the formatted record to the
// primary and backup files. Each failure is reported individually; the
// ID is consumed either way.
func (l *FileLedger) Append(_ context.Context, rec *usecase.TransactionRecord) (int64, error) {
	rec.ID = l.nextID
	l.nextID++

	block := formatRecord(rec)

	var errs []error
	for _, w := range []struct{ target, path string }{
		{"primary", l.primary},
		{"backup", l.backup},
	} {
		if err := appendBlock(w.path, block); err != nil {
			observ.LedgerWriteFailures.WithLabelValues(w.target).Inc()
			l.log.Error("ledger write failed", "target", w.target, "path", w.path, "tx_id", rec.ID, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", w.target, err))
		}
	}
	if len(errs) > 0 {
		return rec.ID, fmt.Errorf("%w: %w", domain.ErrPersistence, errors.Join(errs...))
	}
	return rec.ID, nil
}

func formatRecord(rec *usecase.TransactionRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", idPrefix, rec.ID)
	fmt.Fprintf(&b, "Date & Time: %s\n", rec.Time.Format(timeLayout))
	fmt.Fprintf(&b, "Cashier: %s\n", rec.Cashier)
	b.WriteString("Items Purchased:\n")
	for _, li := range rec.Lines {
		fmt.Fprintf(&b, "  - %s x%d (%s) - $%s\n",
			li.ItemName, li.Quantity, li.AddonName, li.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total Amount: $%s\n", rec.Total.StringFixed(2))
	b.WriteString(separator + "\n")
	return b.String()
}

// appendBlock flushes and closes before returning, so a record that
// Append reported written survives a crash right after.
func appendBlock(path, block string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(block); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var _ usecase.TransactionLedger = (*FileLedger)(nil)
