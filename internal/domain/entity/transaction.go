package entity

import (
	"time"

	"github.com/makhzan/school-warehouse-api/internal/domain"
)

// Application-level transaction kinds, as submitted by movement and audit flows.
const (
	KindIssue           = "issue"
	KindReturn          = "return"
	KindExchangeOut     = "exchange_out"
	KindExchangeIn      = "exchange_in"
	KindAuditAdjustment = "audit_adjustment"
	KindDailyAudit      = "daily_audit"
)

// Persisted transaction types (normalized from the application kinds).
const (
	TypeIn         = "in"
	TypeOut        = "out"
	TypeAudit      = "audit"
	TypeAdjustment = "adjustment"
	TypeTransfer   = "transfer"
)

// Return conditions carried in the recipient field of a return entry.
const (
	ConditionGood    = "good"
	ConditionDamaged = "damaged"
	ConditionPartial = "partial"
)

// Transaction is one immutable ledger entry: a signed quantity movement
// against an item. SourceType keeps the kind as submitted; Type is the
// normalized persisted kind. Once written an entry is never updated or
// deleted by this layer.
type Transaction struct {
	ID                string
	ItemID            string
	UserID            string
	SourceType        string // issue, return, exchange_out, exchange_in, audit_adjustment, daily_audit
	Type              string // in, out, audit, adjustment, transfer
	Quantity          int    // signed delta: negative for outgoing, positive for incoming
	Recipient         string // receiving person, or return condition for returns
	Notes             string
	ExpectedQuantity  *int
	ActualQuantity    *int
	Discrepancy       *int // actual - expected, when both are present
	CreatedAt         time.Time
	EgyptianTimestamp string // local-time rendering in the configured zone
}

// normalization maps application kinds to persisted types. Values that are
// already persisted types pass through NormalizeKind unchanged.
var normalization = map[string]string{
	KindIssue:           TypeOut,
	KindReturn:          TypeIn,
	KindExchangeOut:     TypeOut,
	KindExchangeIn:      TypeIn,
	KindAuditAdjustment: TypeAudit,
	KindDailyAudit:      TypeAudit,
}

// NormalizeKind resolves the persisted type for a submitted kind.
// Returns ErrInvalidInput for kinds outside both vocabularies.
func NormalizeKind(kind string) (string, error) {
	if t, ok := normalization[kind]; ok {
		return t, nil
	}
	switch kind {
	case TypeIn, TypeOut, TypeAudit, TypeAdjustment, TypeTransfer:
		return kind, nil
	}
	return "", domain.ErrInvalidInput
}

// ValidateDirection checks that the sign of the delta matches the kind's
// expected direction: issue/exchange_out must be negative, return/exchange_in
// must be positive. Other kinds carry no direction constraint.
func ValidateDirection(kind string, delta int) error {
	switch kind {
	case KindIssue, KindExchangeOut:
		if delta >= 0 {
			return domain.ErrInvalidInput
		}
	case KindReturn, KindExchangeIn:
		if delta <= 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// ComputeDiscrepancy derives actual - expected when both values are present.
func ComputeDiscrepancy(expected, actual *int) *int {
	if expected == nil || actual == nil {
		return nil
	}
	d := *actual - *expected
	return &d
}

// EgyptianTimestampLayout renders local times the way the original ledger
// stored them (e.g. "02/09/2025 01:45 PM").
const EgyptianTimestampLayout = "02/01/2006 03:04 PM"

// FormatEgyptianTimestamp renders t in loc using the ledger layout.
func FormatEgyptianTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(EgyptianTimestampLayout)
}
