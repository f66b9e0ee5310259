package audit

import (
	"context"

	"github.com/makhzan/school-warehouse-api/internal/domain/repository"
)

// TxRunner executes fn inside one database transaction, passing repositories
// bound to that transaction. The audit row and its adjustment entry commit or
// roll back together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		auditRepo repository.DailyAuditRepository,
		txRepo repository.TransactionRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
