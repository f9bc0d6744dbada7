package repositories

import (
	"context"

	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/models"
)

// ItemReader defines read operations for expense items and their receipts.
type ItemReader interface {
	// FindItemByID retrieves an item by its external UUID, scoped to a report.
	FindItemByID(ctx context.Context, reportID, itemID string) (*domain.ExpenseItem, error)

	// ListItemsByReport retrieves all items belonging to a report, receipts included.
	ListItemsByReport(ctx context.Context, reportID string) ([]domain.ExpenseItem, error)

	// FindReceiptByID retrieves a single receipt row scoped to an item.
	FindReceiptByID(ctx context.Context, itemID string, receiptID int64) (*domain.ExpenseReceipt, error)
}

// ItemWriter defines the transactional write operations for expense items.
// Each method persists the item mutation and the recalculated owning report in
// ONE database transaction; the report write carries an optimistic version
// check and the whole transaction fails with
// apperrors.ErrConcurrentModification on a mismatch.
type ItemWriter interface {
	// CreateItemWithReport inserts the item and its receipt rows, and updates
	// the owning report's amount atomically.
	CreateItemWithReport(ctx context.Context, item models.ExpenseItem, receipts []models.ExpenseReceipt, report models.ExpenseReport, expectedVersion int64) error

	// UpdateItemWithReport updates the item, deletes receipts not listed in
	// keepPaths, inserts newReceipts, and updates the owning report atomically.
	UpdateItemWithReport(ctx context.Context, item models.ExpenseItem, keepPaths []string, newReceipts []models.ExpenseReceipt, report models.ExpenseReport, expectedVersion int64) error

	// DeleteItemWithReport deletes the item (receipts cascade) and updates the
	// owning report atomically.
	DeleteItemWithReport(ctx context.Context, itemID string, report models.ExpenseReport, expectedVersion int64) error
}

// ItemRepositoryFacade combines all item repository interfaces.
type ItemRepositoryFacade interface {
	ItemReader
	ItemWriter
}
