package services

import (
	"context"

	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
)

// ItemReaderSvc defines read operations for expense items, scoped to the
// requesting user's reports.
type ItemReaderSvc interface {
	GetItem(ctx context.Context, userID, reportID, itemID string) (*domain.ExpenseItem, error)
	ListItems(ctx context.Context, userID, reportID string) ([]domain.ExpenseItem, error)

	// ReceiptDownloadURL presigns a GET for a stored receipt file.
	ReceiptDownloadURL(ctx context.Context, userID, reportID, itemID string, receiptID int64) (string, error)
}

// ItemWriterSvc drives the item lifecycle. Every mutation settles the owning
// report's running total through the ledger and persists both atomically;
// any failure leaves item and report untouched.
//
// The returned uploadURLs map s3 paths of newly registered receipts to
// presigned PUT URLs the client uploads to.
type ItemWriterSvc interface {
	CreateItem(ctx context.Context, userID, reportID string, req dto.CreateExpenseItemRequest) (*domain.ExpenseItem, map[string]string, error)
	UpdateItem(ctx context.Context, userID, reportID, itemID string, req dto.UpdateExpenseItemRequest) (*domain.ExpenseItem, map[string]string, error)
	DeleteItem(ctx context.Context, userID, reportID, itemID string) error
}

// ItemSvcFacade combines all item service interfaces.
type ItemSvcFacade interface {
	ItemReaderSvc
	ItemWriterSvc
}
