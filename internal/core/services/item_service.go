package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/core/ports/providers"
	portsrepo "github.com/zenapticlabs/expense-management-server/internal/core/ports/repositories"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
	"github.com/zenapticlabs/expense-management-server/internal/models"
	"github.com/zenapticlabs/expense-management-server/internal/utils"
	"github.com/zenapticlabs/expense-management-server/internal/utils/mapping"
)

// Expense types with extra reference resolution rules.
const (
	ExpenseTypeHotel   = "Hotel"
	ExpenseTypeMileage = "Mileage"
)

// ItemService orchestrates the expense item lifecycle: create, update and
// delete, each settling the owning report's total through the ledger and
// persisting item and report in one transaction.
type ItemService struct {
	itemRepo     portsrepo.ItemRepositoryFacade
	reportRepo   portsrepo.ReportRepositoryFacade
	lookupRepo   portsrepo.LookupRepositoryFacade
	userRepo     portsrepo.UserReader
	ledger       *LedgerService
	receiptStore providers.ReceiptStore
	presignTTL   time.Duration
	now          func() time.Time
}

// ItemServiceOption customizes an ItemService.
type ItemServiceOption func(*ItemService)

// WithItemClock overrides the time source, for tests.
func WithItemClock(now func() time.Time) ItemServiceOption {
	return func(s *ItemService) { s.now = now }
}

// WithPresignTTL overrides the lifetime of generated receipt URLs.
func WithPresignTTL(ttl time.Duration) ItemServiceOption {
	return func(s *ItemService) {
		if ttl > 0 {
			s.presignTTL = ttl
		}
	}
}

// NewItemService creates a new ItemService.
func NewItemService(
	itemRepo portsrepo.ItemRepositoryFacade,
	reportRepo portsrepo.ReportRepositoryFacade,
	lookupRepo portsrepo.LookupRepositoryFacade,
	userRepo portsrepo.UserReader,
	ledger *LedgerService,
	receiptStore providers.ReceiptStore,
	opts ...ItemServiceOption,
) *ItemService {
	s := &ItemService{
		itemRepo:     itemRepo,
		reportRepo:   reportRepo,
		lookupRepo:   lookupRepo,
		userRepo:     userRepo,
		ledger:       ledger,
		receiptStore: receiptStore,
		presignTTL:   time.Hour,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateItem adds a new expense line to a report. The item's converted amount
// is applied to the report total and both rows are persisted atomically; the
// conversion factor is stamped on the item for audit. The returned map holds
// presigned PUT URLs for any receipts registered with the item.
func (s *ItemService) CreateItem(ctx context.Context, userID, reportID string, req dto.CreateExpenseItemRequest) (*domain.ExpenseItem, map[string]string, error) {
	report, user, err := s.ownedReport(ctx, userID, reportID)
	if err != nil {
		return nil, nil, err
	}

	currency, err := utils.NormalizeCurrencyCode(req.ReceiptCurrency)
	if err != nil {
		return nil, nil, err
	}
	if !req.ReceiptAmount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: receipt amount must be positive", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	item := domain.ExpenseItem{
		ItemID:          uuid.NewString(),
		ReportID:        report.ReportID,
		ExpenseType:     req.ExpenseType,
		ExpenseDate:     req.ExpenseDate,
		PaymentMethod:   req.PaymentMethod,
		ReceiptAmount:   req.ReceiptAmount,
		ReceiptCurrency: currency,
		Justification:   req.Justification,
		Note:            req.Note,

		OriginDestination:        req.OriginDestination,
		EmployeeNames:            req.EmployeeNames,
		TotalEmployees:           req.TotalEmployees,
		CompanyCustomerNameTitle: req.CompanyCustomerNameTitle,
		BusinessTopic:            req.BusinessTopic,
		TotalAttendees:           req.TotalAttendees,
		NameOfEstablishment:      req.NameOfEstablishment,
		HotelName:                req.HotelName,
		Carrier:                  req.Carrier,
		Distance:                 req.Distance,

		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if item.PaymentMethod == "" {
		item.PaymentMethod = "Cash"
	}

	if err := s.resolveReferences(ctx, &item, referencePatch{
		Airline:           req.Airline,
		RentalAgency:      req.RentalAgency,
		CarType:           req.CarType,
		MealCategory:      req.MealCategory,
		RelationshipToPAI: req.RelationshipToPAI,
		City:              req.City,
	}, user); err != nil {
		return nil, nil, err
	}

	// Apply before persisting: a rate failure must abort the whole create.
	rate, err := s.ledger.Apply(ctx, report, item.ReceiptAmount, item.ReceiptCurrency)
	if err != nil {
		return nil, nil, err
	}
	item.ExchangeRate = rate

	_, newReceipts := s.registerReceipts(report.ReportID, item.ItemID, req.Receipts, now)

	err = s.itemRepo.CreateItemWithReport(ctx, mapping.ToModelExpenseItem(item), newReceipts, mapping.ToModelExpenseReport(*report), report.Version)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create expense item: %w", err)
	}

	created, err := s.itemRepo.FindItemByID(ctx, report.ReportID, item.ItemID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload created expense item: %w", err)
	}

	return created, s.presignUploads(ctx, newReceipts), nil
}

// UpdateItem patches an item and re-settles the report total: the old
// contribution is reversed at the stored audit rate, then the new amount is
// applied at the current rate. The two legs are never netted.
func (s *ItemService) UpdateItem(ctx context.Context, userID, reportID, itemID string, req dto.UpdateExpenseItemRequest) (*domain.ExpenseItem, map[string]string, error) {
	report, user, err := s.ownedReport(ctx, userID, reportID)
	if err != nil {
		return nil, nil, err
	}
	item, err := s.itemRepo.FindItemByID(ctx, report.ReportID, itemID)
	if err != nil {
		return nil, nil, err
	}

	oldAmount := item.ReceiptAmount
	oldRate := item.ExchangeRate
	oldReceipts := item.Receipts

	if req.ExpenseType != nil {
		item.ExpenseType = *req.ExpenseType
	}
	if req.ExpenseDate != nil {
		item.ExpenseDate = req.ExpenseDate
	}
	if req.PaymentMethod != nil {
		item.PaymentMethod = *req.PaymentMethod
	}
	if req.ReceiptAmount != nil {
		if !req.ReceiptAmount.IsPositive() {
			return nil, nil, fmt.Errorf("%w: receipt amount must be positive", apperrors.ErrValidation)
		}
		item.ReceiptAmount = *req.ReceiptAmount
	}
	if req.ReceiptCurrency != nil {
		currency, cerr := utils.NormalizeCurrencyCode(*req.ReceiptCurrency)
		if cerr != nil {
			return nil, nil, cerr
		}
		item.ReceiptCurrency = currency
	}
	if req.Justification != nil {
		item.Justification = *req.Justification
	}
	if req.Note != nil {
		item.Note = *req.Note
	}
	if req.OriginDestination != nil {
		item.OriginDestination = *req.OriginDestination
	}
	if req.EmployeeNames != nil {
		item.EmployeeNames = *req.EmployeeNames
	}
	if req.TotalEmployees != nil {
		item.TotalEmployees = req.TotalEmployees
	}
	if req.CompanyCustomerNameTitle != nil {
		item.CompanyCustomerNameTitle = *req.CompanyCustomerNameTitle
	}
	if req.BusinessTopic != nil {
		item.BusinessTopic = *req.BusinessTopic
	}
	if req.TotalAttendees != nil {
		item.TotalAttendees = req.TotalAttendees
	}
	if req.NameOfEstablishment != nil {
		item.NameOfEstablishment = *req.NameOfEstablishment
	}
	if req.HotelName != nil {
		item.HotelName = *req.HotelName
	}
	if req.Carrier != nil {
		item.Carrier = *req.Carrier
	}
	if req.Distance != nil {
		item.Distance = *req.Distance
	}

	if err := s.resolveReferences(ctx, item, referencePatch{
		Airline:           req.Airline,
		RentalAgency:      req.RentalAgency,
		CarType:           req.CarType,
		MealCategory:      req.MealCategory,
		RelationshipToPAI: req.RelationshipToPAI,
		City:              req.City,
	}, user); err != nil {
		return nil, nil, err
	}

	// Reverse-then-apply on the in-memory report; nothing is persisted yet,
	// so a rate failure below leaves the stored state untouched.
	s.ledger.Reverse(report, oldAmount, oldRate)
	rate, err := s.ledger.Apply(ctx, report, item.ReceiptAmount, item.ReceiptCurrency)
	if err != nil {
		return nil, nil, err
	}
	item.ExchangeRate = rate

	now := s.now().UTC()
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	keepPaths, newReceipts := s.registerReceipts(report.ReportID, item.ItemID, req.Receipts, now)
	err = s.itemRepo.UpdateItemWithReport(ctx, mapping.ToModelExpenseItem(*item), keepPaths, newReceipts, mapping.ToModelExpenseReport(*report), report.Version)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update expense item: %w", err)
	}

	if req.Receipts != nil {
		s.deleteRemovedObjects(ctx, oldReceipts, keepPaths)
	}

	updated, err := s.itemRepo.FindItemByID(ctx, report.ReportID, item.ItemID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload updated expense item: %w", err)
	}

	return updated, s.presignUploads(ctx, newReceipts), nil
}

// DeleteItem reverses the item's contribution to the report total before
// removing the row; item and report change in the same transaction.
func (s *ItemService) DeleteItem(ctx context.Context, userID, reportID, itemID string) error {
	report, _, err := s.ownedReport(ctx, userID, reportID)
	if err != nil {
		return err
	}
	item, err := s.itemRepo.FindItemByID(ctx, report.ReportID, itemID)
	if err != nil {
		return err
	}
	if item.ReportID == "" || item.ReportID != report.ReportID {
		return fmt.Errorf("%w: item %s", apperrors.ErrOrphanedItem, itemID)
	}

	s.ledger.Reverse(report, item.ReceiptAmount, item.ExchangeRate)

	err = s.itemRepo.DeleteItemWithReport(ctx, item.ItemID, mapping.ToModelExpenseReport(*report), report.Version)
	if err != nil {
		return fmt.Errorf("failed to delete expense item: %w", err)
	}

	for _, rec := range item.Receipts {
		if derr := s.receiptStore.Delete(ctx, rec.S3Path); derr != nil {
			slog.Warn("failed to delete receipt object", slog.String("s3_path", rec.S3Path), slog.String("error", derr.Error()))
		}
	}
	return nil
}

// GetItem retrieves one item of a report owned by (or visible to) the user.
func (s *ItemService) GetItem(ctx context.Context, userID, reportID, itemID string) (*domain.ExpenseItem, error) {
	report, _, err := s.ownedReport(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	return s.itemRepo.FindItemByID(ctx, report.ReportID, itemID)
}

// ListItems retrieves all items of a report owned by (or visible to) the user.
func (s *ItemService) ListItems(ctx context.Context, userID, reportID string) ([]domain.ExpenseItem, error) {
	report, _, err := s.ownedReport(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListItemsByReport(ctx, report.ReportID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ExpenseItem{}
	}
	return items, nil
}

// ReceiptDownloadURL presigns a GET for a stored receipt file.
func (s *ItemService) ReceiptDownloadURL(ctx context.Context, userID, reportID, itemID string, receiptID int64) (string, error) {
	report, _, err := s.ownedReport(ctx, userID, reportID)
	if err != nil {
		return "", err
	}
	if _, err := s.itemRepo.FindItemByID(ctx, report.ReportID, itemID); err != nil {
		return "", err
	}
	receipt, err := s.itemRepo.FindReceiptByID(ctx, itemID, receiptID)
	if err != nil {
		return "", err
	}
	url, err := s.receiptStore.PresignGet(ctx, receipt.S3Path, s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to presign receipt download: %w", err)
	}
	return url, nil
}

// referencePatch carries the lookup values supplied by the caller. A nil
// pointer keeps the item's stored reference.
type referencePatch struct {
	Airline           *string
	RentalAgency      *string
	CarType           *string
	MealCategory      *string
	RelationshipToPAI *string
	City              *string
}

// resolveReferences resolves user-supplied lookup values to row IDs, failing
// with ErrReferenceNotFound for unknown values. Hotel base rates and mileage
// rates are derived from the item's expense type rather than supplied.
func (s *ItemService) resolveReferences(ctx context.Context, item *domain.ExpenseItem, patch referencePatch, user *domain.User) error {
	type binding struct {
		kind  domain.LookupKind
		value *string
		dest  **int64
	}
	bindings := []binding{
		{domain.LookupAirline, patch.Airline, &item.AirlineID},
		{domain.LookupRentalAgency, patch.RentalAgency, &item.RentalAgencyID},
		{domain.LookupCarType, patch.CarType, &item.CarTypeID},
		{domain.LookupMealCategory, patch.MealCategory, &item.MealCategoryID},
		{domain.LookupRelationshipToPAI, patch.RelationshipToPAI, &item.RelationshipToPAIID},
		{domain.LookupCity, patch.City, &item.CityID},
	}
	for _, b := range bindings {
		if b.value == nil || *b.value == "" {
			continue
		}
		row, err := s.lookupRepo.FindLookupByValue(ctx, b.kind, *b.value)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %s %q", apperrors.ErrReferenceNotFound, b.kind, *b.value)
			}
			return fmt.Errorf("failed to resolve %s %q: %w", b.kind, *b.value, err)
		}
		*b.dest = &row.ID
	}

	if item.ExpenseType != ExpenseTypeHotel {
		item.HotelDailyBaseRateID = nil
	} else if patch.City != nil && *patch.City != "" {
		item.HotelDailyBaseRateID = nil
		hotelRate, err := s.lookupRepo.FindHotelRateByCity(ctx, *patch.City)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to resolve hotel base rate for %q: %w", *patch.City, err)
		}
		if hotelRate != nil {
			item.HotelDailyBaseRateID = &hotelRate.ID
		}
	}

	item.MileageRateID = nil
	if item.ExpenseType == ExpenseTypeMileage {
		mileage, err := s.lookupRepo.FindMileageRateByTitle(ctx, user.CompanyCode)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to resolve mileage rate for %q: %w", user.CompanyCode, err)
		}
		if mileage != nil {
			item.MileageRateID = &mileage.ID
		}
	}
	return nil
}

// registerReceipts splits the request's receipts into paths to keep and new
// rows to insert. New files get keys of the form
// {reportID}/{itemID}/{epoch}_{filename}. A nil slice means "no receipt
// changes" and is distinguished from an explicit empty list, which removes
// every stored receipt.
func (s *ItemService) registerReceipts(reportID, itemID string, reqs []dto.ReceiptRequest, now time.Time) (keepPaths []string, newRows []models.ExpenseReceipt) {
	if reqs == nil {
		return nil, nil
	}
	keepPaths = []string{}
	epoch := now.Unix()
	for _, r := range reqs {
		switch {
		case r.S3Path != "":
			keepPaths = append(keepPaths, r.S3Path)
		case r.UploadFilename != "":
			newRows = append(newRows, models.ExpenseReceipt{
				ItemID:     itemID,
				S3Path:     fmt.Sprintf("%s/%s/%d_%s", reportID, itemID, epoch, r.UploadFilename),
				UploadedAt: now,
			})
		}
	}
	return keepPaths, newRows
}

// presignUploads generates PUT URLs for freshly registered receipt rows.
// Presign failures degrade the response rather than failing a mutation that
// already committed.
func (s *ItemService) presignUploads(ctx context.Context, rows []models.ExpenseReceipt) map[string]string {
	if len(rows) == 0 {
		return nil
	}
	urls := make(map[string]string, len(rows))
	for _, row := range rows {
		url, err := s.receiptStore.PresignPut(ctx, row.S3Path, s.presignTTL)
		if err != nil {
			slog.Warn("failed to presign receipt upload", slog.String("s3_path", row.S3Path), slog.String("error", err.Error()))
			continue
		}
		urls[row.S3Path] = url
	}
	return urls
}

// deleteRemovedObjects removes objects for receipts dropped by an update.
func (s *ItemService) deleteRemovedObjects(ctx context.Context, old []domain.ExpenseReceipt, keepPaths []string) {
	kept := make(map[string]struct{}, len(keepPaths))
	for _, p := range keepPaths {
		kept[p] = struct{}{}
	}
	for _, rec := range old {
		if _, ok := kept[rec.S3Path]; ok {
			continue
		}
		if err := s.receiptStore.Delete(ctx, rec.S3Path); err != nil {
			slog.Warn("failed to delete receipt object", slog.String("s3_path", rec.S3Path), slog.String("error", err.Error()))
		}
	}
}

// ownedReport loads the report and enforces ownership; staff users may act on
// any report. Unauthorized access is indistinguishable from a missing report.
func (s *ItemService) ownedReport(ctx context.Context, userID, reportID string) (*domain.ExpenseReport, *domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	if report.UserID != userID && !user.IsStaff {
		return nil, nil, fmt.Errorf("%w: report %s", apperrors.ErrNotFound, reportID)
	}
	return report, user, nil
}
