package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/models"
	"github.com/zenapticlabs/expense-management-server/internal/utils/mapping"
)

const itemColumns = `
	item_id, report_id, expense_type, expense_date, exchange_rate,
	payment_method, receipt_amount, receipt_currency, justification, note,
	airline_id, rental_agency_id, car_type_id, meal_category_id,
	relationship_to_pai_id, city_id, hotel_daily_base_rate_id, mileage_rate_id,
	origin_destination, employee_names, total_employees,
	company_customer_name_title, business_topic, total_attendees,
	name_of_establishment, hotel_name, carrier, distance,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxItemRepository persists expense items and their receipts using pgxpool.
// Every write also rewrites the owning report row inside the same transaction
// so the running total can never drift from the item set.
type PgxItemRepository struct {
	BaseRepository
}

func newPgxItemRepository(db *pgxpool.Pool) *PgxItemRepository {
	return &PgxItemRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanItem(row pgx.Row) (*models.ExpenseItem, error) {
	var m models.ExpenseItem
	err := row.Scan(
		&m.ItemID, &m.ReportID, &m.ExpenseType, &m.ExpenseDate, &m.ExchangeRate,
		&m.PaymentMethod, &m.ReceiptAmount, &m.ReceiptCurrency, &m.Justification, &m.Note,
		&m.AirlineID, &m.RentalAgencyID, &m.CarTypeID, &m.MealCategoryID,
		&m.RelationshipToPAIID, &m.CityID, &m.HotelDailyBaseRateID, &m.MileageRateID,
		&m.OriginDestination, &m.EmployeeNames, &m.TotalEmployees,
		&m.CompanyCustomerNameTitle, &m.BusinessTopic, &m.TotalAttendees,
		&m.NameOfEstablishment, &m.HotelName, &m.Carrier, &m.Distance,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindItemByID retrieves a single item with its receipts, scoped to a report.
func (r *PgxItemRepository) FindItemByID(ctx context.Context, reportID, itemID string) (*domain.ExpenseItem, error) {
	query := `SELECT ` + itemColumns + ` FROM expense_item WHERE report_id = $1 AND item_id = $2;`

	m, err := scanItem(r.Pool.QueryRow(ctx, query, reportID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to find item %s: %w", itemID, err)
	}

	item := mapping.ToDomainExpenseItem(*m)
	receipts, err := r.receiptsForItems(ctx, []string{itemID})
	if err != nil {
		return nil, err
	}
	item.Receipts = receipts[itemID]
	return &item, nil
}

// ListItemsByReport retrieves all items of a report, receipts included.
func (r *PgxItemRepository) ListItemsByReport(ctx context.Context, reportID string) ([]domain.ExpenseItem, error) {
	query := `SELECT ` + itemColumns + ` FROM expense_item WHERE report_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for report %s: %w", reportID, err)
	}
	defer rows.Close()

	var items []domain.ExpenseItem
	var itemIDs []string
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, mapping.ToDomainExpenseItem(*m))
		itemIDs = append(itemIDs, m.ItemID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}
	if len(items) == 0 {
		return items, nil
	}

	receipts, err := r.receiptsForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Receipts = receipts[items[i].ItemID]
	}
	return items, nil
}

// FindReceiptByID retrieves a single receipt row scoped to an item.
func (r *PgxItemRepository) FindReceiptByID(ctx context.Context, itemID string, receiptID int64) (*domain.ExpenseReceipt, error) {
	var m models.ExpenseReceipt
	err := r.Pool.QueryRow(ctx,
		`SELECT receipt_id, item_id, s3_path, uploaded_at FROM expense_receipt WHERE item_id = $1 AND receipt_id = $2;`,
		itemID, receiptID,
	).Scan(&m.ReceiptID, &m.ItemID, &m.S3Path, &m.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: receipt %d", apperrors.ErrNotFound, receiptID)
		}
		return nil, fmt.Errorf("failed to find receipt %d: %w", receiptID, err)
	}
	receipt := mapping.ToDomainExpenseReceipt(m)
	return &receipt, nil
}

// CreateItemWithReport inserts the item and its receipt rows and rewrites the
// owning report in one transaction.
func (r *PgxItemRepository) CreateItemWithReport(ctx context.Context, item models.ExpenseItem, receipts []models.ExpenseReceipt, report models.ExpenseReport, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertItem(ctx, tx, item); err != nil {
		return err
	}
	if err := insertReceipts(ctx, tx, receipts); err != nil {
		return err
	}
	if err := updateReportVersioned(ctx, tx, report, expectedVersion); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateItemWithReport updates the item, reconciles its receipt rows and
// rewrites the owning report in one transaction. A nil keepPaths together
// with no new receipts leaves the stored receipts untouched; an explicit
// empty keep list removes them all.
func (r *PgxItemRepository) UpdateItemWithReport(ctx context.Context, item models.ExpenseItem, keepPaths []string, newReceipts []models.ExpenseReceipt, report models.ExpenseReport, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateItem(ctx, tx, item); err != nil {
		return err
	}
	if keepPaths != nil || len(newReceipts) > 0 {
		if _, err := tx.Exec(ctx,
			`DELETE FROM expense_receipt WHERE item_id = $1 AND NOT (s3_path = ANY($2));`,
			item.ItemID, keepPaths,
		); err != nil {
			return fmt.Errorf("failed to prune receipts of item %s: %w", item.ItemID, err)
		}
		if err := insertReceipts(ctx, tx, newReceipts); err != nil {
			return err
		}
	}
	if err := updateReportVersioned(ctx, tx, report, expectedVersion); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteItemWithReport deletes the item (receipts cascade) and rewrites the
// owning report in one transaction.
func (r *PgxItemRepository) DeleteItemWithReport(ctx context.Context, itemID string, report models.ExpenseReport, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `DELETE FROM expense_item WHERE item_id = $1;`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
	}
	if err := updateReportVersioned(ctx, tx, report, expectedVersion); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertItem(ctx context.Context, tx pgx.Tx, item models.ExpenseItem) error {
	query := `
		INSERT INTO expense_item (
			item_id, report_id, expense_type, expense_date, exchange_rate,
			payment_method, receipt_amount, receipt_currency, justification, note,
			airline_id, rental_agency_id, car_type_id, meal_category_id,
			relationship_to_pai_id, city_id, hotel_daily_base_rate_id, mileage_rate_id,
			origin_destination, employee_names, total_employees,
			company_customer_name_title, business_topic, total_attendees,
			name_of_establishment, hotel_name, carrier, distance,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31, $32
		);
	`
	_, err := tx.Exec(ctx, query,
		item.ItemID, item.ReportID, item.ExpenseType, item.ExpenseDate, item.ExchangeRate,
		item.PaymentMethod, item.ReceiptAmount, item.ReceiptCurrency, item.Justification, item.Note,
		item.AirlineID, item.RentalAgencyID, item.CarTypeID, item.MealCategoryID,
		item.RelationshipToPAIID, item.CityID, item.HotelDailyBaseRateID, item.MileageRateID,
		item.OriginDestination, item.EmployeeNames, item.TotalEmployees,
		item.CompanyCustomerNameTitle, item.BusinessTopic, item.TotalAttendees,
		item.NameOfEstablishment, item.HotelName, item.Carrier, item.Distance,
		item.CreatedAt, item.CreatedBy, item.LastUpdatedAt, item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item %s: %w", item.ItemID, err)
	}
	return nil
}

func updateItem(ctx context.Context, tx pgx.Tx, item models.ExpenseItem) error {
	query := `
		UPDATE expense_item
		SET expense_type = $1, expense_date = $2, exchange_rate = $3,
		    payment_method = $4, receipt_amount = $5, receipt_currency = $6,
		    justification = $7, note = $8,
		    airline_id = $9, rental_agency_id = $10, car_type_id = $11,
		    meal_category_id = $12, relationship_to_pai_id = $13, city_id = $14,
		    hotel_daily_base_rate_id = $15, mileage_rate_id = $16,
		    origin_destination = $17, employee_names = $18, total_employees = $19,
		    company_customer_name_title = $20, business_topic = $21, total_attendees = $22,
		    name_of_establishment = $23, hotel_name = $24, carrier = $25, distance = $26,
		    last_updated_at = $27, last_updated_by = $28
		WHERE item_id = $29;
	`
	tag, err := tx.Exec(ctx, query,
		item.ExpenseType, item.ExpenseDate, item.ExchangeRate,
		item.PaymentMethod, item.ReceiptAmount, item.ReceiptCurrency,
		item.Justification, item.Note,
		item.AirlineID, item.RentalAgencyID, item.CarTypeID,
		item.MealCategoryID, item.RelationshipToPAIID, item.CityID,
		item.HotelDailyBaseRateID, item.MileageRateID,
		item.OriginDestination, item.EmployeeNames, item.TotalEmployees,
		item.CompanyCustomerNameTitle, item.BusinessTopic, item.TotalAttendees,
		item.NameOfEstablishment, item.HotelName, item.Carrier, item.Distance,
		item.LastUpdatedAt, item.LastUpdatedBy,
		item.ItemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", item.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, item.ItemID)
	}
	return nil
}

func insertReceipts(ctx context.Context, tx pgx.Tx, receipts []models.ExpenseReceipt) error {
	for _, receipt := range receipts {
		_, err := tx.Exec(ctx,
			`INSERT INTO expense_receipt (item_id, s3_path, uploaded_at) VALUES ($1, $2, $3);`,
			receipt.ItemID, receipt.S3Path, receipt.UploadedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert receipt %s: %w", receipt.S3Path, err)
		}
	}
	return nil
}

// receiptsForItems loads receipt rows for the given items, grouped by item ID.
func (r *PgxItemRepository) receiptsForItems(ctx context.Context, itemIDs []string) (map[string][]domain.ExpenseReceipt, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT receipt_id, item_id, s3_path, uploaded_at FROM expense_receipt WHERE item_id = ANY($1) ORDER BY receipt_id;`,
		itemIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]domain.ExpenseReceipt)
	for rows.Next() {
		var m models.ExpenseReceipt
		if err := rows.Scan(&m.ReceiptID, &m.ItemID, &m.S3Path, &m.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		grouped[m.ItemID] = append(grouped[m.ItemID], mapping.ToDomainExpenseReceipt(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receipt rows: %w", err)
	}
	return grouped, nil
}
