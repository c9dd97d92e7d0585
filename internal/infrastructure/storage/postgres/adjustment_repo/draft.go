// Package adjustment_repo provides the PostgreSQL store for adjustment drafts.
package adjustment_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockadmin/internal/core/apperror"
	"stockadmin/internal/core/id"
	"stockadmin/internal/domain/adjustment"
	"stockadmin/internal/infrastructure/storage/postgres"
)

const (
	draftsTable    = "adjustment_drafts"
	lineItemsTable = "adjustment_draft_line_items"
)

var _ adjustment.Repository = (*DraftRepo)(nil)

// lineItemRow is the flat table representation of adjustment.LineItem.
type lineItemRow struct {
	ID              id.ID     `db:"id"`
	DraftID         id.ID     `db:"draft_id"`
	Position        int64     `db:"position"`
	OrderableID     id.ID     `db:"orderable_id"`
	ProductCode     string    `db:"product_code"`
	FullProductName string    `db:"full_product_name"`
	StockOnHand     *int      `db:"stock_on_hand"`
	Quantity        *int      `db:"quantity"`
	ReasonID        *id.ID    `db:"reason_id"`
	ReasonName      string    `db:"reason_name"`
	ReasonFreeText  *string   `db:"reason_free_text"`
	OccurredDate    time.Time `db:"occurred_date"`
	// OccurredOffset is the UTC offset in seconds the date was entered with.
	OccurredOffset int `db:"occurred_offset"`
}

func toRow(draftID id.ID, item adjustment.LineItem) lineItemRow {
	row := lineItemRow{
		ID:              item.ID,
		DraftID:         draftID,
		OrderableID:     item.Orderable.ID,
		ProductCode:     item.Orderable.ProductCode,
		FullProductName: item.Orderable.FullProductName,
		StockOnHand:     item.StockOnHand,
		Quantity:        item.Quantity,
		ReasonName:      item.Reason.Name,
		ReasonFreeText:  item.ReasonFreeText,
		OccurredDate:    item.OccurredDate,
	}
	_, row.OccurredOffset = item.OccurredDate.Zone()
	if !id.IsNil(item.Reason.ID) {
		reasonID := item.Reason.ID
		row.ReasonID = &reasonID
	}
	return row
}

func (r lineItemRow) toLineItem() adjustment.LineItem {
	item := adjustment.LineItem{
		ID: r.ID,
		Orderable: adjustment.Orderable{
			ID:              r.OrderableID,
			ProductCode:     r.ProductCode,
			FullProductName: r.FullProductName,
		},
		StockOnHand:    r.StockOnHand,
		Quantity:       r.Quantity,
		Reason:         adjustment.Reason{Name: r.ReasonName},
		ReasonFreeText: r.ReasonFreeText,
		OccurredDate:   restoreZone(r.OccurredDate, r.OccurredOffset),
	}
	if r.ReasonID != nil {
		item.Reason.ID = *r.ReasonID
	}
	return item
}

// restoreZone puts t back in the zone it was entered in, so the calendar
// date does not depend on the database session time zone.
func restoreZone(t time.Time, offset int) time.Time {
	if offset == 0 {
		return t.UTC()
	}
	return t.In(time.FixedZone("", offset))
}

var (
	draftColumns    = postgres.ExtractDBColumns[adjustment.Draft]()
	lineItemColumns = postgres.ExtractDBColumns[lineItemRow]()
)

// DraftRepo stores drafts in two tables; line item order is kept in a
// per-draft position column.
type DraftRepo struct {
	txManager *postgres.TxManager
}

// NewDraftRepo creates a new draft repository.
func NewDraftRepo(txManager *postgres.TxManager) *DraftRepo {
	return &DraftRepo{txManager: txManager}
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts an empty draft.
func (r *DraftRepo) Create(ctx context.Context, draft *adjustment.Draft) error {
	sql, args, err := buildInsertDraft(draft).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", draftsTable, err)
	}
	return nil
}

// GetByID loads a draft and its line items in position order.
func (r *DraftRepo) GetByID(ctx context.Context, draftID id.ID) (*adjustment.Draft, error) {
	querier := r.txManager.GetQuerier(ctx)

	sql, args, err := buildSelectDraft(draftID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var draft adjustment.Draft
	if err := pgxscan.Get(ctx, querier, &draft, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("adjustment draft", draftID.String())
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}

	sql, args, err = buildSelectLineItems(draftID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []lineItemRow
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select line items: %w", err)
	}

	draft.LineItems = make([]adjustment.LineItem, len(rows))
	for i, row := range rows {
		draft.LineItems[i] = row.toLineItem()
	}
	return &draft, nil
}

// AppendLineItem inserts item at the next free position of the draft.
// The draft row is locked first so concurrent appends get distinct positions;
// call it inside a transaction.
func (r *DraftRepo) AppendLineItem(ctx context.Context, draftID id.ID, item adjustment.LineItem) error {
	querier := r.txManager.GetQuerier(ctx)

	sql, args, err := buildLockDraft(draftID).ToSql()
	if err != nil {
		return fmt.Errorf("build lock: %w", err)
	}
	var locked id.ID
	if err := querier.QueryRow(ctx, sql, args...).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFound("adjustment draft", draftID.String())
		}
		return fmt.Errorf("lock draft: %w", err)
	}

	sql, args, err = buildAppendLineItem(draftID, item).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", lineItemsTable, err)
	}

	sql, args, err = buildTouchDraft(draftID, time.Now().UTC()).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update %s: %w", draftsTable, err)
	}
	return nil
}

// RemoveLineItem deletes one line item. Remaining items keep their order.
func (r *DraftRepo) RemoveLineItem(ctx context.Context, draftID, itemID id.ID) error {
	sql, args, err := builder().
		Delete(lineItemsTable).
		Where(squirrel.Eq{"draft_id": draftID, "id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete line item: %w", err)
	}
	return nil
}

// Delete removes the draft; line items go with it by cascade.
func (r *DraftRepo) Delete(ctx context.Context, draftID id.ID) error {
	sql, args, err := builder().
		Delete(draftsTable).
		Where(squirrel.Eq{"id": draftID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// DeleteUpdatedBefore removes drafts whose updated_at is older than cutoff.
func (r *DraftRepo) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	sql, args, err := buildDeleteUpdatedBefore(cutoff).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete stale drafts: %w", err)
	}
	return tag.RowsAffected(), nil
}

func buildInsertDraft(draft *adjustment.Draft) squirrel.InsertBuilder {
	return builder().
		Insert(draftsTable).
		SetMap(postgres.StructToMap(draft))
}

func buildSelectDraft(draftID id.ID) squirrel.SelectBuilder {
	return builder().
		Select(draftColumns...).
		From(draftsTable).
		Where(squirrel.Eq{"id": draftID}).
		Limit(1)
}

func buildSelectLineItems(draftID id.ID) squirrel.SelectBuilder {
	return builder().
		Select(lineItemColumns...).
		From(lineItemsTable).
		Where(squirrel.Eq{"draft_id": draftID}).
		OrderBy("position ASC")
}

func buildLockDraft(draftID id.ID) squirrel.SelectBuilder {
	return builder().
		Select("id").
		From(draftsTable).
		Where(squirrel.Eq{"id": draftID}).
		Suffix("FOR UPDATE")
}

func buildAppendLineItem(draftID id.ID, item adjustment.LineItem) squirrel.InsertBuilder {
	data := postgres.StructToMap(toRow(draftID, item))
	data["position"] = squirrel.Expr(
		"(SELECT COALESCE(MAX(position), 0) + 1 FROM "+lineItemsTable+" WHERE draft_id = ?)", draftID)

	return builder().
		Insert(lineItemsTable).
		SetMap(data)
}

func buildTouchDraft(draftID id.ID, now time.Time) squirrel.UpdateBuilder {
	return builder().
		Update(draftsTable).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": draftID})
}

func buildDeleteUpdatedBefore(cutoff time.Time) squirrel.DeleteBuilder {
	return builder().
		Delete(draftsTable).
		Where(squirrel.Lt{"updated_at": cutoff})
}
