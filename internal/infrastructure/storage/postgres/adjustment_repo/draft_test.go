package adjustment_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockadmin/internal/core/id"
	"stockadmin/internal/domain/adjustment"
)

func sampleItem() adjustment.LineItem {
	qty := 233
	soh := 100
	free := "free"
	return adjustment.LineItem{
		ID:             id.New(),
		Orderable:      adjustment.Orderable{ID: id.New(), ProductCode: "C1", FullProductName: "Vaccine"},
		StockOnHand:    &soh,
		Quantity:       &qty,
		Reason:         adjustment.Reason{ID: id.New(), Name: "clinic return"},
		ReasonFreeText: &free,
		OccurredDate:   time.Date(2016, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestLineItemRow_RoundTrip(t *testing.T) {
	draftID := id.New()
	item := sampleItem()

	row := toRow(draftID, item)

	assert.Equal(t, draftID, row.DraftID)
	require.NotNil(t, row.ReasonID)
	assert.Equal(t, item, row.toLineItem())
}

func TestLineItemRow_NoReason(t *testing.T) {
	item := sampleItem()
	item.Reason = adjustment.Reason{}
	item.Quantity = nil

	row := toRow(id.New(), item)

	assert.Nil(t, row.ReasonID)
	assert.Nil(t, row.Quantity)
	assert.Equal(t, item, row.toLineItem())
}

func TestLineItemRow_KeepsEnteredCalendarDate(t *testing.T) {
	item := sampleItem()
	item.OccurredDate = time.Date(2017, 4, 1, 0, 30, 0, 0, time.FixedZone("", 2*60*60))

	row := toRow(id.New(), item)
	assert.Equal(t, 2*60*60, row.OccurredOffset)

	// timestamptz comes back from the driver in the session zone.
	row.OccurredDate = row.OccurredDate.In(time.UTC)
	loaded := row.toLineItem()

	assert.True(t, loaded.OccurredDate.Equal(item.OccurredDate))
	assert.Equal(t, "01/04/2017", loaded.OccurredDate.Format(adjustment.OccurredDateLayout))
	assert.True(t, adjustment.Matches("01/04/2017", loaded))
	assert.Len(t, adjustment.Search("01/04/2017", []adjustment.LineItem{loaded}), 1)
	assert.Equal(t, "2017-03-31T22:30:00.000Z", adjustment.FormatOccurredDate(loaded.OccurredDate))
}

func TestLineItemRow_NegativeOffset(t *testing.T) {
	item := sampleItem()
	item.OccurredDate = time.Date(2017, 4, 1, 23, 0, 0, 0, time.FixedZone("", -5*60*60))

	row := toRow(id.New(), item)
	row.OccurredDate = row.OccurredDate.In(time.UTC)

	assert.True(t, adjustment.Matches("01/04/2017", row.toLineItem()))
}

func TestBuildSelectDraft(t *testing.T) {
	draftID := id.New()

	sql, args, err := buildSelectDraft(draftID).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, program_id, facility_id, created_at, updated_at FROM adjustment_drafts WHERE id = $1 LIMIT 1",
		sql)
	assert.Equal(t, []any{draftID.String()}, args)
}

func TestBuildSelectLineItems_OrdersByPosition(t *testing.T) {
	draftID := id.New()

	sql, args, err := buildSelectLineItems(draftID).ToSql()

	require.NoError(t, err)
	assert.Contains(t, sql, "FROM adjustment_draft_line_items WHERE draft_id = $1 ORDER BY position ASC")
	assert.Contains(t, sql, "reason_free_text")
	assert.Contains(t, sql, "occurred_offset")
	assert.Equal(t, []any{draftID.String()}, args)
}

func TestBuildLockDraft(t *testing.T) {
	draftID := id.New()

	sql, args, err := buildLockDraft(draftID).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM adjustment_drafts WHERE id = $1 FOR UPDATE", sql)
	assert.Equal(t, []any{draftID.String()}, args)
}

func TestBuildAppendLineItem(t *testing.T) {
	draftID := id.New()
	item := sampleItem()

	sql, args, err := buildAppendLineItem(draftID, item).ToSql()

	require.NoError(t, err)
	assert.Contains(t, sql, "INSERT INTO adjustment_draft_line_items")
	assert.Contains(t, sql,
		"(SELECT COALESCE(MAX(position), 0) + 1 FROM adjustment_draft_line_items WHERE draft_id = $")
	assert.NotContains(t, sql, "?")
	assert.Len(t, args, len(lineItemColumns))
	assert.Contains(t, args, item.ID)
	assert.Contains(t, args, item.Orderable.ID)
}

func TestBuildInsertDraft(t *testing.T) {
	draft := adjustment.NewDraft(id.New(), id.New())

	sql, args, err := buildInsertDraft(draft).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO adjustment_drafts (created_at,facility_id,id,program_id,updated_at) VALUES ($1,$2,$3,$4,$5)",
		sql)
	assert.Equal(t, []any{draft.CreatedAt, draft.FacilityID, draft.ID, draft.ProgramID, draft.UpdatedAt}, args)
}

func TestBuildTouchDraft(t *testing.T) {
	draftID := id.New()
	now := time.Now().UTC()

	sql, args, err := buildTouchDraft(draftID, now).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE adjustment_drafts SET updated_at = $1 WHERE id = $2", sql)
	assert.Equal(t, []any{now, draftID.String()}, args)
}

func TestBuildDeleteUpdatedBefore(t *testing.T) {
	cutoff := time.Now().UTC()

	sql, args, err := buildDeleteUpdatedBefore(cutoff).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM adjustment_drafts WHERE updated_at < $1", sql)
	assert.Equal(t, []any{cutoff}, args)
}
