package adjustment_repo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockadmin/internal/core/id"
	"stockadmin/internal/domain/adjustment"
)

func newTestLog(t *testing.T) *SubmissionLog {
	t.Helper()
	l, err := NewSubmissionLog(nil)
	require.NoError(t, err)
	t.Cleanup(l.Close)
	return l
}

func sampleSubmission(items int) adjustment.Submission {
	lineItems := make([]adjustment.LineItem, items)
	for i := range lineItems {
		lineItems[i] = sampleItem()
	}
	event := adjustment.BuildEvent(id.New(), id.New(), lineItems)
	return adjustment.NewSubmission(id.New(), id.New(), event)
}

func TestSubmissionLog_EncodeSmallPayloadUncompressed(t *testing.T) {
	l := newTestLog(t)
	s := sampleSubmission(2)

	row, err := l.encode(s)
	require.NoError(t, err)

	assert.Equal(t, CompressionNone, row.CompressionAlgo)
	assert.NotEmpty(t, row.Payload)
	assert.Nil(t, row.PayloadCompressed)

	got, err := l.decode(row)
	require.NoError(t, err)
	assert.Equal(t, s.Event, got.Event)
	assert.Equal(t, 2, got.LineItemCount)
}

func TestSubmissionLog_EncodeLargePayloadCompressed(t *testing.T) {
	l := newTestLog(t)
	s := sampleSubmission(200)

	row, err := l.encode(s)
	require.NoError(t, err)

	assert.Equal(t, CompressionZstd, row.CompressionAlgo)
	assert.Nil(t, row.Payload)
	assert.NotEmpty(t, row.PayloadCompressed)

	got, err := l.decode(row)
	require.NoError(t, err)
	assert.Equal(t, s.Event, got.Event)
	assert.Equal(t, s.FacilityID, got.FacilityID)
}

func TestSubmissionLog_DecodeCorruptPayload(t *testing.T) {
	l := newTestLog(t)
	row := submissionRow{
		ID:                id.New(),
		CompressionAlgo:   CompressionZstd,
		PayloadCompressed: []byte("not zstd"),
	}

	_, err := l.decode(row)
	assert.Error(t, err)
}

func TestBuildListSubmissions(t *testing.T) {
	facilityID := id.New()

	sql, args, err := buildListSubmissions(facilityID, 25).ToSql()

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sql, "SELECT id, draft_id, event_id, program_id, facility_id, line_item_count,"))
	assert.True(t, strings.HasSuffix(sql,
		"FROM adjustment_submissions WHERE facility_id = $1 ORDER BY submitted_at DESC, id DESC LIMIT 25"))
	assert.Equal(t, []any{facilityID.String()}, args)
}
