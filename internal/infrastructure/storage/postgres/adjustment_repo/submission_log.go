package adjustment_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	"stockadmin/internal/core/id"
	"stockadmin/internal/domain/adjustment"
	"stockadmin/internal/infrastructure/storage/postgres"
)

const submissionsTable = "adjustment_submissions"

// CompressionAlgo specifies how a stored event payload is encoded.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// DefaultCompressThreshold is the payload size above which events are stored compressed.
const DefaultCompressThreshold = 8 * 1024

var _ adjustment.SubmissionLog = (*SubmissionLog)(nil)

type submissionRow struct {
	ID                id.ID           `db:"id"`
	DraftID           id.ID           `db:"draft_id"`
	EventID           id.ID           `db:"event_id"`
	ProgramID         id.ID           `db:"program_id"`
	FacilityID        id.ID           `db:"facility_id"`
	LineItemCount     int             `db:"line_item_count"`
	Payload           json.RawMessage `db:"payload"`
	PayloadCompressed []byte          `db:"payload_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	SubmittedAt       time.Time       `db:"submitted_at"`
}

var submissionColumns = postgres.ExtractDBColumns[submissionRow]()

// SubmissionLog stores accepted stock events. Payloads larger than the
// threshold are zstd-compressed into a separate column.
type SubmissionLog struct {
	txManager         *postgres.TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewSubmissionLog creates a submission log with DefaultCompressThreshold.
func NewSubmissionLog(txManager *postgres.TxManager) (*SubmissionLog, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &SubmissionLog{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: DefaultCompressThreshold,
	}, nil
}

// Close releases the decoder's goroutines.
func (l *SubmissionLog) Close() {
	l.decoder.Close()
}

// Record inserts s.
func (l *SubmissionLog) Record(ctx context.Context, s adjustment.Submission) error {
	row, err := l.encode(s)
	if err != nil {
		return err
	}

	sql, args, err := buildInsertSubmission(row).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := l.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", submissionsTable, err)
	}
	return nil
}

// ListByFacility returns up to limit submissions for the facility, newest first.
func (l *SubmissionLog) ListByFacility(ctx context.Context, facilityID id.ID, limit int) ([]adjustment.Submission, error) {
	sql, args, err := buildListSubmissions(facilityID, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []submissionRow
	if err := pgxscan.Select(ctx, l.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select submissions: %w", err)
	}

	out := make([]adjustment.Submission, len(rows))
	for i, row := range rows {
		s, err := l.decode(row)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (l *SubmissionLog) encode(s adjustment.Submission) (submissionRow, error) {
	payload, err := json.Marshal(s.Event)
	if err != nil {
		return submissionRow{}, fmt.Errorf("marshal event: %w", err)
	}

	row := submissionRow{
		ID:              s.ID,
		DraftID:         s.DraftID,
		EventID:         s.EventID,
		ProgramID:       s.ProgramID,
		FacilityID:      s.FacilityID,
		LineItemCount:   s.LineItemCount,
		Payload:         payload,
		CompressionAlgo: CompressionNone,
		SubmittedAt:     s.SubmittedAt,
	}
	if len(payload) > l.compressThreshold {
		row.PayloadCompressed = l.encoder.EncodeAll(payload, nil)
		row.Payload = nil
		row.CompressionAlgo = CompressionZstd
	}
	return row, nil
}

func (l *SubmissionLog) decode(row submissionRow) (adjustment.Submission, error) {
	payload := row.Payload
	if row.CompressionAlgo == CompressionZstd && len(row.PayloadCompressed) > 0 {
		decompressed, err := l.decoder.DecodeAll(row.PayloadCompressed, nil)
		if err != nil {
			return adjustment.Submission{}, fmt.Errorf("decompress submission %s: %w", row.ID, err)
		}
		payload = decompressed
	}

	s := adjustment.Submission{
		ID:            row.ID,
		DraftID:       row.DraftID,
		EventID:       row.EventID,
		ProgramID:     row.ProgramID,
		FacilityID:    row.FacilityID,
		LineItemCount: row.LineItemCount,
		SubmittedAt:   row.SubmittedAt,
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &s.Event); err != nil {
			return adjustment.Submission{}, fmt.Errorf("unmarshal submission %s: %w", row.ID, err)
		}
	}
	return s, nil
}

func buildInsertSubmission(row submissionRow) squirrel.InsertBuilder {
	return builder().
		Insert(submissionsTable).
		SetMap(postgres.StructToMap(row))
}

func buildListSubmissions(facilityID id.ID, limit int) squirrel.SelectBuilder {
	return builder().
		Select(submissionColumns...).
		From(submissionsTable).
		Where(squirrel.Eq{"facility_id": facilityID}).
		OrderBy("submitted_at DESC", "id DESC").
		Limit(uint64(limit))
}
