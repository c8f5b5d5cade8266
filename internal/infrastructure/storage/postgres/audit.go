package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	"enercore/internal/core/id"
	"enercore/internal/domain"
)

// CompressionAlgo specifies the compression algorithm used for stored payloads.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// TransitionLogEntry is a stored record of one applied status transition.
type TransitionLogEntry struct {
	ID                id.ID           `db:"id"`
	EntityType        string          `db:"entity_type"`
	EntityID          id.ID           `db:"entity_id"`
	Action            string          `db:"action"`
	FromStatus        string          `db:"from_status"`
	ToStatus          string          `db:"to_status"`
	Actor             string          `db:"actor"`
	Payload           json.RawMessage `db:"payload"`
	PayloadCompressed []byte          `db:"payload_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	CreatedAt         time.Time       `db:"created_at"`
}

// Compile-time check that TransitionLog implements the domain auditor.
var _ domain.TransitionAuditor = (*TransitionLog)(nil)

// TransitionLog persists the transition audit trail. Large payloads are
// zstd-compressed before storage.
type TransitionLog struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewTransitionLog creates a transition audit log.
func NewTransitionLog(txManager *TxManager) (*TransitionLog, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &TransitionLog{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record implements domain.TransitionAuditor.
func (l *TransitionLog) Record(ctx context.Context, rec domain.TransitionRecord) error {
	entry := TransitionLogEntry{
		ID:              id.New(),
		EntityType:      rec.EntityType,
		EntityID:        rec.EntityID,
		Action:          rec.Action,
		FromStatus:      rec.FromStatus,
		ToStatus:        rec.ToStatus,
		Actor:           rec.Actor,
		CompressionAlgo: CompressionNone,
		CreatedAt:       time.Now().UTC(),
	}

	if len(rec.Payload) > 0 {
		raw, err := json.Marshal(rec.Payload)
		if err != nil {
			return fmt.Errorf("marshal transition payload: %w", err)
		}
		entry.Payload = raw
	}

	if len(entry.Payload) > l.compressThreshold {
		entry.PayloadCompressed = l.encoder.EncodeAll(entry.Payload, nil)
		entry.Payload = nil
		entry.CompressionAlgo = CompressionZstd
	}

	sql := `
		INSERT INTO transition_log (
			id, entity_type, entity_id, action, from_status, to_status,
			actor, payload, payload_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	querier := l.txManager.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		entry.ID, entry.EntityType, entry.EntityID, entry.Action,
		entry.FromStatus, entry.ToStatus, entry.Actor,
		entry.Payload, entry.PayloadCompressed, entry.CompressionAlgo,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transition log: %w", err)
	}

	return nil
}

// History returns the transition trail of one entity, newest first.
func (l *TransitionLog) History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]TransitionLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "entity_type", "entity_id", "action", "from_status", "to_status",
			"actor", "payload", "payload_compressed", "compression_algo", "created_at").
		From("transition_log").
		Where(squirrel.Eq{"entity_type": entityType}).
		Where(squirrel.Eq{"entity_id": entityID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history query: %w", err)
	}

	var entries []TransitionLogEntry
	querier := l.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("select transition log: %w", err)
	}

	// Decompress in place so callers always read Payload.
	for i := range entries {
		if entries[i].CompressionAlgo != CompressionZstd {
			continue
		}
		raw, err := l.decoder.DecodeAll(entries[i].PayloadCompressed, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress transition payload: %w", err)
		}
		entries[i].Payload = raw
		entries[i].PayloadCompressed = nil
	}

	return entries, nil
}

// Close releases compression resources.
func (l *TransitionLog) Close() {
	l.encoder.Close()
	l.decoder.Close()
}
