package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ledgertalk/ledgertalk/internal/model"
	"github.com/ledgertalk/ledgertalk/internal/service"
)

// SaveEvents persists a confirmed batch and returns how many events were
// stored. Null statements and needs-more-info events are never persisted;
// they carry no financial activity.
func (s *SQLiteStorage) SaveEvents(ctx context.Context, events []model.Event, summary string) (int, error) {
	return s.saveEvents(ctx, events, summary, "chat")
}

// SaveImportedEvents persists events produced by a statement import rather
// than the chat flow.
func (s *SQLiteStorage) SaveImportedEvents(ctx context.Context, events []model.Event, summary string) (int, error) {
	return s.saveEvents(ctx, events, summary, "import")
}

func (s *SQLiteStorage) saveEvents(ctx context.Context, events []model.Event, summary, source string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	count := 0
	for _, ev := range events {
		if ev.Kind == model.KindNullStatement || ev.Kind == model.KindNeedsMoreInfo {
			continue
		}

		payload, err := json.Marshal(ev)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal event: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO events (id, kind, payload, summary, source) VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), string(ev.Kind), string(payload), summary, source); err != nil {
			return 0, fmt.Errorf("failed to insert event: %w", err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit events: %w", err)
	}

	slog.Debug("Saved events", "count", count, "source", source)

	return count, nil
}

// GetEvents returns persisted events, newest first.
func (s *SQLiteStorage) GetEvents(ctx context.Context, filter service.EventFilter) ([]service.StoredEvent, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, kind, payload, COALESCE(summary, ''), created_at FROM events`
	args := []any{}
	if filter.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(filter.Kind))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stored []service.StoredEvent
	for rows.Next() {
		var se service.StoredEvent
		var kind, payload string
		if err := rows.Scan(&se.ID, &kind, &payload, &se.Summary, &se.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &se.Event); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event %s: %w", se.ID, err)
		}
		stored = append(stored, se)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return stored, nil
}
