package db

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"mova.dev/relay/internal/translation"
)

// HistoryStore persists successful translations keyed by the SHA-256 of the
// source text plus the language pair. It implements
// translation.HistoryStore.
type HistoryStore struct {
	pool *Pool
}

func NewHistoryStore(pool *Pool) *HistoryStore {
	return &HistoryStore{pool: pool}
}

// HistoryRow is one stored translation enriched for listings.
type HistoryRow struct {
	TranslationID  int64     `json:"translation_id"`
	SourceLang     string    `json:"source_lang"`
	TargetLang     string    `json:"target_lang"`
	OriginalText   string    `json:"original_text"`
	TranslatedText string    `json:"translated_text"`
	ProviderName   string    `json:"provider_name"`
	LatencyMS      *int      `json:"latency_ms,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (s *HistoryStore) Lookup(ctx context.Context, text, sourceLang, targetLang string) (*translation.HistoryEntry, error) {
	if s == nil || s.pool == nil {
		return nil, fmt.Errorf("history store is not initialized")
	}

	hash := contentHash(text)
	const q = `
SELECT source_lang, target_lang, original_text, translated_text, provider_name, COALESCE(latency_ms, 0)
FROM relay_translations
WHERE content_hash = $1
  AND source_lang = $2
  AND target_lang = $3
LIMIT 1
`

	var entry translation.HistoryEntry
	err := s.pool.QueryRow(ctx, q, hash, sourceLang, targetLang).Scan(
		&entry.SourceLang,
		&entry.TargetLang,
		&entry.OriginalText,
		&entry.TranslatedText,
		&entry.Provider,
		&entry.LatencyMS,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query translation history: %w", err)
	}
	return &entry, nil
}

func (s *HistoryStore) Save(ctx context.Context, entry translation.HistoryEntry) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("history store is not initialized")
	}

	const q = `
INSERT INTO relay_translations (
	content_hash,
	source_lang,
	target_lang,
	original_text,
	translated_text,
	provider_name,
	latency_ms
)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (content_hash, source_lang, target_lang)
DO UPDATE SET
	translated_text = EXCLUDED.translated_text,
	provider_name = EXCLUDED.provider_name,
	latency_ms = EXCLUDED.latency_ms,
	created_at = now()
`

	if err := s.pool.Exec(
		ctx,
		q,
		contentHash(entry.OriginalText),
		entry.SourceLang,
		entry.TargetLang,
		entry.OriginalText,
		entry.TranslatedText,
		entry.Provider,
		entry.LatencyMS,
	); err != nil {
		return fmt.Errorf("upsert translation history: %w", err)
	}
	return nil
}

// ListRecent returns the newest stored translations, most recent first.
func (s *HistoryStore) ListRecent(ctx context.Context, limit int) ([]HistoryRow, error) {
	if s == nil || s.pool == nil {
		return nil, fmt.Errorf("history store is not initialized")
	}
	if limit <= 0 {
		limit = 25
	}

	const q = `
SELECT
	translation_id,
	source_lang,
	target_lang,
	original_text,
	translated_text,
	provider_name,
	latency_ms,
	created_at
FROM relay_translations
ORDER BY created_at DESC, translation_id DESC
LIMIT $1
`

	rows, err := s.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query translation history: %w", err)
	}
	defer rows.Close()

	items := make([]HistoryRow, 0, limit)
	for rows.Next() {
		var row HistoryRow
		if err := rows.Scan(
			&row.TranslationID,
			&row.SourceLang,
			&row.TargetLang,
			&row.OriginalText,
			&row.TranslatedText,
			&row.ProviderName,
			&row.LatencyMS,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan translation history row: %w", err)
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translation history: %w", err)
	}
	return items, nil
}

func contentHash(text string) []byte {
	sum := sha256.Sum256([]byte(text))
	return sum[:]
}
