package repository

import (
	"context"
	"fmt"
	"time"

	"legal-rag/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

type passageRepository struct {
	pool *pgxpool.Pool
}

// NewPassageRepository creates a PassageIndex backed by a pgvector table.
func NewPassageRepository(pool *pgxpool.Pool) domain.PassageIndex {
	return &passageRepository{pool: pool}
}

type dbExecutor interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *passageRepository) getExecutor(ctx context.Context) dbExecutor {
	tx := ExtractTx(ctx)
	if tx != nil {
		return tx
	}
	return r.pool
}

// Search runs a cosine nearest-neighbor query. Similarity is 1 - cosine
// distance, so the caller sees scores in [0,1].
func (r *passageRepository) Search(ctx context.Context, queryVector []float32, limit int, topic string) ([]domain.SearchHit, error) {
	query := `
		SELECT id, content, chapter, section, topic, topic_tags,
		       has_deadline, deadline_detail, source_pages,
		       1 - (embedding <=> $1) AS score
		FROM legal_passages
	`
	args := []interface{}{pgvector.NewVector(queryVector)}
	if topic != "" {
		query += ` WHERE topic = $2`
		args = append(args, topic)
	}
	query += fmt.Sprintf(` ORDER BY embedding <=> $1 LIMIT %d`, limit)

	rows, err := r.getExecutor(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search passages: %w", err)
	}
	defer rows.Close()

	var hits []domain.SearchHit
	for rows.Next() {
		var hit domain.SearchHit
		p := &hit.Passage
		if err := rows.Scan(
			&p.ID, &p.Text, &p.Chapter, &p.Section, &p.Topic, &p.TopicTags,
			&p.HasDeadline, &p.DeadlineDetail, &p.SourcePages,
			&hit.Score,
		); err != nil {
			return nil, fmt.Errorf("failed to scan passage: %w", err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return hits, nil
}

func (r *passageRepository) BulkInsert(ctx context.Context, passages []domain.LegalPassage, embeddings [][]float32) error {
	if len(passages) == 0 {
		return nil
	}
	if len(passages) != len(embeddings) {
		return fmt.Errorf("passage/embedding count mismatch: %d vs %d", len(passages), len(embeddings))
	}

	now := time.Now()
	rows := make([][]interface{}, len(passages))
	for i, p := range passages {
		rows[i] = []interface{}{
			p.ID,
			p.Text,
			p.Chapter,
			p.Section,
			p.Topic,
			p.TopicTags,
			p.HasDeadline,
			p.DeadlineDetail,
			p.SourcePages,
			pgvector.NewVector(embeddings[i]),
			now,
		}
	}

	_, err := r.getExecutor(ctx).CopyFrom(
		ctx,
		pgx.Identifier{"legal_passages"},
		[]string{"id", "content", "chapter", "section", "topic", "topic_tags",
			"has_deadline", "deadline_detail", "source_pages", "embedding", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert passages: %w", err)
	}

	return nil
}

func (r *passageRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.getExecutor(ctx).QueryRow(ctx, `SELECT count(*) FROM legal_passages`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count passages: %w", err)
	}
	return count, nil
}

func (r *passageRepository) Topics(ctx context.Context) ([]domain.TopicCount, error) {
	query := `
		SELECT topic, count(*)
		FROM legal_passages
		GROUP BY topic
		ORDER BY count(*) DESC, topic ASC
	`
	rows, err := r.getExecutor(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	var topics []domain.TopicCount
	for rows.Next() {
		var tc domain.TopicCount
		if err := rows.Scan(&tc.Topic, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return topics, nil
}
