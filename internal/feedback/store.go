// Package feedback persists section votes and per-article votes.
package feedback

import (
	"context"
	"fmt"

	"github.com/coinpulse/backend/pkg/storage"
)

// Schema is the SQLite schema for feedback.
const Schema = `
CREATE TABLE IF NOT EXISTS feedback (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id    INTEGER NOT NULL,
    section    TEXT NOT NULL,
    vote       TEXT NOT NULL,
    article_id TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_feedback_user ON feedback(user_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_feedback_article
    ON feedback(user_id, section, article_id) WHERE article_id IS NOT NULL;
`

// Store provides feedback persistence.
type Store struct {
	db *storage.DB
}

// NewStore creates a new feedback store.
func NewStore(db *storage.DB) *Store {
	return &Store{db: db}
}

// SaveSectionVote records a thumbs up/down for a dashboard section.
func (s *Store) SaveSectionVote(ctx context.Context, userID int, section, vote string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (user_id, section, vote) VALUES (?, ?, ?)`,
		userID, section, vote)
	if err != nil {
		return fmt.Errorf("save section vote: %w", err)
	}
	return nil
}

// SaveArticleVote records a vote on a news article, replacing any existing
// vote by the same user.
func (s *Store) SaveArticleVote(ctx context.Context, userID int, articleID, vote string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (user_id, section, vote, article_id)
		VALUES (?, 'news', ?, ?)
		ON CONFLICT(user_id, section, article_id) WHERE article_id IS NOT NULL DO UPDATE SET
			vote = excluded.vote,
			created_at = CURRENT_TIMESTAMP
	`, userID, vote, articleID)
	if err != nil {
		return fmt.Errorf("save article vote: %w", err)
	}
	return nil
}

// ArticleVotes returns the user's news votes as articleID -> vote.
func (s *Store) ArticleVotes(ctx context.Context, userID int) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT article_id, vote FROM feedback
		 WHERE user_id = ? AND section = 'news' AND article_id IS NOT NULL`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query article votes: %w", err)
	}
	defer rows.Close()

	votes := make(map[string]string)
	for rows.Next() {
		var articleID, vote string
		if err := rows.Scan(&articleID, &vote); err != nil {
			return nil, err
		}
		votes[articleID] = vote
	}
	return votes, rows.Err()
}
