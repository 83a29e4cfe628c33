package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"blogHub/internal/models"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

// SiteStats counts totals plus everything created since the given instant.
func (r *statsRepository) SiteStats(ctx context.Context, since time.Time) (*models.SiteStats, error) {
	var stats models.SiteStats

	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM posts) AS total_posts,
			(SELECT COUNT(*) FROM comments) AS total_comments,
			(SELECT COALESCE(SUM(views), 0) FROM posts) AS total_views,
			(SELECT COUNT(*) FROM users WHERE created_at >= $1) AS new_users_this_month,
			(SELECT COUNT(*) FROM posts WHERE created_at >= $1) AS new_posts_this_month,
			(SELECT COUNT(*) FROM comments WHERE created_at >= $1) AS new_comments_this_month
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count site stats: %w", err)
	}

	return &stats, nil
}

// CountTables reports how many tables exist in the public schema; used by the health check.
func (r *statsRepository) CountTables(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to count tables: %w", err)
	}

	return count, nil
}
