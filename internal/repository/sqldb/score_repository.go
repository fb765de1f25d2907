package sqldb

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/okonek/mathsprint/internal/db"
	"github.com/okonek/mathsprint/internal/logger"
	"github.com/okonek/mathsprint/internal/models"
	"github.com/okonek/mathsprint/internal/repository"
)

// DefaultLeaderboardLimit caps leaderboard reads from the SQL store.
const DefaultLeaderboardLimit = 10

type scoreRepository struct {
	db *db.DB
}

// NewScoreRepository creates a ScoreRepository backed by the SQL database.
func NewScoreRepository(database *db.DB) repository.ScoreRepository {
	return &scoreRepository{db: database}
}

func (r *scoreRepository) Save(ctx context.Context, draft models.GameScoreDraft) (*models.GameScore, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("saving score: player=%s, score=%d, mode=%s", draft.PlayerName, draft.Score, draft.GameMode)

	record := models.GameScore{
		PlayerName: draft.PlayerName,
		Score:      draft.Score,
		GameMode:   draft.GameMode,
	}

	if r.db.Driver() == "postgres" {
		err := r.db.QueryRowContext(ctx, `
INSERT INTO game_scores (player_name, score, game_mode)
VALUES ($1, $2, $3)
RETURNING id, created_at
`, draft.PlayerName, draft.Score, draft.GameMode).Scan(&record.ID, &record.CreatedAt)
		if err != nil {
			log.Error("failed to insert score: %v", err)
			return nil, err
		}
	} else {
		res, err := r.db.ExecContext(ctx, `
INSERT INTO game_scores (player_name, score, game_mode)
VALUES (?, ?, ?)
`, draft.PlayerName, draft.Score, draft.GameMode)
		if err != nil {
			log.Error("failed to insert score: %v", err)
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			log.Error("failed to get score id: %v", err)
			return nil, err
		}
		record.ID = id
		if err := r.db.QueryRowContext(ctx, `SELECT created_at FROM game_scores WHERE id = ?`, id).Scan(&record.CreatedAt); err != nil {
			log.Error("failed to read back created_at: %v", err)
			return nil, err
		}
	}

	log.Debug("score saved: id=%d", record.ID)
	return &record, nil
}

func (r *scoreRepository) Leaderboard(ctx context.Context, filter models.LeaderboardFilter) ([]models.GameScore, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("fetching leaderboard: mode=%s, limit=%d", filter.GameMode, filter.Limit)

	query := r.db.Builder().
		Select("id", "player_name", "score", "game_mode", "created_at").
		From("game_scores")

	if filter.GameMode != "" {
		query = query.Where(squirrel.Eq{"game_mode": filter.GameMode})
	}

	limit := filter.Limit
	if limit <= 0 || limit > DefaultLeaderboardLimit {
		limit = DefaultLeaderboardLimit
	}

	// Ties break by insertion order, earliest first.
	query = query.OrderBy("score DESC", "id ASC").Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build leaderboard query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query leaderboard: %v", err)
		return nil, err
	}
	defer rows.Close()

	var scores []models.GameScore
	for rows.Next() {
		var s models.GameScore
		if err := rows.Scan(&s.ID, &s.PlayerName, &s.Score, &s.GameMode, &s.CreatedAt); err != nil {
			log.Error("failed to scan score row: %v", err)
			return nil, err
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		log.Error("leaderboard rows error: %v", err)
		return nil, err
	}

	log.Debug("leaderboard fetched: %d records", len(scores))
	return scores, nil
}

func (r *scoreRepository) PlayerBest(ctx context.Context, playerName, gameMode string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("fetching best score: player=%s, mode=%s", playerName, gameMode)

	query := r.db.Builder().
		Select("COALESCE(MAX(score), 0)").
		From("game_scores").
		Where(squirrel.Eq{"player_name": playerName, "game_mode": gameMode})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build best-score query: %v", err)
		return 0, err
	}

	var best int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&best); err != nil {
		log.Error("failed to query best score: %v", err)
		return 0, err
	}
	return best, nil
}
