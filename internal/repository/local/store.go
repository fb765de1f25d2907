package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/okonek/mathsprint/internal/logger"
	"github.com/okonek/mathsprint/internal/models"
	"github.com/okonek/mathsprint/internal/repository"
)

// LeaderboardLimit caps leaderboard reads from the local store.
const LeaderboardLimit = 5

// record is the on-disk shape. The single-device variant has one implicit
// mode, so no mode field is persisted; the saved GameMode is retained only
// in memory for the lifetime of the returned value.
type record struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

// Store is an append-only score store persisted as a JSON array in a single
// file. Writes are atomic (write to temp, rename); reads never observe a
// partially-written file.
type Store struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

var _ repository.ScoreRepository = (*Store)(nil)

// NewStore creates a Store backed by the file at path. The file is created
// lazily on first save.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		log:  logger.Default().WithPrefix("local_store"),
	}
}

func (s *Store) load() ([]record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corrupt score file %s: %w", s.path, err)
	}
	return records, nil
}

func (s *Store) write(records []record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".scores-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Save appends a record with a client-side timestamp. A write failure
// (e.g. exhausted storage) surfaces to the caller.
func (s *Store) Save(ctx context.Context, draft models.GameScoreDraft) (*models.GameScore, error) {
	log := logger.FromContext(ctx).WithPrefix("local_store")

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		log.Error("failed to load scores: %v", err)
		return nil, err
	}

	rec := record{Name: draft.PlayerName, Score: draft.Score, Date: time.Now()}
	records = append(records, rec)
	if err := s.write(records); err != nil {
		log.Error("failed to persist scores: %v", err)
		return nil, err
	}

	log.Debug("score appended: player=%s, score=%d", draft.PlayerName, draft.Score)
	return &models.GameScore{
		ID:         int64(len(records)),
		PlayerName: rec.Name,
		Score:      rec.Score,
		GameMode:   draft.GameMode,
		CreatedAt:  rec.Date,
	}, nil
}

// Leaderboard returns the top records by score descending, ties broken by
// insertion order. The mode filter is ignored: the local variant has a
// single implicit mode.
func (s *Store) Leaderboard(ctx context.Context, filter models.LeaderboardFilter) ([]models.GameScore, error) {
	s.mu.Lock()
	records, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	scores := make([]models.GameScore, len(records))
	for i, r := range records {
		scores[i] = models.GameScore{
			ID:         int64(i + 1),
			PlayerName: r.Name,
			Score:      r.Score,
			CreatedAt:  r.Date,
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	limit := filter.Limit
	if limit <= 0 || limit > LeaderboardLimit {
		limit = LeaderboardLimit
	}
	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

// PlayerBest returns the player's maximum score, or 0 with no records.
// The mode parameter is accepted for contract parity and ignored.
func (s *Store) PlayerBest(ctx context.Context, playerName, gameMode string) (int, error) {
	s.mu.Lock()
	records, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	best := 0
	for _, r := range records {
		if r.Name == playerName && r.Score > best {
			best = r.Score
		}
	}
	return best, nil
}
