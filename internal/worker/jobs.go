package worker

import (
	"context"

	"github.com/okonek/mathsprint/internal/client"
	"github.com/okonek/mathsprint/internal/logger"
	"github.com/okonek/mathsprint/internal/models"
)

// SubmitScoreJob pushes a finished game's score to the server in the
// background. A failed submission is logged and dropped; the game result
// on screen is not affected.
type SubmitScoreJob struct {
	Client client.ScoreClient
	Draft  models.GameScoreDraft
}

func (j *SubmitScoreJob) Name() string { return "submit_score" }

func (j *SubmitScoreJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"player":    j.Draft.PlayerName,
		"game_mode": j.Draft.GameMode,
	})

	record, err := j.Client.SubmitScore(ctx, j.Draft)
	if err != nil {
		log.Error("score submission failed: %v", err)
		return err
	}

	log.Info("score %d saved with id %d", record.Score, record.ID)
	return nil
}
