package notification

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/notification"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type PollResult struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
	Beep          bool                  `json:"beep"`
	Cursor        uint                  `json:"cursor"`
}

// Poll backs the bell widget. The cursor remembers the last id the user
// was shown so a notification beeps exactly once.
type Poll struct {
	repo   domain.Repository
	cursor domain.PollCursor
}

func NewPoll(repo domain.Repository, cursor domain.PollCursor) *Poll {
	return &Poll{repo: repo, cursor: cursor}
}

func (uc *Poll) Execute(ctx context.Context, userID uint) (*PollResult, error) {
	unread, err := uc.repo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := &PollResult{
		Notifications: []models.Notification{},
		UnreadCount:   unread,
	}

	last, seen, err := uc.cursor.Get(ctx, userID)
	if err != nil {
		// a broken cursor store means no beep, not a failed poll
		logger.Log.Warn("poll cursor unavailable", zap.Uint("user_id", userID), zap.Error(err))
		seen = false
	}

	// -------- first poll: seed, never beep --------
	if !seen {
		latest, err := uc.repo.LatestID(ctx, userID)
		if err != nil {
			return nil, err
		}
		res.Cursor = latest
		uc.store(ctx, userID, latest)
		return res, nil
	}

	fresh, err := uc.repo.ListAfter(ctx, userID, last)
	if err != nil {
		return nil, err
	}

	res.Cursor = last
	for _, n := range fresh {
		if !n.Read {
			res.Beep = true
		}
		if n.ID > res.Cursor {
			res.Cursor = n.ID
		}
	}
	if fresh != nil {
		res.Notifications = fresh
	}

	if res.Cursor != last {
		uc.store(ctx, userID, res.Cursor)
	}

	return res, nil
}

func (uc *Poll) store(ctx context.Context, userID, id uint) {
	if err := uc.cursor.Set(ctx, userID, id); err != nil {
		logger.Log.Warn("poll cursor not saved", zap.Uint("user_id", userID), zap.Error(err))
	}
}
