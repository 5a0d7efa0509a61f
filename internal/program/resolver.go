package program

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

type configGetter interface {
	Get(ctx context.Context, username, key string) (string, error)
}

// Resolver answers "which program week is this date in" for a given user,
// based on the start date stored in that user's config.
type Resolver struct {
	config configGetter
}

func NewResolver(config configGetter) *Resolver {
	return &Resolver{
		config: config,
	}
}

// WeekFor returns the program week for the given user and date. A user
// without a configured (or with a malformed) start date is in week 1.
func (r *Resolver) WeekFor(ctx context.Context, username string, targetDate time.Time) int {
	startDate, err := r.config.Get(ctx, username, StartDateKey)
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			log.Errorf("program week for [%s]: get start date: %s", username, err)
		}
		return 1
	}
	return WeekNumberFromString(startDate, targetDate)
}
