package orchestrate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

// Sweeper polls for due Sources (§3: "a source is due iff active and now >=
// next_crawl_at") and dispatches each to the Hub or Competition Orchestrator
// by category, the background loop cmd/sweeper drives on an interval.
type Sweeper struct {
	Sources store.SourceStore
	Hub     *HubOrchestrator
	Comp    competitionCrawler

	Logger *zap.Logger
}

// competitionCrawler is the subset of CompetitionOrchestrator the sweeper
// needs for a due competition Source: a direct fetch-and-parse run rather
// than TriggerCompetitionCrawl's REST-facing (key, year) entry point.
type competitionCrawler interface {
	CrawlDueSource(ctx context.Context, src *models.Source) error
}

// Sweep runs one pass: load every due Source, dispatch it, and advance its
// schedule regardless of outcome so a persistently failing source doesn't
// starve the rest of the sweep.
func (s *Sweeper) Sweep(ctx context.Context) error {
	due, err := s.Sources.ListDueSources(ctx, nil)
	if err != nil {
		return fatal("Sweep.ListDueSources", err)
	}

	for _, src := range due {
		s.dispatch(ctx, src)
	}
	return nil
}

func (s *Sweeper) dispatch(ctx context.Context, src *models.Source) {
	var err error
	switch src.Category {
	case models.SourceCategoryRetailer, models.SourceCategoryDatabase:
		err = s.Hub.CrawlHub(ctx, src)
	case models.SourceCategoryCompetition:
		if s.Comp != nil {
			err = s.Comp.CrawlDueSource(ctx, src)
		}
	default:
		if s.Logger != nil {
			s.Logger.Info("sweeper.skip_unsupported_category", zap.String("source", src.Slug), zap.String("category", string(src.Category)))
		}
	}
	// Reschedule regardless of outcome (including an unsupported category)
	// so one source never starves the rest of the sweep or gets reselected
	// every pass.
	if err != nil && s.Logger != nil {
		s.Logger.Warn("sweeper.dispatch_failed", zap.String("source", src.Slug), zap.Error(err))
	}

	src.ScheduleNext(time.Now())
	if updateErr := s.Sources.UpdateSourceSchedule(ctx, nil, src); updateErr != nil && s.Logger != nil {
		s.Logger.Warn("sweeper.schedule_update_failed", zap.String("source", src.Slug), zap.Error(updateErr))
	}
}
