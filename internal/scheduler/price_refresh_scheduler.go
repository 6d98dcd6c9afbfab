package scheduler

import (
	"github.com/jauniforms/pricing-backend/internal/app/service"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// PriceRefreshScheduler recomputes every active style's suggested price on a
// cron schedule. Catalog cost edits leave stored prices stale; this sweep
// bounds the staleness to one schedule interval.
type PriceRefreshScheduler struct {
	cron         *cron.Cron
	styleService service.StyleService
	schedule     string
}

func NewPriceRefreshScheduler(styleService service.StyleService, schedule string) *PriceRefreshScheduler {
	return &PriceRefreshScheduler{
		cron:         cron.New(),
		styleService: styleService,
		schedule:     schedule,
	}
}

func (s *PriceRefreshScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.RefreshAll)
	if err != nil {
		logger.Error("Failed to add cron job for price refresh", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Price refresh scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// RefreshAll runs one full recompute pass. Failures on individual styles are
// logged and skipped so one bad row never stalls the sweep.
func (s *PriceRefreshScheduler) RefreshAll() {
	logger.Info("Starting scheduled price refresh", nil)

	activeIDs, err := s.styleService.ActiveStyleIDs()
	if err != nil {
		logger.Error("Failed to list styles for price refresh", err)
		return
	}

	var updated, failed int
	for _, id := range activeIDs {
		result, err := s.styleService.RecomputePrice(id)
		if err != nil {
			failed++
			logger.Error("Failed to recompute style price", err, map[string]interface{}{
				"style_id": id,
			})
			continue
		}
		if result.PriceUpdated {
			updated++
		}
	}

	logger.Info("Scheduled price refresh finished", map[string]interface{}{
		"styles":  len(activeIDs),
		"updated": updated,
		"failed":  failed,
	})
}

func (s *PriceRefreshScheduler) Stop() {
	logger.Info("Stopping price refresh scheduler...", nil)
	s.cron.Stop()
	logger.Info("Price refresh scheduler stopped", nil)
}
