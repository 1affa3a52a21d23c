package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/meetpup/meetpup/internal/ports/secondary"
	"github.com/meetpup/meetpup/pkg/logger/types"
)

// MaintenanceService runs background reconciliation. The member counter on
// groups is denormalized and adjusted inline on membership changes; the
// nightly job rebuilds it from the membership rows so drift cannot accumulate.
type MaintenanceService struct {
	logger *types.Logger
	groups secondary.GroupRepository
	cron   *cron.Cron
}

func NewMaintenanceService(logger *types.Logger, groupStorage secondary.GroupRepository) *MaintenanceService {
	return &MaintenanceService{
		logger: logger,
		groups: groupStorage,
		cron:   cron.New(),
	}
}

func (s *MaintenanceService) StartScheduler() error {
	_, err := s.cron.AddFunc("30 4 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := s.ReconcileMemberCounts(ctx); err != nil {
			s.logger.Errorf("member count reconciliation failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add reconciliation job: %w", err)
	}

	s.cron.Start()
	s.logger.Infof("maintenance scheduler started with %d jobs", len(s.cron.Entries()))
	return nil
}

func (s *MaintenanceService) StopScheduler() {
	if s.cron != nil {
		s.cron.Stop()
		s.logger.Info("maintenance scheduler stopped")
	}
}

func (s *MaintenanceService) ReconcileMemberCounts(ctx context.Context) error {
	start := nowFn()
	if err := s.groups.RecountMembers(ctx); err != nil {
		return err
	}
	s.logger.Debugf("member counts reconciled in %s", time.Since(start))
	return nil
}
