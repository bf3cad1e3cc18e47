// services/overdue_service.go
package services

import (
	"time"

	"aiinvoice-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// OverdueService flips unpaid invoices past their due date to "overdue" once
// a day. Due dates are ISO date strings, so lexical comparison is safe.
type OverdueService struct {
	db  *gorm.DB
	now func() time.Time
	log zerolog.Logger
}

func NewOverdueService(db *gorm.DB, log zerolog.Logger) *OverdueService {
	return &OverdueService{db: db, now: time.Now, log: log}
}

func (s *OverdueService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SweepOverdue)

	c.Start()
	s.log.Info().Msg("overdue scheduler started")
}

func (s *OverdueService) SweepOverdue() {
	today := s.now().Format("2006-01-02")

	res := s.db.Model(&models.Invoice{}).
		Where("status = ? AND due_date <> '' AND due_date < ?", "unpaid", today).
		Update("status", "overdue")
	if res.Error != nil {
		s.log.Error().Err(res.Error).Msg("overdue sweep failed")
		return
	}
	if res.RowsAffected > 0 {
		s.log.Info().Int64("flipped", res.RowsAffected).Msg("invoices marked overdue")
	}
}
