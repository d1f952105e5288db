package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"breakdesk-backend/internal/breaktime"
	"breakdesk-backend/internal/model"
)

func timeColumn(kind breaktime.Kind) string {
	switch kind {
	case breaktime.Lunch:
		return "lunch_time"
	case breaktime.EarlyTea:
		return "early_tea_time"
	default:
		return "late_tea_time"
	}
}

func (s *gormStore) GetBooking(ctx context.Context, agentID, date string) (*model.Booking, error) {
	var b model.Booking
	err := s.db.WithContext(ctx).First(&b, "agent_id = ? AND date = ?", agentID, date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *gormStore) ListBookings(ctx context.Context, date string) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Where("date = ?", date).
		Order("agent_id").
		Find(&bookings).Error
	return bookings, err
}

func (s *gormStore) CountSlotBookings(ctx context.Context, date, templateName string, kind breaktime.Kind, slot string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("date = ? AND template_name = ? AND "+timeColumn(kind)+" = ?", date, templateName, slot).
		Count(&count).Error
	return count, err
}

// CommitBooking re-checks every selected slot's capacity and inserts the
// booking inside one transaction, so two agents racing for the last seat in
// a slot cannot both commit. Capacity is checked lunch, early tea, late tea;
// the first full slot aborts the whole attempt.
func (s *gormStore) CommitBooking(ctx context.Context, b *model.Booking) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, kind := range breaktime.Kinds() {
			slot := b.Time(kind)
			if slot == "" {
				continue
			}
			limit, err := s.slotLimit(tx, b.TemplateName, kind, slot)
			if err != nil {
				return err
			}
			var count int64
			if err := tx.Model(&model.Booking{}).
				Where("date = ? AND template_name = ? AND "+timeColumn(kind)+" = ?", b.Date, b.TemplateName, slot).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(limit) {
				return &model.SlotFullError{Kind: kind, Slot: slot}
			}
		}
		return tx.Create(b).Error
	})
}

// SweepAgent removes the agent's bookings for any date other than today.
// Called lazily on every dashboard entry instead of by a scheduled job.
func (s *gormStore) SweepAgent(ctx context.Context, agentID, today string) error {
	return s.db.WithContext(ctx).
		Where("agent_id = ? AND date <> ?", agentID, today).
		Delete(&model.Booking{}).Error
}

func (s *gormStore) ClearAgentDay(ctx context.Context, agentID, date string) error {
	return s.db.WithContext(ctx).
		Where("agent_id = ? AND date = ?", agentID, date).
		Delete(&model.Booking{}).Error
}

func (s *gormStore) ClearDate(ctx context.Context, date string) error {
	return s.db.WithContext(ctx).
		Where("date = ?", date).
		Delete(&model.Booking{}).Error
}

func (s *gormStore) HasRebookMark(ctx context.Context, agentID, date string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.RebookMark{}).
		Where("agent_id = ? AND date = ?", agentID, date).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) MarkRebookCleared(ctx context.Context, agentID, date string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "agent_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&model.RebookMark{AgentID: agentID, Date: date}).Error
}
