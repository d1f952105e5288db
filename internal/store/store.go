package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"breakdesk-backend/internal/breaktime"
	"breakdesk-backend/internal/model"
)

// Defaults are the per-slot capacity limits applied when no explicit limit
// has been set for a slot.
type Defaults struct {
	LunchLimit int
	TeaLimit   int
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Templates
	CreateTemplate(ctx context.Context, name string, slots map[breaktime.Kind][]string) (*model.Template, error)
	GetTemplate(ctx context.Context, name string) (*model.Template, error)
	ListTemplates(ctx context.Context) ([]model.Template, error)
	ReplaceSlots(ctx context.Context, name string, slots map[breaktime.Kind][]string) error
	DeleteTemplate(ctx context.Context, name string) error
	ShiftAllSlots(ctx context.Context, hours int) error

	// Capacity limits
	SetLimit(ctx context.Context, templateName string, kind breaktime.Kind, slot string, max int) error
	ListLimits(ctx context.Context, templateName string) ([]model.CapacityLimit, error)
	SlotLimit(ctx context.Context, templateName string, kind breaktime.Kind, slot string) (int, error)

	// Active template set
	ActiveTemplates(ctx context.Context) ([]string, error)
	SetTemplateActive(ctx context.Context, name string, active bool) error

	// Agent template assignments
	AssignedTemplates(ctx context.Context, agentID string) ([]string, error)
	SetAssignedTemplates(ctx context.Context, agentID string, names []string) error

	// Bookings
	GetBooking(ctx context.Context, agentID, date string) (*model.Booking, error)
	ListBookings(ctx context.Context, date string) ([]model.Booking, error)
	CountSlotBookings(ctx context.Context, date, templateName string, kind breaktime.Kind, slot string) (int64, error)
	CommitBooking(ctx context.Context, b *model.Booking) error
	SweepAgent(ctx context.Context, agentID, today string) error
	ClearAgentDay(ctx context.Context, agentID, date string) error
	ClearDate(ctx context.Context, date string) error

	// Rebook marks
	HasRebookMark(ctx context.Context, agentID, date string) (bool, error)
	MarkRebookCleared(ctx context.Context, agentID, date string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db       *gorm.DB
	defaults Defaults
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, defaults Defaults) Store {
	if defaults.LunchLimit <= 0 {
		defaults.LunchLimit = 5
	}
	if defaults.TeaLimit <= 0 {
		defaults.TeaLimit = 3
	}
	return &gormStore{db: db, defaults: defaults}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) defaultLimit(kind breaktime.Kind) int {
	if kind == breaktime.Lunch {
		return s.defaults.LunchLimit
	}
	return s.defaults.TeaLimit
}

func (s *gormStore) CreateTemplate(ctx context.Context, name string, slots map[breaktime.Kind][]string) (*model.Template, error) {
	tpl := &model.Template{Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Template{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return model.ErrDuplicateName
		}
		if err := tx.Create(tpl).Error; err != nil {
			return err
		}
		return createSlots(tx, tpl.ID, slots)
	})
	if err != nil {
		return nil, err
	}
	return s.GetTemplate(ctx, name)
}

func createSlots(tx *gorm.DB, templateID int64, slots map[breaktime.Kind][]string) error {
	var rows []model.TemplateSlot
	for _, kind := range breaktime.Kinds() {
		for i, t := range slots[kind] {
			rows = append(rows, model.TemplateSlot{
				TemplateID: templateID,
				Kind:       string(kind),
				Position:   i,
				Time:       t,
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (s *gormStore) GetTemplate(ctx context.Context, name string) (*model.Template, error) {
	var tpl model.Template
	err := s.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("kind, position") }).
		First(&tpl, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (s *gormStore) ListTemplates(ctx context.Context) ([]model.Template, error) {
	var tpls []model.Template
	err := s.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("kind, position") }).
		Order("name").
		Find(&tpls).Error
	return tpls, err
}

// ReplaceSlots replaces a template's slot lists wholesale, preserving the
// given order. Existing capacity limits are kept; slots without a limit row
// fall back to the defaults.
func (s *gormStore) ReplaceSlots(ctx context.Context, name string, slots map[breaktime.Kind][]string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tpl, err := findTemplate(tx, name)
		if err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", tpl.ID).Delete(&model.TemplateSlot{}).Error; err != nil {
			return err
		}
		return createSlots(tx, tpl.ID, slots)
	})
}

func (s *gormStore) DeleteTemplate(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Template{}).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return model.ErrLastTemplate
		}
		tpl, err := findTemplate(tx, name)
		if err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", tpl.ID).Delete(&model.TemplateSlot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", tpl.ID).Delete(&model.CapacityLimit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("template_name = ?", name).Delete(&model.ActiveTemplate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Template{}, tpl.ID).Error
	})
}

// ShiftAllSlots adds hours to every slot of every template. Blank entries
// are skipped and unparsable entries are left unchanged.
func (s *gormStore) ShiftAllSlots(ctx context.Context, hours int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slots []model.TemplateSlot
		if err := tx.Find(&slots).Error; err != nil {
			return err
		}
		for i := range slots {
			shifted := breaktime.ShiftSlot(slots[i].Time, hours)
			if shifted == slots[i].Time {
				continue
			}
			if err := tx.Model(&model.TemplateSlot{}).
				Where("id = ?", slots[i].ID).
				Update("time", shifted).Error; err != nil {
				return fmt.Errorf("failed to shift slot %d: %w", slots[i].ID, err)
			}
		}
		return nil
	})
}

func findTemplate(tx *gorm.DB, name string) (*model.Template, error) {
	var tpl model.Template
	err := tx.First(&tpl, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (s *gormStore) SetLimit(ctx context.Context, templateName string, kind breaktime.Kind, slot string, max int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tpl, err := findTemplate(tx, templateName)
		if err != nil {
			return err
		}
		limit := model.CapacityLimit{
			TemplateID:  tpl.ID,
			Kind:        string(kind),
			Slot:        slot,
			MaxBookings: max,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "template_id"}, {Name: "kind"}, {Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{"max_bookings"}),
		}).Create(&limit).Error
	})
}

func (s *gormStore) ListLimits(ctx context.Context, templateName string) ([]model.CapacityLimit, error) {
	tpl, err := s.GetTemplate(ctx, templateName)
	if err != nil {
		return nil, err
	}
	var limits []model.CapacityLimit
	err = s.db.WithContext(ctx).
		Where("template_id = ?", tpl.ID).
		Order("kind, slot").
		Find(&limits).Error
	return limits, err
}

func (s *gormStore) SlotLimit(ctx context.Context, templateName string, kind breaktime.Kind, slot string) (int, error) {
	return s.slotLimit(s.db.WithContext(ctx), templateName, kind, slot)
}

func (s *gormStore) slotLimit(tx *gorm.DB, templateName string, kind breaktime.Kind, slot string) (int, error) {
	var limit model.CapacityLimit
	err := tx.
		Joins("JOIN templates ON templates.id = capacity_limits.template_id").
		Where("templates.name = ? AND capacity_limits.kind = ? AND capacity_limits.slot = ?", templateName, string(kind), slot).
		First(&limit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.defaultLimit(kind), nil
	}
	if err != nil {
		return 0, err
	}
	return limit.MaxBookings, nil
}

func (s *gormStore) ActiveTemplates(ctx context.Context) ([]string, error) {
	var active []model.ActiveTemplate
	if err := s.db.WithContext(ctx).Order("template_name").Find(&active).Error; err != nil {
		return nil, err
	}
	names := make([]string, len(active))
	for i, a := range active {
		names[i] = a.TemplateName
	}
	return names, nil
}

func (s *gormStore) SetTemplateActive(ctx context.Context, name string, active bool) error {
	if !active {
		return s.db.WithContext(ctx).
			Where("template_name = ?", name).
			Delete(&model.ActiveTemplate{}).Error
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findTemplate(tx, name); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "template_name"}},
			DoNothing: true,
		}).Create(&model.ActiveTemplate{TemplateName: name}).Error
	})
}

func (s *gormStore) AssignedTemplates(ctx context.Context, agentID string) ([]string, error) {
	var assignment model.AgentAssignment
	err := s.db.WithContext(ctx).First(&assignment, "agent_id = ?", agentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return assignment.TemplateNames(), nil
}

func (s *gormStore) SetAssignedTemplates(ctx context.Context, agentID string, names []string) error {
	assignment := model.AgentAssignment{
		AgentID:   agentID,
		Templates: strings.Join(names, ","),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "agent_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"templates"}),
	}).Create(&assignment).Error
}
