package model

import "time"

// Template is a named break schedule agents can book from.
type Template struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:128;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Associations
	Slots []TemplateSlot `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

// SlotTimes returns the template's slot times for one break kind in
// admin-entered order. Slots must have been preloaded.
func (t *Template) SlotTimes(kind string) []string {
	var times []string
	for _, s := range t.Slots {
		if s.Kind == kind {
			times = append(times, s.Time)
		}
	}
	return times
}

// TemplateSlot is one bookable time for one break kind. Position preserves
// the admin-entered ordering of the slot list.
type TemplateSlot struct {
	ID         int64  `gorm:"primaryKey"`
	TemplateID int64  `gorm:"index;not null"`
	Kind       string `gorm:"size:16;not null"`
	Position   int    `gorm:"not null"`
	Time       string `gorm:"size:8;not null"`
}

// ActiveTemplate marks a template as currently bookable by agents.
type ActiveTemplate struct {
	ID           int64  `gorm:"primaryKey"`
	TemplateName string `gorm:"uniqueIndex;size:128;not null"`
}
