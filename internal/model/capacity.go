package model

// CapacityLimit caps concurrent bookings for one slot of one template.
// Slots with no row fall back to the configured defaults (lunch 5, tea 3).
type CapacityLimit struct {
	ID          int64  `gorm:"primaryKey"`
	TemplateID  int64  `gorm:"uniqueIndex:idx_limit_template_kind_slot;not null"`
	Kind        string `gorm:"uniqueIndex:idx_limit_template_kind_slot;size:16;not null"`
	Slot        string `gorm:"uniqueIndex:idx_limit_template_kind_slot;size:8;not null"`
	MaxBookings int    `gorm:"not null"`
}
