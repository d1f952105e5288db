package booking

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"breakdesk-backend/config"
	"breakdesk-backend/internal/breaktime"
	"breakdesk-backend/internal/clock"
	"breakdesk-backend/internal/model"
	"breakdesk-backend/internal/store"
)

// Roles supplied by the identity provider. The booking logic trusts them
// verbatim.
const (
	RoleAgent = "agent"
	RoleAdmin = "admin"
	RoleQA    = "qa"
)

// Service is the booking lifecycle manager. One instance is shared by all
// handlers.
type Service struct {
	store  store.Store
	clock  clock.Clock
	cutoff breaktime.TimeOfDay

	// selections holds each agent's in-progress template choice until the
	// booking is confirmed or the template changed. pendingClears holds
	// outstanding admin clear-all confirmations.
	selections    *cache.Cache
	pendingClears *cache.Cache
}

// NewService creates the booking service.
func NewService(cfg *config.BookingConfig, s store.Store, clk clock.Clock) *Service {
	cutoff, err := breaktime.Parse(cfg.RebookCutoff)
	if err != nil {
		cutoff = breaktime.TimeOfDay(11*60 + 59)
	}
	selTTL := time.Duration(cfg.SelectionTTLHours) * time.Hour
	clearTTL := time.Duration(cfg.ClearConfirmTTLSeconds) * time.Second
	return &Service{
		store:         s,
		clock:         clk,
		cutoff:        cutoff,
		selections:    cache.New(selTTL, 2*selTTL),
		pendingClears: cache.New(clearTTL, 2*clearTTL),
	}
}

// Today returns the current civil calendar date.
func (s *Service) Today() string {
	return clock.Date(s.clock.Now())
}

// BookingView is the read shape of a confirmed booking.
type BookingView struct {
	Template string `json:"template"`
	Lunch    string `json:"lunch"`
	EarlyTea string `json:"early_tea"`
	LateTea  string `json:"late_tea"`
	BookedAt string `json:"booked_at"`
}

func viewOf(b *model.Booking) *BookingView {
	return &BookingView{
		Template: b.TemplateName,
		Lunch:    b.Time(breaktime.Lunch),
		EarlyTea: b.Time(breaktime.EarlyTea),
		LateTea:  b.Time(breaktime.LateTea),
		BookedAt: b.BookedAt(),
	}
}

// DashboardState is what an agent sees on entry: either today's confirmed
// booking, or the templates they can book from.
type DashboardState struct {
	Date              string       `json:"date"`
	Booked            bool         `json:"booked"`
	Booking           *BookingView `json:"booking,omitempty"`
	EligibleTemplates []string     `json:"eligible_templates,omitempty"`
	SelectedTemplate  string       `json:"selected_template,omitempty"`
}

// EnterDashboard reconciles the agent's ledger entries with the current
// civil date and reports their booking state. Stale prior-day bookings are
// swept here, lazily, instead of by a background job.
func (s *Service) EnterDashboard(ctx context.Context, agentID, role string) (*DashboardState, error) {
	now := s.clock.Now()
	today := clock.Date(now)

	if err := s.reconcile(ctx, agentID, role, now); err != nil {
		return nil, err
	}

	b, err := s.store.GetBooking(ctx, agentID, today)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return &DashboardState{Date: today, Booked: true, Booking: viewOf(b)}, nil
	}

	eligible, err := s.eligibleTemplates(ctx, agentID)
	if err != nil {
		return nil, err
	}

	selected := s.heldSelection(agentID, today, eligible)
	if selected == "" && len(eligible) == 1 {
		selected = eligible[0]
		s.holdSelection(agentID, today, selected)
	}

	return &DashboardState{
		Date:              today,
		EligibleTemplates: eligible,
		SelectedTemplate:  selected,
	}, nil
}

// reconcile applies the daily reset sweep and, for agents only, the
// once-per-day clear at or after the rebook cutoff.
func (s *Service) reconcile(ctx context.Context, agentID, role string, now time.Time) error {
	today := clock.Date(now)
	if err := s.store.SweepAgent(ctx, agentID, today); err != nil {
		return err
	}

	if role != RoleAgent {
		return nil
	}
	local := breaktime.TimeOfDay(now.Hour()*60 + now.Minute())
	if local < s.cutoff {
		return nil
	}
	cleared, err := s.store.HasRebookMark(ctx, agentID, today)
	if err != nil {
		return err
	}
	if cleared {
		return nil
	}
	if err := s.store.ClearAgentDay(ctx, agentID, today); err != nil {
		return err
	}
	s.dropSelection(agentID, today)
	return s.store.MarkRebookCleared(ctx, agentID, today)
}

// eligibleTemplates is the intersection of the active template set and the
// agent's assignment, in active-set order.
func (s *Service) eligibleTemplates(ctx context.Context, agentID string) ([]string, error) {
	assigned, err := s.store.AssignedTemplates(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if len(assigned) == 0 {
		return nil, model.ErrNoAssignedTemplate
	}
	active, err := s.store.ActiveTemplates(ctx)
	if err != nil {
		return nil, err
	}
	assignedSet := make(map[string]bool, len(assigned))
	for _, n := range assigned {
		assignedSet[n] = true
	}
	var eligible []string
	for _, n := range active {
		if assignedSet[n] {
			eligible = append(eligible, n)
		}
	}
	if len(eligible) == 0 {
		return nil, model.ErrNoAssignedTemplate
	}
	return eligible, nil
}

func selectionKey(agentID, date string) string {
	return agentID + "|" + date
}

func (s *Service) heldSelection(agentID, date string, eligible []string) string {
	v, ok := s.selections.Get(selectionKey(agentID, date))
	if !ok {
		return ""
	}
	name := v.(string)
	for _, n := range eligible {
		if n == name {
			return name
		}
	}
	// Held template was deactivated or unassigned since selection.
	s.dropSelection(agentID, date)
	return ""
}

func (s *Service) holdSelection(agentID, date, name string) {
	s.selections.Set(selectionKey(agentID, date), name, cache.DefaultExpiration)
}

func (s *Service) dropSelection(agentID, date string) {
	s.selections.Delete(selectionKey(agentID, date))
}

// SelectTemplate records the agent's explicit template choice for today.
func (s *Service) SelectTemplate(ctx context.Context, agentID, name string) error {
	eligible, err := s.eligibleTemplates(ctx, agentID)
	if err != nil {
		return err
	}
	for _, n := range eligible {
		if n == name {
			s.holdSelection(agentID, s.Today(), name)
			return nil
		}
	}
	return model.ErrTemplateUnavailable
}

// ChangeTemplate reverses the template choice, discarding any in-progress
// break selection with it.
func (s *Service) ChangeTemplate(agentID string) {
	s.dropSelection(agentID, s.Today())
}

// SlotAvailability is one bookable slot with its remaining seats.
type SlotAvailability struct {
	Time      string `json:"time"`
	Available int    `json:"available"`
}

// ScheduleView lists the held template's slots with availability counts.
type ScheduleView struct {
	Template string             `json:"template"`
	Lunch    []SlotAvailability `json:"lunch"`
	EarlyTea []SlotAvailability `json:"early_tea"`
	LateTea  []SlotAvailability `json:"late_tea"`
}

// Schedule returns the slots the agent can pick from, with "free to book"
// counts per slot.
func (s *Service) Schedule(ctx context.Context, agentID string) (*ScheduleView, error) {
	today := s.Today()

	b, err := s.store.GetBooking(ctx, agentID, today)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return nil, model.ErrAlreadyBooked
	}

	name, err := s.resolveSelection(ctx, agentID, today)
	if err != nil {
		return nil, err
	}
	tpl, err := s.store.GetTemplate(ctx, name)
	if err != nil {
		if err == model.ErrTemplateNotFound {
			return nil, model.ErrTemplateUnavailable
		}
		return nil, err
	}

	view := &ScheduleView{Template: name}
	for _, kind := range breaktime.Kinds() {
		var slots []SlotAvailability
		for _, t := range tpl.SlotTimes(string(kind)) {
			limit, err := s.store.SlotLimit(ctx, name, kind, t)
			if err != nil {
				return nil, err
			}
			count, err := s.store.CountSlotBookings(ctx, today, name, kind, t)
			if err != nil {
				return nil, err
			}
			available := limit - int(count)
			if available < 0 {
				available = 0
			}
			slots = append(slots, SlotAvailability{Time: t, Available: available})
		}
		switch kind {
		case breaktime.Lunch:
			view.Lunch = slots
		case breaktime.EarlyTea:
			view.EarlyTea = slots
		case breaktime.LateTea:
			view.LateTea = slots
		}
	}
	return view, nil
}

// resolveSelection returns the template the agent is booking from: the held
// choice, or the sole eligible template when nothing was held. A held
// template that was deactivated or unassigned since selection fails with
// ErrTemplateUnavailable instead of silently booking something else.
func (s *Service) resolveSelection(ctx context.Context, agentID, date string) (string, error) {
	eligible, err := s.eligibleTemplates(ctx, agentID)
	if err != nil {
		return "", err
	}
	if v, ok := s.selections.Get(selectionKey(agentID, date)); ok {
		name := v.(string)
		for _, n := range eligible {
			if n == name {
				return name, nil
			}
		}
		s.dropSelection(agentID, date)
		return "", model.ErrTemplateUnavailable
	}
	if len(eligible) == 1 {
		return eligible[0], nil
	}
	return "", model.ErrNoTemplateSelected
}

// Confirm validates the candidate selection and commits the booking. The
// booking is written as one row with a single shared booked-at timestamp,
// so no partial commit can be observed.
func (s *Service) Confirm(ctx context.Context, agentID, role string, sel Selection) (*model.Booking, error) {
	now := s.clock.Now()
	today := clock.Date(now)

	if err := s.reconcile(ctx, agentID, role, now); err != nil {
		return nil, err
	}

	existing, err := s.store.GetBooking(ctx, agentID, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.ErrAlreadyBooked
	}

	name, err := s.resolveSelection(ctx, agentID, today)
	if err != nil {
		return nil, err
	}
	tpl, err := s.store.GetTemplate(ctx, name)
	if err != nil {
		if err == model.ErrTemplateNotFound {
			return nil, model.ErrTemplateUnavailable
		}
		return nil, err
	}

	if sel.Lunch == "" || sel.EarlyTea == "" || sel.LateTea == "" {
		return nil, model.ErrIncompleteSelection
	}
	for _, kind := range breaktime.Kinds() {
		if !containsSlot(tpl.SlotTimes(string(kind)), sel.Time(kind)) {
			return nil, model.ErrUnknownSlot
		}
	}
	if err := CheckConflicts(sel); err != nil {
		return nil, err
	}

	ts := clock.Timestamp(now)
	b := &model.Booking{
		AgentID:          agentID,
		Date:             today,
		TemplateName:     name,
		LunchTime:        &sel.Lunch,
		LunchBookedAt:    &ts,
		EarlyTeaTime:     &sel.EarlyTea,
		EarlyTeaBookedAt: &ts,
		LateTeaTime:      &sel.LateTea,
		LateTeaBookedAt:  &ts,
	}
	if err := s.store.CommitBooking(ctx, b); err != nil {
		return nil, err
	}
	s.dropSelection(agentID, today)
	return b, nil
}

func containsSlot(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
