// Package state holds the application's single source of truth: current
// user, progress counters, diet plan, consultation requests, notifications,
// and chat conversations. Every mutation re-persists the affected collection
// through the mirror before returning.
package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ayurbalance/wellness-platform/internal/common"
	"github.com/ayurbalance/wellness-platform/internal/mirror"
)

// Store owns all mutable collections. External callers mutate only through
// its methods; the mutex preserves the single-writer model.
type Store struct {
	mu     sync.Mutex
	mirror *mirror.Mirror

	now   func() time.Time
	newID func(prefix string) string

	currentUser   *User
	progress      Progress
	dietPlan      *DietPlan
	doctors       []Doctor
	requests      []ConsultRequest
	notifications []Notification
	conversations map[string][]ChatMessage
}

type Option func(*Store)

// WithClock injects the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc injects the id generator, for deterministic tests.
func WithIDFunc(fn func(prefix string) string) Option {
	return func(s *Store) { s.newID = fn }
}

// New loads every collection from the mirror, seeding non-empty defaults for
// requests and conversations so the application is usable on first run.
func New(ctx context.Context, m *mirror.Mirror, opts ...Option) *Store {
	s := &Store{
		mirror:  m,
		now:     time.Now,
		newID:   common.NewID,
		doctors: Doctors(),
	}
	for _, opt := range opts {
		opt(s)
	}

	m.Load(ctx, mirror.SlotCurrentUser, &s.currentUser)

	s.progress = defaultProgress()
	m.Load(ctx, mirror.SlotProgress, &s.progress)

	m.Load(ctx, mirror.SlotDietPlan, &s.dietPlan)

	m.Load(ctx, mirror.SlotRequests, &s.requests)
	if len(s.requests) == 0 {
		s.requests = seedRequests(s.now())
	}

	m.Load(ctx, mirror.SlotNotifications, &s.notifications)
	if s.notifications == nil {
		s.notifications = []Notification{}
	}

	m.Load(ctx, mirror.SlotConversations, &s.conversations)
	if len(s.conversations) == 0 {
		s.conversations = seedConversations(s.now(), s.newID)
	}

	return s
}

// --- session identity ---

// SetCurrentUser replaces the session identity; nil signifies logout. No
// validation is performed.
func (s *Store) SetCurrentUser(ctx context.Context, u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = u
	s.mirror.Save(ctx, mirror.SlotCurrentUser, s.currentUser)
}

func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return nil
	}
	u := *s.currentUser
	return &u
}

// --- progress ---

func (s *Store) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

func (s *Store) SetProgress(ctx context.Context, p Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = p
	s.mirror.Save(ctx, mirror.SlotProgress, s.progress)
}

// UpdateWater adds deltaMl to water consumed, clamped into
// [0, waterGoalMl]. A water notification is emitted even when the clamp
// absorbs the whole delta.
func (s *Store) UpdateWater(ctx context.Context, deltaMl int) Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.progress.WaterMl + deltaMl
	if w < 0 {
		w = 0
	}
	if w > s.progress.WaterGoalMl {
		w = s.progress.WaterGoalMl
	}
	s.progress.WaterMl = w
	s.mirror.Save(ctx, mirror.SlotProgress, s.progress)
	s.addNotificationLocked(ctx, NotifyWater, "Hydration logged", fmt.Sprintf("+%dml water added.", deltaMl))
	return s.progress
}

// MarkMealTaken increments meals taken, clamped to meals planned. The diet
// notification fires even when already at the cap.
func (s *Store) MarkMealTaken(ctx context.Context) Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.progress.MealsTaken < s.progress.MealsPlanned {
		s.progress.MealsTaken++
	}
	s.mirror.Save(ctx, mirror.SlotProgress, s.progress)
	s.addNotificationLocked(ctx, NotifyDiet, "Meal recorded", "Marked one meal as taken.")
	return s.progress
}

// --- diet plan ---

func (s *Store) DietPlan() *DietPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDietPlan(s.dietPlan)
}

func (s *Store) SetDietPlan(ctx context.Context, p *DietPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dietPlan = cloneDietPlan(p)
	s.mirror.Save(ctx, mirror.SlotDietPlan, s.dietPlan)
}

// PlanOverrides replaces individual fields of the generated template.
type PlanOverrides struct {
	Date  string
	Notes string
	Meals []Meal
}

// GenerateMockPlan produces the fixed four-meal template, overridable
// per-field, sets it as the active plan and returns it.
func (s *Store) GenerateMockPlan(ctx context.Context, overrides *PlanOverrides) DietPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan := DietPlan{
		Date:  s.now().Format("2006-01-02"),
		Notes: "Personalized as per dosha balance with sattvic emphasis",
		Meals: []Meal{
			{Time: "08:00", Name: "Warm Spiced Oats", Calories: 320, Properties: []string{"Warm", "Rasa: Madhura", "Sattvic"}},
			{Time: "12:30", Name: "Moong Dal Khichdi", Calories: 450, Properties: []string{"Light", "Tridoshic", "Sattvic"}},
			{Time: "16:00", Name: "Herbal Tea + Nuts", Calories: 180, Properties: []string{"Warm", "Rasa: Kashaya"}},
			{Time: "19:30", Name: "Steamed Veg + Ghee", Calories: 420, Properties: []string{"Light", "Grounding"}},
		},
	}
	if overrides != nil {
		if overrides.Date != "" {
			plan.Date = overrides.Date
		}
		if overrides.Notes != "" {
			plan.Notes = overrides.Notes
		}
		if len(overrides.Meals) > 0 {
			plan.Meals = overrides.Meals
		}
	}
	s.dietPlan = cloneDietPlan(&plan)
	s.mirror.Save(ctx, mirror.SlotDietPlan, s.dietPlan)
	s.addNotificationLocked(ctx, NotifyDiet, "Diet plan generated", fmt.Sprintf("7-day plan for %s created.", plan.Date))
	return plan
}

// --- doctors ---

func (s *Store) Doctors() []Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Doctor(nil), s.doctors...)
}

// --- consultation requests ---

func (s *Store) Requests() []ConsultRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRequests(s.requests)
}

// SetRequests replaces the requests collection wholesale. This and
// UpdateRequests are the sole mutation paths for lifecycle transitions.
func (s *Store) SetRequests(ctx context.Context, reqs []ConsultRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = cloneRequests(reqs)
	s.mirror.Save(ctx, mirror.SlotRequests, s.requests)
}

// UpdateRequests applies a pure transform over the current collection. The
// transform sees the latest value, never a stale snapshot.
func (s *Store) UpdateRequests(ctx context.Context, fn func([]ConsultRequest) []ConsultRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = cloneRequests(fn(cloneRequests(s.requests)))
	s.mirror.Save(ctx, mirror.SlotRequests, s.requests)
}

// --- notifications ---

func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.notifications...)
}

// AddNotification prepends a fresh notification and truncates the collection
// to the 50 most recent. Most-recent-first ordering is an invariant.
func (s *Store) AddNotification(ctx context.Context, typ NotificationType, title, message string) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addNotificationLocked(ctx, typ, title, message)
}

func (s *Store) addNotificationLocked(ctx context.Context, typ NotificationType, title, message string) Notification {
	n := Notification{
		ID:      s.newID("ntf"),
		Type:    typ,
		Title:   title,
		Message: message,
		Time:    s.now(),
		Read:    false,
	}
	s.notifications = append([]Notification{n}, s.notifications...)
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[:maxNotifications]
	}
	s.mirror.Save(ctx, mirror.SlotNotifications, s.notifications)
	return n
}

// MarkAllRead clears the entire notifications collection. It does not flip
// read flags; read-all means gone.
func (s *Store) MarkAllRead(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = []Notification{}
	s.mirror.Save(ctx, mirror.SlotNotifications, s.notifications)
}

// MarkNotificationRead removes the notification with the given id. Unknown
// ids are a no-op.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.notifications[:0:0]
	for _, n := range s.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
	s.mirror.Save(ctx, mirror.SlotNotifications, s.notifications)
}

// --- conversations ---

func (s *Store) Conversation(requestID string) []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatMessage(nil), s.conversations[requestID]...)
}

func (s *Store) Conversations() map[string][]ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]ChatMessage, len(s.conversations))
	for k, v := range s.conversations {
		out[k] = append([]ChatMessage(nil), v...)
	}
	return out
}

// AddMessage appends to the conversation keyed by requestID, creating it if
// absent, and truncates to the 200 most recent messages. A zero ts defaults
// to the current time.
func (s *Store) AddMessage(ctx context.Context, requestID string, from ChatSender, text string, ts int64) ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ts == 0 {
		ts = s.now().UnixMilli()
	}
	msg := ChatMessage{
		ID:        s.newID("msg"),
		RequestID: requestID,
		From:      from,
		Text:      text,
		Ts:        ts,
	}
	if s.conversations == nil {
		s.conversations = map[string][]ChatMessage{}
	}
	list := append(s.conversations[requestID], msg)
	if len(list) > maxConversationLen {
		list = list[len(list)-maxConversationLen:]
	}
	s.conversations[requestID] = list
	s.mirror.Save(ctx, mirror.SlotConversations, s.conversations)
	return msg
}

// --- weekly plans (per-request dynamic slots) ---

// SaveWeeklyPlan persists a request's weekly plan under its own slot.
func (s *Store) SaveWeeklyPlan(ctx context.Context, requestID string, wp any) {
	s.mirror.Save(ctx, mirror.WeeklyPlanSlot(requestID), wp)
}

// LoadWeeklyPlan reads a request's weekly plan into v, reporting whether a
// stored plan existed.
func (s *Store) LoadWeeklyPlan(ctx context.Context, requestID string, v any) bool {
	return s.mirror.Load(ctx, mirror.WeeklyPlanSlot(requestID), v)
}

// --- helpers ---

func cloneDietPlan(p *DietPlan) *DietPlan {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Meals = make([]Meal, len(p.Meals))
	for i, m := range p.Meals {
		cp.Meals[i] = m
		cp.Meals[i].Properties = append([]string(nil), m.Properties...)
	}
	return &cp
}

func cloneRequests(reqs []ConsultRequest) []ConsultRequest {
	out := make([]ConsultRequest, len(reqs))
	for i, r := range reqs {
		out[i] = r
		out[i].Plan = append([]PlanRow(nil), r.Plan...)
		if r.PatientProfile != nil {
			pp := *r.PatientProfile
			out[i].PatientProfile = &pp
		}
	}
	return out
}
