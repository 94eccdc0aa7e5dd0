// Package consult layers the consultation request lifecycle over the state
// store. All transitions are plain transforms over the requests collection;
// the store enforces no transition table, so the permissive semantics live
// here by convention.
package consult

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayurbalance/wellness-platform/internal/common"
	"github.com/ayurbalance/wellness-platform/internal/planner"
	"github.com/ayurbalance/wellness-platform/internal/state"
)

var ErrNotFound = errors.New("consult: request not found")

type Service struct {
	store *state.Store
	gen   *planner.Generator

	now   func() time.Time
	newID func(prefix string) string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDFunc(fn func(prefix string) string) Option {
	return func(s *Service) { s.newID = fn }
}

func NewService(store *state.Store, gen *planner.Generator, opts ...Option) *Service {
	s := &Service{store: store, gen: gen, now: time.Now, newID: common.NewID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request creates a pending consultation from a patient to a doctor and
// notifies the patient that the request went out.
func (s *Service) Request(ctx context.Context, userID, doctorID, patientName string, dosha state.Dosha) state.ConsultRequest {
	req := state.ConsultRequest{
		ID:           s.newID("req"),
		UserID:       userID,
		DoctorID:     doctorID,
		Status:       state.StatusPending,
		CreatedAt:    s.now(),
		PatientName:  patientName,
		PatientDosha: dosha,
	}
	s.store.UpdateRequests(ctx, func(reqs []state.ConsultRequest) []state.ConsultRequest {
		return append(reqs, req)
	})
	doctorName := doctorID
	for _, d := range s.store.Doctors() {
		if d.ID == doctorID {
			doctorName = d.Name
			break
		}
	}
	s.store.AddNotification(ctx, state.NotifyDoctor, "Consultation requested",
		fmt.Sprintf("We’ll connect you with %s shortly.", doctorName))
	return req
}

// AddPatientInput is the doctor-side direct enrollment form.
type AddPatientInput struct {
	Name    string
	Dosha   state.Dosha
	Profile *state.PatientProfile
}

// AddPatient enrolls a patient directly: the request is born accepted with
// the starter plan attached, bypassing the pending phase.
func (s *Service) AddPatient(ctx context.Context, doctorID string, in AddPatientInput) state.ConsultRequest {
	req := state.ConsultRequest{
		ID:             s.newID("req"),
		UserID:         s.newID("u"),
		DoctorID:       doctorID,
		Status:         state.StatusAccepted,
		CreatedAt:      s.now(),
		PatientName:    in.Name,
		PatientDosha:   in.Dosha,
		Plan:           state.DefaultPlanRows(),
		PatientProfile: in.Profile,
	}
	s.store.UpdateRequests(ctx, func(reqs []state.ConsultRequest) []state.ConsultRequest {
		return append([]state.ConsultRequest{req}, reqs...)
	})
	return req
}

// Accept marks the request accepted. No guard prevents accepting an already
// rejected request; only the matching entry changes.
func (s *Service) Accept(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, state.StatusAccepted)
}

// Reject marks the request rejected.
func (s *Service) Reject(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, state.StatusRejected)
}

func (s *Service) setStatus(ctx context.Context, id string, status state.RequestStatus) error {
	if _, ok := s.find(id); !ok {
		return ErrNotFound
	}
	s.store.UpdateRequests(ctx, func(reqs []state.ConsultRequest) []state.ConsultRequest {
		for i := range reqs {
			if reqs[i].ID == id {
				reqs[i].Status = status
			}
		}
		return reqs
	})
	return nil
}

// SavePlan attaches doctor-authored plan rows to the request and drops a
// system summary line into its conversation.
func (s *Service) SavePlan(ctx context.Context, id string, rows []state.PlanRow) error {
	if _, ok := s.find(id); !ok {
		return ErrNotFound
	}
	s.store.UpdateRequests(ctx, func(reqs []state.ConsultRequest) []state.ConsultRequest {
		for i := range reqs {
			if reqs[i].ID == id {
				reqs[i].Plan = append([]state.PlanRow(nil), rows...)
			}
		}
		return reqs
	})
	var kcal, water int
	for _, r := range rows {
		kcal += r.Calories
		water += r.WaterMl
	}
	s.store.AddMessage(ctx, id, state.SenderSystem,
		fmt.Sprintf("Diet plan updated • %d items • %d kcal • %d ml water.", len(rows), kcal, water), 0)
	return nil
}

// GenerateWeekly builds a fresh 7-day plan for the patient, persists it under
// the request's weekly slot, and mirrors day one into the request plan.
// Regenerating for a rejected request re-accepts it.
func (s *Service) GenerateWeekly(ctx context.Context, id string) (planner.WeeklyPlan, error) {
	if _, ok := s.find(id); !ok {
		return planner.WeeklyPlan{}, ErrNotFound
	}
	base := s.store.GenerateMockPlan(ctx, nil)
	wp := s.gen.ExpandWeek(base)
	s.store.SaveWeeklyPlan(ctx, id, wp)
	s.store.UpdateRequests(ctx, func(reqs []state.ConsultRequest) []state.ConsultRequest {
		for i := range reqs {
			if reqs[i].ID != id {
				continue
			}
			if reqs[i].Status == state.StatusRejected {
				reqs[i].Status = state.StatusAccepted
			}
			if len(wp.Days) > 0 {
				reqs[i].Plan = planner.PlanRows(wp.Days[0])
			}
		}
		return reqs
	})
	return wp, nil
}

// WeeklyPlan returns the stored weekly plan, generating one on first access.
func (s *Service) WeeklyPlan(ctx context.Context, id string) (planner.WeeklyPlan, error) {
	if _, ok := s.find(id); !ok {
		return planner.WeeklyPlan{}, ErrNotFound
	}
	var wp planner.WeeklyPlan
	if s.store.LoadWeeklyPlan(ctx, id, &wp) && len(wp.Days) > 0 {
		return wp, nil
	}
	return s.GenerateWeekly(ctx, id)
}

// Get returns the request by id.
func (s *Service) Get(id string) (state.ConsultRequest, error) {
	req, ok := s.find(id)
	if !ok {
		return state.ConsultRequest{}, ErrNotFound
	}
	return req, nil
}

func (s *Service) find(id string) (state.ConsultRequest, bool) {
	for _, r := range s.store.Requests() {
		if r.ID == id {
			return r, true
		}
	}
	return state.ConsultRequest{}, false
}
