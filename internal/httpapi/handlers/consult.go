package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayurbalance/wellness-platform/internal/common"
	"github.com/ayurbalance/wellness-platform/internal/consult"
	"github.com/ayurbalance/wellness-platform/internal/state"
)

func (h *Handler) ListRequests(c *gin.Context) {
	common.OK(c, gin.H{"requests": h.Store.Requests()})
}

type createRequestReq struct {
	DoctorID string `json:"doctor_id" binding:"required"`
}

// CreateRequest files a pending consultation for the session user.
func (h *Handler) CreateRequest(c *gin.Context) {
	var req createRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	userID := "me"
	var patientName string
	var dosha state.Dosha
	if u := h.Store.CurrentUser(); u != nil {
		userID = u.ID
		patientName = u.Name
		dosha = u.Dosha
	}
	created := h.Consult.Request(c.Request.Context(), userID, req.DoctorID, patientName, dosha)
	common.OK(c, gin.H{"request": created})
}

func (h *Handler) AcceptRequest(c *gin.Context) {
	h.transition(c, h.Consult.Accept)
}

func (h *Handler) RejectRequest(c *gin.Context) {
	h.transition(c, h.Consult.Reject)
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, id string) error) {
	id := c.Param("id")
	if err := fn(c.Request.Context(), id); err != nil {
		if errors.Is(err, consult.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "request not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	req, err := h.Consult.Get(id)
	if err != nil {
		common.Fail(c, http.StatusNotFound, 40402, "request not found")
		return
	}
	common.OK(c, gin.H{"request": req})
}

type addPatientReq struct {
	Name         string `json:"name" binding:"required"`
	DoctorID     string `json:"doctor_id"`
	Dosha        string `json:"dosha"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	HeightCm     int    `json:"height_cm"`
	WeightKg     int    `json:"weight_kg"`
	Allergies    string `json:"allergies"`
	Conditions   string `json:"conditions"`
	Medications  string `json:"medications"`
	Habits       string `json:"habits"`
	SleepPattern string `json:"sleep_pattern"`
	Digestion    string `json:"digestion"`
	Notes        string `json:"notes"`
}

// AddPatient enrolls a patient directly under a doctor; the request is
// created already accepted.
func (h *Handler) AddPatient(c *gin.Context) {
	var req addPatientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	doctorID := req.DoctorID
	if doctorID == "" {
		doctorID = "d1"
	}
	created := h.Consult.AddPatient(c.Request.Context(), doctorID, consult.AddPatientInput{
		Name:  req.Name,
		Dosha: state.Dosha(req.Dosha),
		Profile: &state.PatientProfile{
			Age:          req.Age,
			Gender:       req.Gender,
			HeightCm:     req.HeightCm,
			WeightKg:     req.WeightKg,
			Allergies:    req.Allergies,
			Conditions:   req.Conditions,
			Medications:  req.Medications,
			Habits:       req.Habits,
			SleepPattern: req.SleepPattern,
			Digestion:    req.Digestion,
			Notes:        req.Notes,
		},
	})
	common.OK(c, gin.H{"request": created})
}

type savePlanReq struct {
	Rows []state.PlanRow `json:"rows" binding:"required"`
}

func (h *Handler) SavePlan(c *gin.Context) {
	var req savePlanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	id := c.Param("id")
	if err := h.Consult.SavePlan(c.Request.Context(), id, req.Rows); err != nil {
		if errors.Is(err, consult.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "request not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	req2, _ := h.Consult.Get(id)
	common.OK(c, gin.H{"request": req2})
}

func (h *Handler) GenerateWeeklyPlan(c *gin.Context) {
	wp, err := h.Consult.GenerateWeekly(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, consult.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "request not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	common.OK(c, wp)
}

func (h *Handler) GetWeeklyPlan(c *gin.Context) {
	wp, err := h.Consult.WeeklyPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, consult.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "request not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	common.OK(c, wp)
}
