package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayurbalance/wellness-platform/internal/common"
	"github.com/ayurbalance/wellness-platform/internal/planner"
	"github.com/ayurbalance/wellness-platform/internal/state"
)

func (h *Handler) GetProgress(c *gin.Context) {
	common.OK(c, h.Store.Progress())
}

type waterReq struct {
	DeltaMl int `json:"delta_ml" binding:"required"`
}

func (h *Handler) LogWater(c *gin.Context) {
	var req waterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	p := h.Store.UpdateWater(c.Request.Context(), req.DeltaMl)
	common.OK(c, p)
}

func (h *Handler) MarkMealTaken(c *gin.Context) {
	p := h.Store.MarkMealTaken(c.Request.Context())
	common.OK(c, p)
}

func (h *Handler) GetDietPlan(c *gin.Context) {
	plan := h.Store.DietPlan()
	if plan == nil {
		common.Fail(c, http.StatusNotFound, 40404, "no active plan")
		return
	}
	common.OK(c, plan)
}

type generatePlanReq struct {
	Date  string       `json:"date"`
	Notes string       `json:"notes"`
	Meals []state.Meal `json:"meals"`
}

func (h *Handler) GeneratePlan(c *gin.Context) {
	var req generatePlanReq
	_ = c.ShouldBindJSON(&req) // allow empty {}

	var overrides *state.PlanOverrides
	if req.Date != "" || req.Notes != "" || len(req.Meals) > 0 {
		overrides = &state.PlanOverrides{Date: req.Date, Notes: req.Notes, Meals: req.Meals}
	}
	plan := h.Store.GenerateMockPlan(c.Request.Context(), overrides)
	common.OK(c, plan)
}

type weeklyPlanReq struct {
	Cuisine      string   `json:"cuisine"`
	Vegetarian   *bool    `json:"vegetarian"`
	Restrictions []string `json:"restrictions"`
	Activity     string   `json:"activity"`
}

// GenerateCuisineWeek builds a 7-day cuisine plan plus the water/calorie
// recommendation for the chosen activity level.
func (h *Handler) GenerateCuisineWeek(c *gin.Context) {
	var req weeklyPlanReq
	_ = c.ShouldBindJSON(&req) // allow empty {}

	cuisine := req.Cuisine
	if cuisine == "" {
		cuisine = "Indian"
	}
	veg := true
	if req.Vegetarian != nil {
		veg = *req.Vegetarian
	}
	days := h.Planner.CuisineWeek(cuisine, veg, req.Restrictions)
	rec := planner.Recommend(planner.Activity(req.Activity))
	common.OK(c, gin.H{"days": days, "recommendation": rec})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	common.OK(c, gin.H{"doctors": h.Store.Doctors()})
}
