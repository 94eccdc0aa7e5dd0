package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ayurbalance/wellness-platform/internal/auth"
	"github.com/ayurbalance/wellness-platform/internal/common"
	"github.com/ayurbalance/wellness-platform/internal/config"
	"github.com/ayurbalance/wellness-platform/internal/consult"
	"github.com/ayurbalance/wellness-platform/internal/events"
	"github.com/ayurbalance/wellness-platform/internal/planner"
	"github.com/ayurbalance/wellness-platform/internal/state"
)

type Handler struct {
	Store       *state.Store
	Cfg         config.Config
	Consult     *consult.Service
	Planner     *planner.Generator
	Credentials *auth.Credentials
	Events      *events.Publisher // nil when RabbitMQ is unavailable
}

func NewHandler(store *state.Store, cfg config.Config, svc *consult.Service, gen *planner.Generator, creds *auth.Credentials, pub *events.Publisher) *Handler {
	return &Handler{Store: store, Cfg: cfg, Consult: svc, Planner: gen, Credentials: creds, Events: pub}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true})
}

// State returns the dashboard snapshot in one round trip.
func (h *Handler) State(c *gin.Context) {
	common.OK(c, gin.H{
		"current_user":  h.Store.CurrentUser(),
		"progress":      h.Store.Progress(),
		"diet_plan":     h.Store.DietPlan(),
		"doctors":       h.Store.Doctors(),
		"requests":      h.Store.Requests(),
		"notifications": h.Store.Notifications(),
	})
}
