package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayurbalance/wellness-platform/internal/auth"
	"github.com/ayurbalance/wellness-platform/internal/common"
	"github.com/ayurbalance/wellness-platform/internal/state"
)

type signupReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
	Dosha    string `json:"dosha"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	role := state.Role(req.Role)
	if role != state.RoleDoctor {
		role = state.RoleUser
	}

	if err := h.Credentials.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		common.Fail(c, http.StatusInternalServerError, 20002, "failed to hash password")
		return
	}

	user := &state.User{
		ID:    common.NewID("u"),
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
		Dosha: state.Dosha(req.Dosha),
	}
	h.Store.SetCurrentUser(c.Request.Context(), user)

	token, err := auth.SignJWT(user.ID, h.Cfg.JWTSecret, 24*time.Hour)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20003, "failed to sign token")
		return
	}

	common.OK(c, gin.H{"user": user, "token": token})
}

type loginReq struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
	Dosha    string `json:"dosha"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if !h.Credentials.Verify(c.Request.Context(), req.Email, req.Password) {
		common.Fail(c, http.StatusUnauthorized, 40102, "invalid credentials")
		return
	}
	role := state.Role(req.Role)
	if role != state.RoleDoctor {
		role = state.RoleUser
	}
	name := req.Name
	if name == "" {
		name = strings.Split(req.Email, "@")[0]
	}

	user := &state.User{
		ID:    common.NewID("u"),
		Name:  name,
		Email: req.Email,
		Role:  role,
		Dosha: state.Dosha(req.Dosha),
	}
	h.Store.SetCurrentUser(c.Request.Context(), user)

	token, err := auth.SignJWT(user.ID, h.Cfg.JWTSecret, 24*time.Hour)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20003, "failed to sign token")
		return
	}
	common.OK(c, gin.H{"user": user, "token": token})
}

func (h *Handler) Logout(c *gin.Context) {
	h.Store.SetCurrentUser(c.Request.Context(), nil)
	common.OK(c, nil)
}

// Me echoes the session user. The bearer token, when present, is validated
// for shape but grants nothing: identity lives in the current-user slot.
func (h *Handler) Me(c *gin.Context) {
	if header := c.GetHeader("Authorization"); header != "" {
		raw := strings.TrimPrefix(header, "Bearer ")
		if _, err := auth.ParseJWT(raw, h.Cfg.JWTSecret); err != nil {
			common.Fail(c, http.StatusUnauthorized, 40101, "invalid token")
			return
		}
	}
	user := h.Store.CurrentUser()
	if user == nil {
		common.Fail(c, http.StatusNotFound, 40403, "no active session")
		return
	}
	common.OK(c, gin.H{"user": user})
}
