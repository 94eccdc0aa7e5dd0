package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ayurbalance/wellness-platform/internal/common"
)

func (h *Handler) ListNotifications(c *gin.Context) {
	common.OK(c, gin.H{"notifications": h.Store.Notifications()})
}

// MarkAllRead clears the collection outright, matching the store contract.
func (h *Handler) MarkAllRead(c *gin.Context) {
	h.Store.MarkAllRead(c.Request.Context())
	common.OK(c, nil)
}

// MarkNotificationRead removes the entry; unknown ids are a silent no-op.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	h.Store.MarkNotificationRead(c.Request.Context(), c.Param("id"))
	common.OK(c, nil)
}
