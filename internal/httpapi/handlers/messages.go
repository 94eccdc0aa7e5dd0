package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayurbalance/wellness-platform/internal/common"
	"github.com/ayurbalance/wellness-platform/internal/consult"
	"github.com/ayurbalance/wellness-platform/internal/events"
	"github.com/ayurbalance/wellness-platform/internal/state"
)

func (h *Handler) ListMessages(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Consult.Get(id); err != nil {
		if errors.Is(err, consult.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "request not found")
			return
		}
	}
	common.OK(c, gin.H{"messages": h.Store.Conversation(id)})
}

type sendMessageReq struct {
	From string `json:"from" binding:"required"`
	Text string `json:"text" binding:"required"`
	Ts   int64  `json:"ts"`
}

// SendMessage appends to the request's conversation. Patient messages also
// enqueue an assistant reply job; losing that job loses only the auto-reply.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	from := state.ChatSender(req.From)
	switch from {
	case state.SenderDoctor, state.SenderPatient, state.SenderSystem:
	default:
		common.Fail(c, http.StatusBadRequest, 10002, "from must be doctor, patient or system")
		return
	}
	id := c.Param("id")
	msg := h.Store.AddMessage(c.Request.Context(), id, from, req.Text, req.Ts)

	if from == state.SenderPatient && h.Events != nil {
		job := events.ReplyJob{RequestID: id, Text: req.Text}
		if err := h.Events.PublishReply(c.Request.Context(), job); err != nil {
			log.Printf("publish reply job request=%s err=%v", id, err)
		}
	}

	common.OK(c, gin.H{"message": msg})
}
