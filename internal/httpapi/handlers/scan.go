package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ayurbalance/wellness-platform/internal/common"
	"github.com/ayurbalance/wellness-platform/internal/scanner"
)

type scanReq struct {
	Code string `json:"code"`
}

// Scan resolves a barcode against the fixed product table. An empty or
// unknown code still yields the stock result.
func (h *Handler) Scan(c *gin.Context) {
	var req scanReq
	_ = c.ShouldBindJSON(&req)
	common.OK(c, gin.H{"product": scanner.Lookup(req.Code)})
}
