package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayurbalance/wellness-platform/internal/common"
	"github.com/ayurbalance/wellness-platform/internal/httpapi/handlers"
	"github.com/ayurbalance/wellness-platform/internal/httpapi/middleware"
)

func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.Use(middleware.RequestID())

	r.GET("/ping", h.Ping)
	r.GET("/state", h.State)

	// session
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/me", h.Me)

	// progress + diet plan
	r.GET("/progress", h.GetProgress)
	r.POST("/progress/water", h.LogWater)
	r.POST("/progress/meals/taken", h.MarkMealTaken)
	r.GET("/plan", h.GetDietPlan)
	r.POST("/plan/generate", h.GeneratePlan)
	r.POST("/plan/weekly", h.GenerateCuisineWeek)

	// consultations
	r.GET("/doctors", h.ListDoctors)
	r.GET("/requests", h.ListRequests)
	r.POST("/requests", h.CreateRequest)
	r.POST("/requests/:id/accept", h.AcceptRequest)
	r.POST("/requests/:id/reject", h.RejectRequest)
	r.PUT("/requests/:id/plan", h.SavePlan)
	r.GET("/requests/:id/weekly-plan", h.GetWeeklyPlan)
	r.POST("/requests/:id/weekly-plan", h.GenerateWeeklyPlan)
	r.POST("/patients", h.AddPatient)

	// notifications
	r.GET("/notifications", h.ListNotifications)
	r.POST("/notifications/read-all", h.MarkAllRead)
	r.POST("/notifications/:id/read", h.MarkNotificationRead)

	// chat
	r.GET("/requests/:id/messages", h.ListMessages)
	r.POST("/requests/:id/messages", h.SendMessage)

	// barcode
	r.POST("/scan", h.Scan)

	return r
}
