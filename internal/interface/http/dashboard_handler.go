package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/application"
	"github.com/oksasatya/go-archive-admin/internal/interface/apierr"
	"github.com/oksasatya/go-archive-admin/pkg/response"
)

type DashboardHandler struct {
	Svc    *application.DashboardService
	Logger logrus.FieldLogger
}

func NewDashboardHandler(svc *application.DashboardService, logger logrus.FieldLogger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

// Stats GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	s, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.OK(c, s, "dashboard stats")
}
