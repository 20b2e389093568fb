package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/application"
	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	"github.com/oksasatya/go-archive-admin/internal/interface/apierr"
	"github.com/oksasatya/go-archive-admin/internal/interface/middleware"
	"github.com/oksasatya/go-archive-admin/pkg/response"
)

type AccessLogHandler struct {
	Svc    *application.AccessLogService
	Logger logrus.FieldLogger
}

func NewAccessLogHandler(svc *application.AccessLogService, logger logrus.FieldLogger) *AccessLogHandler {
	return &AccessLogHandler{Svc: svc, Logger: logger}
}

type recordAccessRequest struct {
	ArchiveID int64  `json:"archive_id" binding:"required,gt=0"`
	Action    string `json:"action" binding:"required,action"`
}

type accessLogQuery struct {
	UserID    *int64 `form:"user_id" binding:"omitempty,gt=0"`
	ArchiveID *int64 `form:"archive_id" binding:"omitempty,gt=0"`
	Action    string `form:"action" binding:"omitempty,action"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset    int    `form:"offset" binding:"omitempty,min=0"`
}

// filter parses the query; dates accept RFC 3339 or YYYY-MM-DD.
func (q accessLogQuery) filter() (entity.AccessLogFilter, map[string]string) {
	f := entity.AccessLogFilter{
		UserID:    q.UserID,
		ArchiveID: q.ArchiveID,
		Action:    entity.Action(q.Action),
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	var err error
	if f.StartDate, err = parseDate(q.StartDate); err != nil {
		return f, map[string]string{"start_date": "must be RFC 3339 or YYYY-MM-DD"}
	}
	if f.EndDate, err = parseDate(q.EndDate); err != nil {
		return f, map[string]string{"end_date": "must be RFC 3339 or YYYY-MM-DD"}
	}
	return f, nil
}

// Record POST /api/access-logs. The user is the caller; address and agent come from the request.
func (h *AccessLogHandler) Record(c *gin.Context) {
	var req recordAccessRequest
	if !bindJSON(c, &req) {
		return
	}
	ua := c.GetHeader("User-Agent")
	l, err := h.Svc.Record(c.Request.Context(), application.RecordAccessInput{
		UserID:    middleware.CurrentAccount(c).ID,
		ArchiveID: req.ArchiveID,
		Action:    entity.Action(req.Action),
		IPAddress: strPtr(middleware.ClientIP(c)),
		UserAgent: strPtr(ua),
	})
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.Created(c, l, "access recorded")
}

// List GET /api/access-logs, newest first.
func (h *AccessLogHandler) List(c *gin.Context) {
	var q accessLogQuery
	if !bindQuery(c, &q) {
		return
	}
	f, details := q.filter()
	if details != nil {
		apierr.Validation(c, "invalid query", details)
		return
	}
	h.list(c, f)
}

// ByUser GET /api/users/:id/access-logs
func (h *AccessLogHandler) ByUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.scoped(c, func(f *entity.AccessLogFilter) { f.UserID = &id })
}

// ByArchive GET /api/archives/:id/access-logs
func (h *AccessLogHandler) ByArchive(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.scoped(c, func(f *entity.AccessLogFilter) { f.ArchiveID = &id })
}

func (h *AccessLogHandler) scoped(c *gin.Context, scope func(*entity.AccessLogFilter)) {
	var q accessLogQuery
	if !bindQuery(c, &q) {
		return
	}
	f, details := q.filter()
	if details != nil {
		apierr.Validation(c, "invalid query", details)
		return
	}
	scope(&f)
	h.list(c, f)
}

func (h *AccessLogHandler) list(c *gin.Context, f entity.AccessLogFilter) {
	out, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.Success(c, 0, out, "access logs", map[string]any{"limit": f.Limit, "offset": f.Offset})
}
