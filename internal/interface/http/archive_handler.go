package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/application"
	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	"github.com/oksasatya/go-archive-admin/internal/interface/apierr"
	"github.com/oksasatya/go-archive-admin/internal/interface/middleware"
	"github.com/oksasatya/go-archive-admin/pkg/helpers"
	"github.com/oksasatya/go-archive-admin/pkg/response"
)

// DefaultMaxUpload bounds multipart uploads.
const DefaultMaxUpload int64 = 50 << 20

type ArchiveHandler struct {
	Svc       *application.ArchiveService
	Logger    logrus.FieldLogger
	MaxUpload int64
}

func NewArchiveHandler(svc *application.ArchiveService, logger logrus.FieldLogger) *ArchiveHandler {
	return &ArchiveHandler{Svc: svc, Logger: logger, MaxUpload: DefaultMaxUpload}
}

type createArchiveRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
	FileName    string  `json:"file_name" binding:"required,max=255"`
	FilePath    string  `json:"file_path" binding:"required,max=500"`
	FileType    string  `json:"file_type" binding:"omitempty,filetype"`
	FileSize    int64   `json:"file_size" binding:"required,gt=0"`
	CategoryID  *int64  `json:"category_id" binding:"omitempty,gt=0"`
}

type updateArchiveRequest struct {
	Title       helpers.Optional[string] `json:"title"`
	Description helpers.Optional[string] `json:"description"`
	CategoryID  helpers.Optional[int64]  `json:"category_id"`
}

type searchQuery struct {
	Query      string `form:"query"`
	CategoryID *int64 `form:"category_id" binding:"omitempty,gt=0"`
	FileType   string `form:"file_type" binding:"omitempty,filetype"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset     int    `form:"offset" binding:"omitempty,min=0"`
}

// Create POST /api/archives. The uploader is the authenticated account.
func (h *ArchiveHandler) Create(c *gin.Context) {
	var req createArchiveRequest
	if !bindJSON(c, &req) {
		return
	}
	actor := middleware.CurrentAccount(c)
	a, err := h.Svc.Create(c.Request.Context(), actor.ID, application.CreateArchiveInput{
		Title:       req.Title,
		Description: req.Description,
		FileName:    req.FileName,
		FilePath:    req.FilePath,
		FileType:    entity.FileType(req.FileType),
		FileSize:    req.FileSize,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.Created(c, a, "archive created")
}

// Upload POST /api/archives/upload (multipart: file, title, description, category_id)
func (h *ArchiveHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUpload)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, http.StatusRequestEntityTooLarge, string(application.CodeValidation), "file too large", nil)
			return
		}
		apierr.Validation(c, "invalid upload", map[string]string{"file": "is required"})
		return
	}

	var categoryID *int64
	if v := strings.TrimSpace(c.PostForm("category_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			apierr.Validation(c, "invalid upload", map[string]string{"category_id": "must be a positive integer"})
			return
		}
		categoryID = &id
	}

	f, err := fh.Open()
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	actor := middleware.CurrentAccount(c)
	a, err := h.Svc.Upload(c.Request.Context(), actor.ID, application.UploadArchiveInput{
		Title:       c.PostForm("title"),
		Description: strPtr(c.PostForm("description")),
		CategoryID:  categoryID,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.Created(c, a, "archive uploaded")
}

func (h *ArchiveHandler) List(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context())
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.OK(c, out, "archives")
}

// Search GET /api/archives/search
func (h *ArchiveHandler) Search(c *gin.Context) {
	var q searchQuery
	if !bindQuery(c, &q) {
		return
	}
	f := entity.SearchFilter{
		Query:      strings.TrimSpace(q.Query),
		CategoryID: q.CategoryID,
		FileType:   entity.FileType(q.FileType),
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	out, err := h.Svc.Search(c.Request.Context(), f)
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.Success(c, 0, out, "archives", map[string]any{"limit": f.Limit, "offset": f.Offset})
}

func (h *ArchiveHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.OK(c, a, "archive")
}

// Update PATCH /api/archives/:id. Null clears description or category; a null title is rejected.
func (h *ArchiveHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateArchiveRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Title.Set && req.Title.Null {
		apierr.Validation(c, "invalid payload", map[string]string{"title": "must not be null"})
		return
	}
	if req.CategoryID.Present() && req.CategoryID.Value <= 0 {
		apierr.Validation(c, "invalid payload", map[string]string{"category_id": "must be a positive integer"})
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), middleware.CurrentAccount(c), id, entity.ArchivePatch{
		Title:          req.Title.Ptr(),
		Description:    req.Description.Ptr(),
		DescriptionSet: req.Description.Set,
		CategoryID:     req.CategoryID.Ptr(),
		CategoryIDSet:  req.CategoryID.Set,
	})
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.OK(c, a, "archive updated")
}

// Delete DELETE /api/archives/:id
func (h *ArchiveHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentAccount(c), id); err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.OK(c, map[string]any{"deleted": true}, "archive deleted")
}
