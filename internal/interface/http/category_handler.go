package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/application"
	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	"github.com/oksasatya/go-archive-admin/internal/interface/apierr"
	"github.com/oksasatya/go-archive-admin/pkg/helpers"
	"github.com/oksasatya/go-archive-admin/pkg/response"
)

type CategoryHandler struct {
	Svc    *application.CategoryService
	Logger logrus.FieldLogger
}

func NewCategoryHandler(svc *application.CategoryService, logger logrus.FieldLogger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

type createCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
}

type updateCategoryRequest struct {
	Name        helpers.Optional[string] `json:"name"`
	Description helpers.Optional[string] `json:"description"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.Svc.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.Created(c, cat, "category created")
}

func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.Svc.List(c.Request.Context())
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.OK(c, cats, "categories")
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cat, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.OK(c, cat, "category")
}

// Update PATCH /api/categories/:id. A null description clears it; a null name is rejected.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name.Set && req.Name.Null {
		apierr.Validation(c, "invalid payload", map[string]string{"name": "must not be null"})
		return
	}
	if req.Name.Present() && len(req.Name.Value) > 100 {
		apierr.Validation(c, "invalid payload", map[string]string{"name": "must be at most 100 characters long"})
		return
	}
	cat, err := h.Svc.Update(c.Request.Context(), id, entity.CategoryPatch{
		Name:           req.Name.Ptr(),
		Description:    req.Description.Ptr(),
		DescriptionSet: req.Description.Set,
	})
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.OK(c, cat, "category updated")
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.OK(c, map[string]any{"deleted": true}, "category deleted")
}
