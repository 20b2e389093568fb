package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/application"
	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	"github.com/oksasatya/go-archive-admin/internal/interface/apierr"
	"github.com/oksasatya/go-archive-admin/pkg/helpers"
	"github.com/oksasatya/go-archive-admin/pkg/response"
	"github.com/oksasatya/go-archive-admin/pkg/validation"
)

type AccountHandler struct {
	Svc    *application.AccountService
	Logger logrus.FieldLogger
}

func NewAccountHandler(svc *application.AccountService, logger logrus.FieldLogger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type createAccountRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,pwd"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Role      string `json:"role" binding:"omitempty,role"`
}

// updateAccountRequest keeps absent and null apart; none of these fields accept null.
type updateAccountRequest struct {
	Email     helpers.Optional[string] `json:"email"`
	FirstName helpers.Optional[string] `json:"first_name"`
	LastName  helpers.Optional[string] `json:"last_name"`
	Role      helpers.Optional[string] `json:"role"`
	IsActive  helpers.Optional[bool]   `json:"is_active"`
}

// accountPatchRules validates the present values of an update.
type accountPatchRules struct {
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Role      *string `json:"role" binding:"omitempty,role"`
}

func (r updateAccountRequest) patch() (entity.AccountPatch, map[string]string) {
	nulls := map[string]string{}
	for name, set := range map[string]bool{
		"email":      r.Email.Set && r.Email.Null,
		"first_name": r.FirstName.Set && r.FirstName.Null,
		"last_name":  r.LastName.Set && r.LastName.Null,
		"role":       r.Role.Set && r.Role.Null,
		"is_active":  r.IsActive.Set && r.IsActive.Null,
	} {
		if set {
			nulls[name] = "must not be null"
		}
	}
	if len(nulls) > 0 {
		return entity.AccountPatch{}, nulls
	}

	rules := accountPatchRules{
		Email:     r.Email.Ptr(),
		FirstName: r.FirstName.Ptr(),
		LastName:  r.LastName.Ptr(),
		Role:      r.Role.Ptr(),
	}
	if err := binding.Validator.ValidateStruct(rules); err != nil {
		return entity.AccountPatch{}, validation.ToDetails(err)
	}

	p := entity.AccountPatch{
		Email:     rules.Email,
		FirstName: rules.FirstName,
		LastName:  rules.LastName,
		IsActive:  r.IsActive.Ptr(),
	}
	if rules.Role != nil {
		role := entity.Role(*rules.Role)
		p.Role = &role
	}
	return p, nil
}

// Create POST /api/users
func (h *AccountHandler) Create(c *gin.Context) {
	var req createAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	acc, err := h.Svc.Create(c.Request.Context(), application.CreateAccountInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      entity.Role(req.Role),
	})
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.Created(c, acc, "account created")
}

// List GET /api/users
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.Success(c, 0, accounts, "accounts", map[string]any{"total": len(accounts)})
}

// Get GET /api/users/:id
func (h *AccountHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	acc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.OK(c, acc, "account")
}

// Update PATCH /api/users/:id
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	p, details := req.patch()
	if details != nil {
		apierr.Validation(c, "invalid payload", details)
		return
	}
	acc, err := h.Svc.Update(c.Request.Context(), id, p)
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.OK(c, acc, "account updated")
}

// Deactivate DELETE /api/users/:id. Accounts are never erased.
func (h *AccountHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	acc, err := h.Svc.Deactivate(c.Request.Context(), id)
	if err != nil {
		apierr.Write(c, h.Logger, err)
		return
	}
	response.OK(c, acc, "account deactivated")
}
