package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/captable/api/http/presenter"
	"github.com/artem13815/captable/pkg/shareholder"
)

// ShareholderHandler serves the admin-only shareholder CRUD surface.
type ShareholderHandler struct {
	uc shareholder.UseCase
}

func NewShareholderHandler(uc shareholder.UseCase) *ShareholderHandler {
	return &ShareholderHandler{uc: uc}
}

type profileInput struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type createShareholderRequest struct {
	Email              string        `json:"email"`
	Password           string        `json:"password"`
	FullName           string        `json:"full_name"`
	ShareholderProfile *profileInput `json:"shareholder_profile"`
}

// List returns all shareholders with profile and total shares.
// @Summary List shareholders
// @Tags    shareholders
// @Produce json
// @Param   skip query int false "rows to skip"
// @Param   limit query int false "max rows"
// @Security BearerAuth
// @Success 200 {array} shareholderResponse
// @Router  /shareholders [get]
func (h *ShareholderHandler) List(c *fiber.Ctx) error {
	skip, limit := parseSkipLimit(c, 100)
	list, err := h.uc.List(c.Context(), limit, skip)
	if err != nil {
		return presenter.FromError(c, err)
	}
	out := make([]shareholderResponse, 0, len(list))
	for _, ws := range list {
		out = append(out, newShareholderResponse(ws))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Create registers a new shareholder account with an optional profile.
// @Summary Create shareholder
// @Tags    shareholders
// @Accept  json
// @Produce json
// @Param   input body createShareholderRequest true "shareholder payload"
// @Security BearerAuth
// @Success 201 {object} shareholderResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /shareholders [post]
func (h *ShareholderHandler) Create(c *fiber.Ctx) error {
	var req createShareholderRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	in := shareholder.CreateInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}
	if req.ShareholderProfile != nil {
		in.Profile = &shareholder.ProfileInput{
			Address: req.ShareholderProfile.Address,
			Phone:   req.ShareholderProfile.Phone,
		}
	}
	ws, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, newShareholderResponse(ws))
}

// GetByID returns one shareholder.
// @Summary Get shareholder
// @Tags    shareholders
// @Produce json
// @Param   id path string true "shareholder id (UUID)"
// @Security BearerAuth
// @Success 200 {object} shareholderResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /shareholders/{id} [get]
func (h *ShareholderHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	ws, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, newShareholderResponse(ws))
}

type updateShareholderRequest struct {
	Email              *string       `json:"email"`
	FullName           *string       `json:"full_name"`
	IsActive           *bool         `json:"is_active"`
	IsDisabled         *bool         `json:"is_disabled"`
	ShareholderProfile *profileInput `json:"shareholder_profile"`
}

// Update applies partial changes to a shareholder and its profile.
// @Summary Update shareholder
// @Tags    shareholders
// @Accept  json
// @Produce json
// @Param   id path string true "shareholder id (UUID)"
// @Param   input body updateShareholderRequest true "fields to update"
// @Security BearerAuth
// @Success 200 {object} shareholderResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /shareholders/{id} [put]
func (h *ShareholderHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req updateShareholderRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	in := shareholder.UpdateInput{
		Email:      req.Email,
		FullName:   req.FullName,
		IsActive:   req.IsActive,
		IsDisabled: req.IsDisabled,
	}
	if req.ShareholderProfile != nil {
		in.Profile = &shareholder.ProfileInput{
			Address: req.ShareholderProfile.Address,
			Phone:   req.ShareholderProfile.Phone,
		}
	}
	ws, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, newShareholderResponse(ws))
}

// Deactivate soft-disables a shareholder account.
// @Summary Deactivate shareholder
// @Tags    shareholders
// @Produce json
// @Param   id path string true "shareholder id (UUID)"
// @Security BearerAuth
// @Success 200 {object} shareholderResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /shareholders/{id} [delete]
func (h *ShareholderHandler) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	ws, err := h.uc.Deactivate(c.Context(), id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, newShareholderResponse(ws))
}
