package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/captable/api/http/presenter"
	"github.com/artem13815/captable/pkg/issuance"
	"github.com/artem13815/captable/pkg/security/jwt"
)

// IssuanceHandler exposes the issuance and distribution engine over HTTP.
type IssuanceHandler struct {
	uc issuance.UseCase
}

func NewIssuanceHandler(uc issuance.UseCase) *IssuanceHandler {
	return &IssuanceHandler{uc: uc}
}

type createIssuanceRequest struct {
	ShareholderID  string     `json:"shareholder_id"`
	NumberOfShares int64      `json:"number_of_shares"`
	PricePerShare  *float64   `json:"price_per_share"`
	IssueDate      *time.Time `json:"issue_date"`
}

type createIssuanceResponse struct {
	issuanceResponse
	EmailSent bool `json:"email_sent"`
}

// Create issues shares to a shareholder and triggers the certificate email.
// @Summary Create share issuance
// @Tags    issuances
// @Accept  json
// @Produce json
// @Param   input body createIssuanceRequest true "issuance payload"
// @Security BearerAuth
// @Success 201 {object} createIssuanceResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /issuances [post]
func (h *IssuanceHandler) Create(c *fiber.Ctx) error {
	var req createIssuanceRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	shareholderID, err := uuid.Parse(req.ShareholderID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "shareholder_id must be a valid UUID")
	}

	in := issuance.CreateInput{
		ShareholderID:  shareholderID,
		NumberOfShares: req.NumberOfShares,
		PricePerShare:  req.PricePerShare,
	}
	if req.IssueDate != nil {
		in.IssueDate = *req.IssueDate
	}

	result, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, createIssuanceResponse{
		issuanceResponse: newIssuanceResponse(result.Issuance),
		EmailSent:        result.EmailSent,
	})
}

// List returns issuances; admins see all, shareholders only their own.
// @Summary List issuances
// @Tags    issuances
// @Produce json
// @Param   skip query int false "rows to skip"
// @Param   limit query int false "max rows"
// @Security BearerAuth
// @Success 200 {array} issuanceResponse
// @Router  /issuances [get]
func (h *IssuanceHandler) List(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "authentication required")
	}
	skip, limit := parseSkipLimit(c, 100)
	list, err := h.uc.List(c.Context(), user, limit, skip)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, newIssuanceResponses(list))
}

type distributionResponse struct {
	ShareholderID   string  `json:"shareholder_id"`
	ShareholderName string  `json:"shareholder_name"`
	TotalShares     int64   `json:"total_shares"`
	Percentage      float64 `json:"percentage"`
}

// Distribution reports each shareholder's percentage of all issued shares.
// @Summary Ownership distribution
// @Tags    issuances
// @Produce json
// @Security BearerAuth
// @Success 200 {array} distributionResponse
// @Router  /issuances/distribution [get]
func (h *IssuanceHandler) Distribution(c *fiber.Ctx) error {
	entries, err := h.uc.Distribution(c.Context())
	if err != nil {
		return presenter.FromError(c, err)
	}
	out := make([]distributionResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, distributionResponse{
			ShareholderID:   e.ShareholderID.String(),
			ShareholderName: e.ShareholderName,
			TotalShares:     e.TotalShares,
			Percentage:      e.Percentage,
		})
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Certificate streams the issuance certificate as a PDF download.
// @Summary Download share certificate
// @Tags    issuances
// @Produce application/pdf
// @Param   id path string true "issuance id (UUID)"
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /issuances/{id}/certificate [get]
func (h *IssuanceHandler) Certificate(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}

	pdf, filename, err := h.uc.Certificate(c.Context(), user, id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Status(http.StatusOK).Send(pdf)
}
