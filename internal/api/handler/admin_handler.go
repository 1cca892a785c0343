package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizsphere/marketplace/internal/api/metrics"
	"github.com/bizsphere/marketplace/internal/core/ports"
)

// AdminHandler serves the admin review and reporting endpoints. Every route
// is expected to sit behind middleware.AdminOnly.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Businesses handles GET /admin/businesses.
//
// @Summary      List business accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   businessSummary
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /admin/businesses [get]
func (h *AdminHandler) Businesses(c echo.Context) error {
	owners, err := h.service.ListBusinesses(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]businessSummary, 0, len(owners))
	for _, o := range owners {
		out = append(out, toBusinessSummary(o))
	}
	return c.JSON(http.StatusOK, out)
}

// DashboardStats handles GET /admin/dashboard-stats.
//
// @Summary      Account counts for the admin dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DashboardStats
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /admin/dashboard-stats [get]
func (h *AdminHandler) DashboardStats(c echo.Context) error {
	stats, err := h.service.DashboardStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// VerifyBusiness handles PUT /admin/verify-business/:id.
//
// @Summary      Approve, reject or reset a business
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Owner account id"
// @Param        body  body      verifyBusinessRequest  true  "Review decision"
// @Success      200   {object}  verifyBusinessResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /admin/verify-business/{id} [put]
func (h *AdminHandler) VerifyBusiness(c echo.Context) error {
	reviewer, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req verifyBusinessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	business, err := h.service.VerifyBusiness(c.Request().Context(), ports.VerifyBusinessInput{
		ReviewerID: reviewer.ID,
		TargetID:   c.Param("id"),
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.BusinessVerificationsTotal.WithLabelValues(string(business.VerificationStatus)).Inc()
	return c.JSON(http.StatusOK, verifyBusinessResponse{
		Message:  fmt.Sprintf("Business %s successfully", business.VerificationStatus),
		Business: toVerificationView(business),
	})
}

// Users handles GET /admin/users.
//
// @Summary      List every account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Account
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	accounts, err := h.service.ListAllAccounts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}
