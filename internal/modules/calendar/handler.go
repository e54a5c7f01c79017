package calendar

import (
	"github.com/gin-gonic/gin"

	"github.com/MousScales/Momsites/internal/domain"
	"github.com/MousScales/Momsites/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the single-booking sync on public and the full
// sync on protected, which must already carry the admin auth middleware.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/sync-to-google-calendar", h.SyncBooking)
	protected.POST("/sync-all-bookings-to-google-calendar", h.SyncAll)
}

// SyncBooking godoc
// @Summary      Add booking to the salon calendar
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Param        body body SyncRequest true "Booking"
// @Success      200 {object} SyncResponse
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /sync-to-google-calendar [post]
func (h *Handler) SyncBooking(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, domain.InvalidRequest("Invalid booking payload.", err))
		return
	}
	if req.empty() {
		response.FromError(c, domain.MissingParameter("No booking data provided"))
		return
	}

	resp, err := h.service.SyncBooking(c.Request.Context(), req.toBooking())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, resp)
}

// SyncAll godoc
// @Summary      Sync every booking to the salon calendar
// @Tags         Calendar
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} SyncAllResponse
// @Failure      401 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /admin/sync-all-bookings-to-google-calendar [post]
func (h *Handler) SyncAll(c *gin.Context) {
	resp, err := h.service.SyncAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, resp)
}
