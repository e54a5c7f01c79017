package admin

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

// RegisterRoutes mounts login on public and the rest on protected, which
// must already carry the admin auth middleware.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/login", h.Login)
	protected.GET("/bookings", h.ListBookings)
}

// Login exchanges the salon password for a bearer token.
// @Summary  Admin login
// @Tags     Admin
// @Param    body body LoginRequest true "password"
// @Success  200 {object} LoginResponse
// @Failure  401 {object} map[string]string
// @Router   /admin/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, domain.InvalidRequest("Invalid login payload.", err))
		return
	}
	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, resp)
}

// ListBookings returns bookings, optionally filtered by ?status=.
// @Summary  List bookings
// @Tags     Admin
// @Security BearerAuth
// @Param    status query string false "pending, confirmed or cancelled"
// @Success  200 {object} BookingListResponse
// @Router   /admin/bookings [GET]
func (h *Handler) ListBookings(c *gin.Context) {
	resp, err := h.service.ListBookings(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, resp)
}
