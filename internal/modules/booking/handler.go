package booking

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/save-booking", h.SaveBooking)
	rg.GET("/get-bookings-for-date", h.GetBookingsForDate)
	rg.GET("/search-bookings-by-phone", h.SearchBookingsByPhone)
	rg.POST("/update-booking", h.RescheduleBooking)
}

// SaveBooking godoc
// @Summary      Save booking
// @Description  Stores a booking as pending and returns its id
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Param        body body SaveBookingRequest true "Booking"
// @Success      200 {object} SaveBookingResponse
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /save-booking [post]
func (h *Handler) SaveBooking(c *gin.Context) {
	var req SaveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, domain.InvalidRequest("Invalid booking payload.", err))
		return
	}

	id, err := h.service.SaveBooking(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, SaveBookingResponse{
		Success:   true,
		ID:        id,
		BookingID: id,
		Message:   "Booking saved successfully",
	})
}

// GetBookingsForDate godoc
// @Summary      Bookings for a date
// @Tags         Bookings
// @Produce      json
// @Param        date query string true "Appointment date (YYYY-MM-DD)"
// @Success      200 {array} BookingView
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /get-bookings-for-date [get]
func (h *Handler) GetBookingsForDate(c *gin.Context) {
	bookings, err := h.service.GetBookingsForDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toViews(bookings))
}

// SearchBookingsByPhone godoc
// @Summary      Find bookings by phone
// @Description  Matches bookings whose stored phone starts with the digits of the query
// @Tags         Bookings
// @Produce      json
// @Param        phone query string true "Phone number"
// @Success      200 {object} SearchResponse
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /search-bookings-by-phone [get]
func (h *Handler) SearchBookingsByPhone(c *gin.Context) {
	bookings, err := h.service.SearchBookingsByPhone(c.Request.Context(), c.Query("phone"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, SearchResponse{Success: true, Bookings: toViews(bookings), Count: len(bookings)})
}

// RescheduleBooking godoc
// @Summary      Reschedule booking
// @Description  Moves a booking to a new slot unless the current one is within the reschedule window
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Param        body body RescheduleRequest true "New slot"
// @Success      200 {object} RescheduleResponse
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /update-booking [post]
func (h *Handler) RescheduleBooking(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, domain.InvalidRequest("Invalid reschedule payload.", err))
		return
	}

	resp, err := h.service.RescheduleBooking(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, resp)
}
