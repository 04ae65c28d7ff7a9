package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/perfectlysalon/admin-api/internal/domain/appointment"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/httpresp"
	"github.com/perfectlysalon/admin-api/internal/models"
	ucAppointment "github.com/perfectlysalon/admin-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createUC      *ucAppointment.CreateBooking
	confirmUC     *ucAppointment.ConfirmAppointment
	cancelUC      *ucAppointment.CancelAppointment
	completeUC    *ucAppointment.CompleteAppointment
	setProductsUC *ucAppointment.SetAppointmentProducts
	listUC        *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateBooking,
	confirmUC *ucAppointment.ConfirmAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	setProductsUC *ucAppointment.SetAppointmentProducts,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:            db,
		createUC:      createUC,
		confirmUC:     confirmUC,
		cancelUC:      cancelUC,
		completeUC:    completeUC,
		setProductsUC: setProductsUC,
		listUC:        listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ItemSelectionRequest struct {
	ID       uint `json:"id" binding:"required"`
	Quantity int  `json:"quantity"`
}

type CreateAppointmentRequest struct {
	AccountID *uint `json:"account_id"`

	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	Stylist string `json:"stylist"`

	Services []ItemSelectionRequest `json:"services" binding:"required"`
	Addons   []ItemSelectionRequest `json:"addons"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	PaymentMethod string `json:"payment_method"`
}

type ProductUsageRequest struct {
	ProductID    uint `json:"product_id" binding:"required"`
	QuantityUsed int  `json:"quantity_used" binding:"required"`
}

type SetProductsRequest struct {
	Products []ProductUsageRequest `json:"products"`
}

func toSelections(reqs []ItemSelectionRequest) []ucAppointment.ItemSelection {
	out := make([]ucAppointment.ItemSelection, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ucAppointment.ItemSelection{ID: r.ID, Quantity: r.Quantity})
	}
	return out
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid appointment id")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateBookingInput{
		AccountID:     req.AccountID,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		Stylist:       req.Stylist,
		Services:      toSelections(req.Services),
		Addons:        toSelections(req.Addons),
		Date:          req.Date,
		Time:          req.Time,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	apps, err := h.listUC.Execute(c.Request.Context(), c.Query("status"), c.Query("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, apps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "appointment_not_found", "appointment not found")
			return
		}
		httperr.Internal(c, "failed_to_get_appointment", "could not load appointment")
		return
	}

	var usages []models.ProductUsage
	if err := h.db.Preload("Product").
		Where("appointment_id = ?", ap.ID).
		Find(&usages).Error; err != nil {
		httperr.Internal(c, "failed_to_get_products", "could not load product usage")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": ap,
		"products":    usages,
	})
}

// Slots returns the booking grid for a date with each slot's
// availability. Pending and confirmed bookings hold a slot; completed
// and cancelled ones release it.
func (h *AppointmentHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required")
		return
	}

	var taken []string
	if err := h.db.Model(&models.Appointment{}).
		Where("date = ? AND status IN ?", date,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)}).
		Pluck("time", &taken).Error; err != nil {

		httperr.Internal(c, "failed_to_load_slots", "could not load bookings for date")
		return
	}

	takenSet := make(map[string]bool, len(taken))
	for _, label := range taken {
		takenSet[label] = true
	}

	type slotView struct {
		Time      string `json:"time"`
		Label     string `json:"label"`
		Available bool   `json:"available"`
	}

	slots := make([]slotView, 0)
	for _, hhmm := range domain.TimeSlots() {
		label, err := domain.FormatSlot(hhmm)
		if err != nil {
			continue
		}
		slots = append(slots, slotView{
			Time:      hhmm,
			Label:     label,
			Available: !takenSet[label],
		})
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// Complete deducts the linked product usage from inventory. Without any
// usage rows the operator must resend with allow_no_products=true.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	allowNoProducts := c.Query("allow_no_products") == "true"

	ap, err := h.completeUC.Execute(c.Request.Context(), id, allowNoProducts)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// PRODUCT USAGE
// ======================================================

func (h *AppointmentHandler) SetProducts(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req SetProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	inputs := make([]ucAppointment.ProductUsageInput, 0, len(req.Products))
	for _, p := range req.Products {
		inputs = append(inputs, ucAppointment.ProductUsageInput{
			ProductID:    p.ProductID,
			QuantityUsed: p.QuantityUsed,
		})
	}

	usages, err := h.setProductsUC.Execute(c.Request.Context(), id, inputs)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, usages)
}

func (h *AppointmentHandler) GetProducts(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var usages []models.ProductUsage
	if err := h.db.Preload("Product").
		Where("appointment_id = ?", id).
		Find(&usages).Error; err != nil {
		httperr.Internal(c, "failed_to_get_products", "could not load product usage")
		return
	}

	c.JSON(http.StatusOK, usages)
}
