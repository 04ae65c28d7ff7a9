package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
)

// CatalogHandler manages the service menu: categories, services and
// add-ons. Services referenced by past appointments are soft-deleted
// via is_active so booked line-item snapshots stay resolvable.
type CatalogHandler struct {
	db  *gorm.DB
	bus *events.Bus
}

func NewCatalogHandler(db *gorm.DB, bus *events.Bus) *CatalogHandler {
	return &CatalogHandler{db: db, bus: bus}
}

// --------- Requests ---------

type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	DisplayOrder int    `json:"display_order"`
}

type UpdateCategoryRequest struct {
	Name         *string `json:"name,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type CreateServiceRequest struct {
	CategoryID  uint            `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	DurationMin int             `json:"duration_min"`
}

type UpdateServiceRequest struct {
	CategoryID  *uint   `json:"category_id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	DurationMin *int    `json:"duration_min,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type ChangePriceRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
}

type CreateAddonRequest struct {
	CategoryID  uint            `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// --------- Categories ---------

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var categories []models.ServiceCategory
	if err := h.db.
		Where("is_active = ?", true).
		Order("display_order ASC, id ASC").
		Find(&categories).Error; err != nil {

		httperr.Internal(c, "failed_to_list_categories", "could not load service categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	category := models.ServiceCategory{
		Name:         strings.TrimSpace(req.Name),
		Slug:         strings.ToLower(strings.TrimSpace(req.Slug)),
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}

	if err := h.db.Create(&category).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			httperr.Conflict(c, "slug_already_exists", "a category with this slug already exists")
			return
		}
		httperr.Internal(c, "failed_to_create_category", "could not create category")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "service_categories", Action: events.ActionInsert, ID: category.ID,
	})

	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var category models.ServiceCategory
	if err := h.db.First(&category, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "category_not_found", "category not found")
			return
		}
		httperr.Internal(c, "failed_to_get_category", "could not load category")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.db.Save(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_update_category", "could not update category")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "service_categories", Action: events.ActionUpdate, ID: category.ID,
	})

	c.JSON(http.StatusOK, category)
}

// --------- Services ---------

func (h *CatalogHandler) ListServices(c *gin.Context) {
	q := h.db.Preload("Category")

	// The booking wizard only wants the live menu; the admin catalog
	// view asks for everything.
	if c.Query("include_inactive") != "true" {
		q = q.Where("is_active = ?", true)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}

	var services []models.Service
	if err := q.Order("display_order ASC, id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "could not load services")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "price must be zero or greater")
		return
	}

	service := models.Service{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		IsActive:    true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "could not create service")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "services", Action: events.ActionInsert, ID: service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "service not found")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "could not load service")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.CategoryID != nil {
		service.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "could not update service")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "services", Action: events.ActionUpdate, ID: service.ID,
	})

	c.JSON(http.StatusOK, service)
}

// ChangePrice only moves the catalog price; line items already booked
// keep their snapshot.
func (h *CatalogHandler) ChangePrice(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "service not found")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "could not load service")
		return
	}

	var req ChangePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "price must be zero or greater")
		return
	}

	service.Price = req.Price
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "could not update price")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "services", Action: events.ActionUpdate, ID: service.ID,
	})

	c.JSON(http.StatusOK, service)
}

// RemoveService is a soft delete; the row stays for historical bookings.
func (h *CatalogHandler) RemoveService(c *gin.Context) {
	res := h.db.Model(&models.Service{}).
		Where("id = ?", c.Param("id")).
		Update("is_active", false)

	if res.Error != nil {
		httperr.Internal(c, "failed_to_remove_service", "could not remove service")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "service not found")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "services", Action: events.ActionDelete,
	})

	c.JSON(http.StatusOK, gin.H{"message": "service removed"})
}

// --------- Add-ons ---------

func (h *CatalogHandler) ListAddons(c *gin.Context) {
	q := h.db.Preload("Category")
	if c.Query("include_inactive") != "true" {
		q = q.Where("is_active = ?", true)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}

	var addons []models.ServiceAddon
	if err := q.Order("display_order ASC, id ASC").Find(&addons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_addons", "could not load add-ons")
		return
	}

	c.JSON(http.StatusOK, addons)
}

func (h *CatalogHandler) CreateAddon(c *gin.Context) {
	var req CreateAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "price must be zero or greater")
		return
	}

	addon := models.ServiceAddon{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}

	if err := h.db.Create(&addon).Error; err != nil {
		httperr.Internal(c, "failed_to_create_addon", "could not create add-on")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "service_addons", Action: events.ActionInsert, ID: addon.ID,
	})

	c.JSON(http.StatusCreated, addon)
}

func (h *CatalogHandler) UpdateAddon(c *gin.Context) {
	var addon models.ServiceAddon
	if err := h.db.First(&addon, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "addon_not_found", "add-on not found")
			return
		}
		httperr.Internal(c, "failed_to_get_addon", "could not load add-on")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.CategoryID != nil {
		addon.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		addon.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		addon.Description = *req.Description
	}
	if req.IsActive != nil {
		addon.IsActive = *req.IsActive
	}

	if err := h.db.Save(&addon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_addon", "could not update add-on")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "service_addons", Action: events.ActionUpdate, ID: addon.ID,
	})

	c.JSON(http.StatusOK, addon)
}

func (h *CatalogHandler) RemoveAddon(c *gin.Context) {
	res := h.db.Model(&models.ServiceAddon{}).
		Where("id = ?", c.Param("id")).
		Update("is_active", false)

	if res.Error != nil {
		httperr.Internal(c, "failed_to_remove_addon", "could not remove add-on")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "addon_not_found", "add-on not found")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "service_addons", Action: events.ActionDelete,
	})

	c.JSON(http.StatusOK, gin.H{"message": "add-on removed"})
}
