package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
)

type InventoryHandler struct {
	db  *gorm.DB
	bus *events.Bus
}

func NewInventoryHandler(db *gorm.DB, bus *events.Bus) *InventoryHandler {
	return &InventoryHandler{db: db, bus: bus}
}

// --------- Requests ---------

type CreateInventoryItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	MinStock int    `json:"min_stock"`
}

type UpdateInventoryItemRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
	Unit     *string `json:"unit,omitempty"`
	MinStock *int    `json:"min_stock,omitempty"`
}

// itemView adds the computed low-stock flag to the stored row.
type itemView struct {
	models.InventoryItem
	IsLowStock bool `json:"is_low_stock"`
}

func toItemView(item models.InventoryItem) itemView {
	return itemView{InventoryItem: item, IsLowStock: item.LowStock()}
}

// --------- Handlers ---------

func (h *InventoryHandler) List(c *gin.Context) {
	q := h.db.Model(&models.InventoryItem{})

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(category))
	}
	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+search+"%")
	}

	var items []models.InventoryItem
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_inventory", "could not load inventory")
		return
	}

	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, toItemView(item))
	}
	c.JSON(http.StatusOK, views)
}

// LowStock lists only the items at or below their reorder threshold.
func (h *InventoryHandler) LowStock(c *gin.Context) {
	var items []models.InventoryItem
	if err := h.db.Order("name ASC").Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_inventory", "could not load inventory")
		return
	}

	low := make([]itemView, 0)
	for _, item := range items {
		if item.LowStock() {
			low = append(low, toItemView(item))
		}
	}
	c.JSON(http.StatusOK, low)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.Quantity < 0 {
		httperr.BadRequest(c, "invalid_quantity", "quantity must be zero or greater")
		return
	}

	minStock := req.MinStock
	if minStock <= 0 {
		minStock = models.DefaultMinStock
	}

	item := models.InventoryItem{
		Name:     strings.TrimSpace(req.Name),
		Category: req.Category,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		MinStock: minStock,
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_item", "could not create inventory item")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "inventory", Action: events.ActionInsert, ID: item.ID,
	})

	c.JSON(http.StatusCreated, toItemView(item))
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var item models.InventoryItem
	if err := h.db.First(&item, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "item_not_found", "inventory item not found")
			return
		}
		httperr.Internal(c, "failed_to_get_item", "could not load inventory item")
		return
	}

	var req UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			httperr.BadRequest(c, "invalid_quantity", "quantity must be zero or greater")
			return
		}
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.MinStock != nil {
		item.MinStock = *req.MinStock
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_item", "could not update inventory item")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "inventory", Action: events.ActionUpdate, ID: item.ID,
	})

	c.JSON(http.StatusOK, toItemView(item))
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	res := h.db.Delete(&models.InventoryItem{}, c.Param("id"))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_item", "could not delete inventory item")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "item_not_found", "inventory item not found")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "inventory", Action: events.ActionDelete,
	})

	c.JSON(http.StatusOK, gin.H{"message": "inventory item deleted"})
}
