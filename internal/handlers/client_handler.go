package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/httpresp"
	"github.com/perfectlysalon/admin-api/internal/usecase/account"
)

type ClientHandler struct {
	accounts *account.Service
}

func NewClientHandler(accounts *account.Service) *ClientHandler {
	return &ClientHandler{accounts: accounts}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Email         string `json:"email" binding:"required"`
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	FullName      string `json:"full_name" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"required"`
	Age           int    `json:"age" binding:"required"`
}

type SetBlockedRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

// --------- Handlers ---------

// List returns every account, optionally narrowed by a search term
// matched against name, email and username.
func (h *ClientHandler) List(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, accounts)
}

// Create is the admin-side registration: no email verification round
// trip, the account is usable immediately.
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	acc, err := h.accounts.CreateClientAccount(c.Request.Context(), account.CreateAccountInput{
		Email:         req.Email,
		Username:      req.Username,
		Password:      req.Password,
		FullName:      req.FullName,
		ContactNumber: req.ContactNumber,
		Age:           req.Age,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, acc)
}

// SetBlocked toggles the login block. Blocking is enforced at login
// time, so existing sessions expire naturally.
func (h *ClientHandler) SetBlocked(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid account id")
		return
	}

	var req SetBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Blocked == nil {
		httperr.BadRequest(c, "invalid_request", "blocked flag is required")
		return
	}

	if err := h.accounts.SetBlocked(c.Request.Context(), uint(id), *req.Blocked); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "blocked": *req.Blocked})
}
