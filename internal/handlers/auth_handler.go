package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/perfectlysalon/admin-api/internal/config"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
	"github.com/perfectlysalon/admin-api/internal/usecase/account"
	"github.com/perfectlysalon/admin-api/internal/validators"
	"github.com/perfectlysalon/admin-api/internal/verification"
)

type AuthHandler struct {
	accounts *account.Service
	codes    *verification.Service
	config   *config.Config
}

func NewAuthHandler(accounts *account.Service, codes *verification.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{accounts: accounts, codes: codes, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email         string `json:"email" binding:"required"`
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	FullName      string `json:"full_name" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"required"`
	Age           int    `json:"age" binding:"required"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"` // email or username
	Password   string `json:"password" binding:"required"`
}

type LoginVerifyRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type SendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// --------- Handlers ---------

// Register is the self-service path; the email must have passed the
// send-code / verify-code round trip first.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	acc, err := h.accounts.Register(c.Request.Context(), account.CreateAccountInput{
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

	c.JSON(http.StatusCreated, accountView(acc))
}

// Login is phase one: credentials in, OTP out. No token is issued here.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email, err := h.accounts.LoginStart(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "verification code sent",
		"email":   email,
	})
}

// LoginVerify is phase two: a correct OTP exchanges for the session token.
func (h *AuthHandler) LoginVerify(c *gin.Context) {
	var req LoginVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	acc, err := h.accounts.LoginVerify(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	token, err := h.generateToken(acc)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "could not create session token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  accountView(acc),
		"token": token,
	})
}

// SendCode mails a fresh verification code, used before registration.
func (h *AuthHandler) SendCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validators.IsEmailDomainValid(strings.ToLower(strings.TrimSpace(req.Email))) {
		httperr.BadRequest(c, "invalid_email_domain", "the email domain does not appear to be valid")
		return
	}

	if err := h.codes.Issue(c.Request.Context(), req.Email); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

// VerifyCode consumes a registration code. The same generic error covers
// wrong, expired, and reused codes.
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ok, err := h.codes.Check(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if !ok {
		httperr.BadRequest(c, "validation_failed", "invalid or expired verification code")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(acc *models.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   acc.ID,
		"email": acc.Email,
		"role":  acc.Role,
		"exp":   now.Add(h.config.JWTExpiration).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func accountView(acc *models.Account) gin.H {
	return gin.H{
		"id":             acc.ID,
		"email":          acc.Email,
		"username":       acc.Username,
		"full_name":      acc.FullName,
		"contact_number": acc.ContactNumber,
		"age":            acc.Age,
		"role":           acc.Role,
		"is_blocked":     acc.IsBlocked,
	}
}
