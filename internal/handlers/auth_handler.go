package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type AuthHandler struct {
	db          *gorm.DB
	tokens      *auth.TokenIssuer
	emailDomain func(email string) bool
}

func NewAuthHandler(db *gorm.DB, tokens *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		db:          db,
		tokens:      tokens,
		emailDomain: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register cria um usuário cliente. Virar barbeiro é um passo separado
// (onboarding).
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := validators.NormalizeEmail(req.Email)

	if !h.emailDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro interno. Tente novamente.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         models.RoleClient,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_registered", "Este e-mail já está cadastrado.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro interno. Tente novamente.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  auth.NewPrincipal(&user, nil),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro interno. Tente novamente.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  auth.NewPrincipal(&user, nil),
		"token": token,
	})
}
