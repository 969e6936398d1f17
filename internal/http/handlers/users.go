package handlers

import (
	"net/http"
	"time"

	"imobiliaria/internal/auth"
	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
	"imobiliaria/internal/repositories"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type UserHandler struct {
	Users     repositories.UserRepository
	JWTSecret []byte
}

type userRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/users/register
func (h UserHandler) Register(c *gin.Context) {
	var req userRegisterRequest
	if !BindJSONOrError(c, &req, "Nome, email e senha são obrigatórios.") {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	_, err = h.Users.Create(models.User{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
	}, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Usuário criado com sucesso!"})
}

// POST /api/users/login
func (h UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req, "Email e senha são obrigatórios.") {
		return
	}

	user, hash, err := h.Users.FindByEmail(req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas."})
			return
		}
		RespondDomainError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas."})
		return
	}

	token, err := auth.Sign(user.ID, auth.RoleUser, tokenTTL, h.JWTSecret)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
