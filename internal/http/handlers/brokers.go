package handlers

import (
	"net/http"

	"imobiliaria/internal/auth"
	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
	"imobiliaria/internal/repositories"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type BrokerHandler struct {
	Brokers   repositories.BrokerRepository
	JWTSecret []byte
}

type brokerRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Creci    string `json:"creci" binding:"required"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// POST /api/brokers/register
func (h BrokerHandler) Register(c *gin.Context) {
	var req brokerRegisterRequest
	if !BindJSONOrError(c, &req, "Nome, email, senha e CRECI são obrigatórios.") {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	_, err = h.Brokers.Create(models.Broker{
		Name:    req.Name,
		Email:   req.Email,
		Creci:   req.Creci,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
	}, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Corretor criado com sucesso!"})
}

// POST /api/brokers/login
func (h BrokerHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req, "Email e senha são obrigatórios.") {
		return
	}

	broker, hash, err := h.Brokers.FindByEmail(req.Email)
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

	token, err := auth.Sign(broker.ID, auth.RoleBroker, tokenTTL, h.JWTSecret)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	c.JSON(http.StatusOK, gin.H{"broker": broker, "token": token})
}
