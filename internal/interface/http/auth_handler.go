package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventhub/event-management-backend/internal/application"
	"github.com/eventhub/event-management-backend/pkg/response"
	"github.com/eventhub/event-management-backend/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Username  string `json:"username" binding:"required,username"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"` // username or email
	Password string `json:"password" binding:"required"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	_, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	switch {
	case errors.Is(err, application.ErrUsernameTaken):
		response.Message(c, http.StatusBadRequest, "Error: Username is already taken!")
	case errors.Is(err, application.ErrEmailTaken):
		response.Message(c, http.StatusBadRequest, "Error: Email is already in use!")
	case err != nil:
		h.Logger.WithError(err).Error("signup failed")
		response.Message(c, http.StatusInternalServerError, "Error: registration failed")
	default:
		response.Message(c, http.StatusOK, "User registered successfully!")
	}
}

// Signin POST /api/auth/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	res, err := h.Svc.Signin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// One message for bad username and bad password alike.
		response.Message(c, http.StatusUnauthorized, "Error: Invalid credentials")
		return
	}
	c.JSON(http.StatusOK, response.JWTResponse{
		Token:    res.Token,
		ID:       res.User.ID,
		Username: res.User.Username,
		Email:    res.User.Email,
		Roles:    res.User.Roles,
	})
}

// AdminSignin POST /api/auth/admin/signin
func (h *AuthHandler) AdminSignin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	res, err := h.Svc.AdminSignin(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, application.ErrAdminRequired):
		response.Message(c, http.StatusForbidden, "Admin access required")
	case err != nil:
		response.Message(c, http.StatusUnauthorized, "Error: Invalid credentials")
	default:
		c.JSON(http.StatusOK, response.JWTResponse{
			Token:    res.Token,
			ID:       res.User.ID,
			Username: res.User.Username,
			Email:    res.User.Email,
			Roles:    res.User.Roles,
		})
	}
}
