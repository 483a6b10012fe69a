package handler

import (
	"net/http"

	"leave-api/internal/middleware"
	"leave-api/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	verifier    middleware.TokenVerifier
	limiter     gin.HandlerFunc
}

// NewAuthHandler wires the auth endpoints; limiter guards register and login
func NewAuthHandler(authService service.AuthService, verifier middleware.TokenVerifier, limiter gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{authService: authService, verifier: verifier, limiter: limiter}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/auth")
	{
		group.POST("/register", h.limiter, h.Register)
		group.POST("/login", h.limiter, h.Login)
		group.GET("/profile", middleware.RequireAuth(h.verifier), h.GetProfile)
	}
}

// Register creates an account
// @Summary      Register user
// @Description  Creates a user with a hashed password. Role defaults to Employee.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterRequest  true  "Registration payload"
// @Success      201      {object}  service.RegisterResponse
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := bindJSON(c, &req, "First name, last name, email and password are required"); err != nil {
		_ = c.Error(err)
		return
	}

	res, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// Login handles POST /api/auth/login to authenticate and return a JWT token
// @Summary      Login user
// @Description  Authenticates by email and password and returns "Bearer <token>"
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Login credentials"
// @Success      200      {object}  service.LoginResponse
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := bindJSON(c, &req, "Email and password are required"); err != nil {
		_ = c.Error(err)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetProfile returns the authenticated user
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	user, err := h.authService.GetProfile(c.Request.Context(), identity.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{Message: "Auth success: Profile data accessed", User: *user})
}

type ProfileResponse struct {
	Message string               `json:"message"`
	User    service.UserResponse `json:"user"`
}
