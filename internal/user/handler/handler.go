package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gatorkeys/internal/httputil"
	"gatorkeys/internal/middleware"
	"gatorkeys/internal/user"
)

type UserHandler struct {
	uc user.UserUsecase
}

func NewUserHandler(uc user.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto, err := h.uc.Register(c.Request.Context(), user.RegisterCommand{Email: req.Email, Password: req.Password})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.uc.Login(c.Request.Context(), user.LoginCommand{Email: req.Email, Password: req.Password})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Me(c *gin.Context) {
	dto, err := h.uc.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}
