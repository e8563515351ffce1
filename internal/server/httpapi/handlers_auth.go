package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (s *HTTPServer) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	// registration logs the user straight in
	token, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "user_id", user.ID)
	c.JSON(http.StatusOK, authResponse{Success: true, Message: "user registered", Token: token})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, authResponse{Success: true, Message: "welcome back", Token: token})
}
