package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageBody is the acknowledgement returned by operations with no resource to echo.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 Created JSON response.
func Created(c *gin.Context, payload any) {
	JSON(c, http.StatusCreated, payload)
}

// Message writes a 200 OK acknowledgement.
func Message(c *gin.Context, text string) {
	OK(c, MessageBody{Message: text})
}
