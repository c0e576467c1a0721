package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contactbook-be/internal/models"
	"contactbook-be/internal/service"
)

type ContactController struct {
	contactService service.ContactService
	logger         *zap.Logger
}

func NewContactController(contactService service.ContactService, logger *zap.Logger) *ContactController {
	return &ContactController{
		contactService: contactService,
		logger:         logger,
	}
}

// List handles GET /contacts?name=&email=
func (cc *ContactController) List(c *gin.Context) {
	owner, ok := userID(c, cc.logger)
	if !ok {
		return
	}

	var filter models.ContactFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	contacts, err := cc.contactService.List(c.Request.Context(), owner, filter)
	if err != nil {
		respondError(c, cc.logger, err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// Create handles POST /contacts
func (cc *ContactController) Create(c *gin.Context) {
	owner, ok := userID(c, cc.logger)
	if !ok {
		return
	}

	var req models.ContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := cc.contactService.Create(c.Request.Context(), owner, &req)
	if err != nil {
		respondError(c, cc.logger, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// Get handles GET /contacts/:id
func (cc *ContactController) Get(c *gin.Context) {
	owner, ok := userID(c, cc.logger)
	if !ok {
		return
	}

	contact, err := cc.contactService.Get(c.Request.Context(), c.Param("id"), owner)
	if err != nil {
		respondError(c, cc.logger, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// Replace handles PUT /contacts/:id
func (cc *ContactController) Replace(c *gin.Context) {
	owner, ok := userID(c, cc.logger)
	if !ok {
		return
	}

	var req models.ContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := cc.contactService.Replace(c.Request.Context(), c.Param("id"), owner, &req)
	if err != nil {
		respondError(c, cc.logger, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// Update handles PATCH /contacts/:id
func (cc *ContactController) Update(c *gin.Context) {
	owner, ok := userID(c, cc.logger)
	if !ok {
		return
	}

	var req models.ContactPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := cc.contactService.Update(c.Request.Context(), c.Param("id"), owner, &req)
	if err != nil {
		respondError(c, cc.logger, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// Delete handles DELETE /contacts/:id
func (cc *ContactController) Delete(c *gin.Context) {
	owner, ok := userID(c, cc.logger)
	if !ok {
		return
	}

	if err := cc.contactService.Delete(c.Request.Context(), c.Param("id"), owner); err != nil {
		respondError(c, cc.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
