package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"contactbook-be/internal/service"
)

// qrCodeSize is the PNG edge length in pixels.
const qrCodeSize = 256

type QRCodeController struct {
	contactService service.ContactService
	logger         *zap.Logger
}

func NewQRCodeController(contactService service.ContactService, logger *zap.Logger) *QRCodeController {
	return &QRCodeController{
		contactService: contactService,
		logger:         logger,
	}
}

// GenerateQRCode handles GET /contacts/:id/qrcode - renders the contact's
// vCard as a QR code
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	owner, ok := userID(c, qc.logger)
	if !ok {
		return
	}

	contact, err := qc.contactService.Get(c.Request.Context(), c.Param("id"), owner)
	if err != nil {
		respondError(c, qc.logger, err)
		return
	}

	// Medium error recovery
	qrCode, err := qrcode.New(contact.VCard(), qrcode.Medium)
	if err != nil {
		respondError(c, qc.logger, err)
		return
	}

	pngData, err := qrCode.PNG(qrCodeSize)
	if err != nil {
		respondError(c, qc.logger, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=contact-"+contact.ID+".png")
	c.Data(http.StatusOK, "image/png", pngData)
}
