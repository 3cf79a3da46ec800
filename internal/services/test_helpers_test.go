package services_test

import (
	"github.com/oreline/careers-api/internal/models"
	"github.com/oreline/careers-api/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

var pdfBytes = []byte("%PDF-1.4\n%%EOF\n")

func testApplication() *models.Application {
	app := models.NewApplication()
	app.FirstName = "Aysel  Nur"
	app.LastName = "Mammadova"
	app.Email = "aysel@example.com"
	app.Phone = "+994501234567"
	return app
}

func pdfAttachment() *models.Attachment {
	return &models.Attachment{FileName: "aysel_cv.pdf", ContentType: models.CVContentType, Data: pdfBytes}
}
