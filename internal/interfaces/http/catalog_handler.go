package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/infrastructure/feed"
	"github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
)

// CatalogHandler expone el catálogo público (solo productos activos).
type CatalogHandler struct {
	uc     *usecase.CatalogUseCase
	feed   *feed.Builder
	pdfGen *pdf.CatalogGenerator
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase, feedBuilder *feed.Builder, pdfGen *pdf.CatalogGenerator) *CatalogHandler {
	return &CatalogHandler{uc: uc, feed: feedBuilder, pdfGen: pdfGen}
}

// List godoc
// @Summary      Catálogo público
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.CatalogProduct
// @Router       /api/catalog [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Feed godoc
// @Summary      Feed XML del catálogo
// @Tags         catalog
// @Produce      xml
// @Success      200  {string}  string
// @Router       /api/catalog/feed.xml [get]
func (h *CatalogHandler) Feed(c *fiber.Ctx) error {
	products, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out, err := h.feed.Build(products)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}

// ExportPDF godoc
// @Summary      Exportar catálogo como PDF
// @Tags         catalog
// @Produce      application/pdf
// @Success      200  {string}  string
// @Router       /api/catalog/export.pdf [get]
func (h *CatalogHandler) ExportPDF(c *fiber.Ctx) error {
	products, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out, err := h.pdfGen.Generate(products)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="catalogo.pdf"`)
	return c.Send(out)
}
