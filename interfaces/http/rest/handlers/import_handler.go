package handlers

import (
	"net/http"

	"catalog-backend/application/catalog"
)

// ImportHandler hands out presigned upload URLs
type ImportHandler struct {
	importFile *catalog.ImportFileHandler
}

// NewImportHandler creates a new import handler
func NewImportHandler(importFile *catalog.ImportFileHandler) *ImportHandler {
	return &ImportHandler{importFile: importFile}
}

// ImportProductsFile godoc
// @Summary      Get a presigned URL to upload a products CSV
// @Tags         import
// @Produce      plain
// @Param        name  query     string  true  "CSV file name"
// @Success      200   {string}  string  "Presigned PUT URL"
// @Failure      400   {object}  catalog.MessageBody
// @Failure      500   {object}  catalog.MessageBody
// @Router       /import [get]
func (h *ImportHandler) ImportProductsFile(w http.ResponseWriter, r *http.Request) {
	Render(w, h.importFile.Handle(r.Context(), r.URL.Query().Get("name")))
}
