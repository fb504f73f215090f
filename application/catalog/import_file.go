package catalog

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"catalog-backend/application/ports"

	"go.uber.org/zap"
)

// ImportFileHandler hands out presigned upload URLs for catalog CSV files.
// Parsing the uploaded file happens elsewhere.
type ImportFileHandler struct {
	signer ports.UploadSigner
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewImportFileHandler creates a new import handler. Objects are keyed under
// prefix, e.g. "uploaded/".
func NewImportFileHandler(signer ports.UploadSigner, prefix string, ttl time.Duration, logger *zap.Logger) *ImportFileHandler {
	return &ImportFileHandler{signer: signer, prefix: prefix, ttl: ttl, logger: logger}
}

// Handle returns a presigned PUT URL for the named CSV file as plain text.
func (h *ImportFileHandler) Handle(ctx context.Context, name string) Response {
	ctx, span := tracer.Start(ctx, OpImportURL)
	defer span.End()

	if name == "" || !strings.HasSuffix(strings.ToLower(name), ".csv") || path.Base(name) != name {
		return message(http.StatusBadRequest, MsgInvalidFileName)
	}

	key := h.prefix + name
	url, err := h.signer.SignUpload(ctx, key, "text/csv", h.ttl)
	if err != nil {
		h.logger.Error("Error generating import URL", zap.String("key", key), zap.Error(err))
		span.RecordError(err)
		return message(http.StatusInternalServerError, MsgImportURLFailed)
	}

	h.logger.Info("Issued import URL", zap.String("key", key), zap.Duration("ttl", h.ttl))
	return Response{StatusCode: http.StatusOK, Raw: url}
}
