package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appledger "github.com/ongcompta/backend/internal/application/ledger"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
)

// DocumentHandler exposes supporting document upload and retrieval
type DocumentHandler struct {
	BaseHandler
	service   *appledger.DocumentService
	maxUpload int64
}

// NewDocumentHandler creates a new DocumentHandler. maxUpload caps the
// accepted file size in bytes.
func NewDocumentHandler(service *appledger.DocumentService, maxUpload int64) *DocumentHandler {
	return &DocumentHandler{service: service, maxUpload: maxUpload}
}

// RegisterRoutes registers document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	docs := rg.Group("/documents")
	{
		docs.POST("", h.Attach)
		docs.GET("/:id", h.Get)
		docs.GET("/:id/content", h.Download)
		docs.DELETE("/:id", h.Delete)
	}
	rg.GET("/entries/:id/documents", h.ListByEntry)
}

// Attach stores a multipart upload as a supporting document of an entry
func (h *DocumentHandler) Attach(c *gin.Context) {
	entryID, err := uuid.Parse(c.PostForm("entry_id"))
	if err != nil {
		h.BadRequest(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, err)
		return
	}
	defer file.Close()

	if h.maxUpload > 0 && header.Size > h.maxUpload {
		h.HandleError(c, shared.NewDomainError("FILE_TOO_LARGE", "Uploaded file exceeds the size limit"))
		return
	}

	req := appledger.AttachDocumentRequest{
		EntryID:     entryID,
		Kind:        ledger.DocumentKind(c.PostForm("kind")),
		Number:      c.PostForm("number"),
		Filename:    header.Filename,
		Description: c.PostForm("description"),
		Content:     limitedReader(file, h.maxUpload),
		Actor:       actor(c),
	}
	if v := c.PostForm("line_id"); v != "" {
		lineID, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, err)
			return
		}
		req.LineID = &lineID
	}
	if v := c.PostForm("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.BadRequest(c, err)
			return
		}
		req.Date = date
	}

	resp, err := h.service.AttachDocument(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns the metadata of one document
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, content, err := h.service.OpenDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	content.Close()
	h.Success(c, resp)
}

// Download streams the stored content of a document
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, content, err := h.service.OpenDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer content.Close()

	c.Header("Content-Disposition", `attachment; filename="`+resp.OriginalName+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	io.Copy(c.Writer, content)
}

// ListByEntry lists the documents attached to an entry
func (h *DocumentHandler) ListByEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.ListEntryDocuments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a document and its stored content
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteDocument(c.Request.Context(), id, actor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// limitedReader caps a multipart file at max bytes when a limit is set
func limitedReader(file multipart.File, max int64) io.Reader {
	if max <= 0 {
		return file
	}
	return io.LimitReader(file, max)
}
