package ledger

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
)

// DocumentStore persists the raw bytes of supporting documents. The
// metadata lives in the DocumentRepository; the store only knows paths.
type DocumentStore interface {
	// Put stores the content and returns the storage path
	Put(ctx context.Context, entryID uuid.UUID, filename string, content io.Reader) (string, error)

	// Get opens the content stored at path
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes the content stored at path
	Remove(ctx context.Context, path string) error
}

// DocumentService attaches supporting documents to entries
type DocumentService struct {
	docRepo   ledger.DocumentRepository
	entryRepo ledger.EntryRepository
	store     DocumentStore
	trail     *audit.Trail
	tx        shared.TxManager
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	docRepo ledger.DocumentRepository,
	entryRepo ledger.EntryRepository,
	store DocumentStore,
	trail *audit.Trail,
	tx shared.TxManager,
) *DocumentService {
	return &DocumentService{
		docRepo:   docRepo,
		entryRepo: entryRepo,
		store:     store,
		trail:     trail,
		tx:        tx,
	}
}

// AttachDocumentRequest describes an upload to attach to an entry
type AttachDocumentRequest struct {
	EntryID     uuid.UUID           `json:"entry_id" binding:"required"`
	LineID      *uuid.UUID          `json:"line_id"`
	Kind        ledger.DocumentKind `json:"kind" binding:"required"`
	Number      string              `json:"number"`
	Filename    string              `json:"filename" binding:"required"`
	Date        time.Time           `json:"date"`
	Description string              `json:"description"`
	Content     io.Reader           `json:"-"`
	Actor       string              `json:"-"`
}

// DocumentResponse represents a supporting document in API responses
type DocumentResponse struct {
	ID           uuid.UUID           `json:"id"`
	EntryID      uuid.UUID           `json:"entry_id"`
	LineID       *uuid.UUID          `json:"line_id,omitempty"`
	Kind         ledger.DocumentKind `json:"kind"`
	Number       string              `json:"number,omitempty"`
	OriginalName string              `json:"original_name"`
	Date         time.Time           `json:"date"`
	Description  string              `json:"description,omitempty"`
	UploadedBy   string              `json:"uploaded_by"`
	CreatedAt    time.Time           `json:"created_at"`
}

// AttachDocument stores the upload and records its metadata. When the
// metadata write fails the stored file is removed again.
func (s *DocumentService) AttachDocument(ctx context.Context, req AttachDocumentRequest) (*DocumentResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}

	path, err := s.store.Put(ctx, entry.ID, req.Filename, req.Content)
	if err != nil {
		return nil, err
	}

	doc, err := ledger.NewSupportingDocument(entry.ID, req.LineID, req.Kind, req.Number,
		path, req.Filename, req.Date, req.Description, req.Actor)
	if err != nil {
		_ = s.store.Remove(ctx, path)
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.docRepo.Save(ctx, doc); err != nil {
			return err
		}
		return s.trail.Write(ctx, "supporting_documents", doc.ID, audit.ActionCreate, nil, doc, req.Actor)
	})
	if err != nil {
		_ = s.store.Remove(ctx, path)
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// ListEntryDocuments returns the documents attached to an entry
func (s *DocumentService) ListEntryDocuments(ctx context.Context, entryID uuid.UUID) ([]DocumentResponse, error) {
	docs, err := s.docRepo.FindByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = *toDocumentResponse(&docs[i])
	}
	return responses, nil
}

// OpenDocument streams the stored content of a document
func (s *DocumentService) OpenDocument(ctx context.Context, id uuid.UUID) (*DocumentResponse, io.ReadCloser, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	return toDocumentResponse(doc), reader, nil
}

// DeleteDocument removes the metadata and the stored file
func (s *DocumentService) DeleteDocument(ctx context.Context, id uuid.UUID, actor string) error {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.docRepo.Delete(ctx, id); err != nil {
			return err
		}
		return s.trail.Write(ctx, "supporting_documents", id, audit.ActionDelete, doc, nil, actor)
	})
	if err != nil {
		return err
	}
	// file removal is best-effort once the metadata is gone
	_ = s.store.Remove(ctx, doc.StoragePath)
	return nil
}

func toDocumentResponse(doc *ledger.SupportingDocument) *DocumentResponse {
	return &DocumentResponse{
		ID:           doc.ID,
		EntryID:      doc.EntryID,
		LineID:       doc.LineID,
		Kind:         doc.Kind,
		Number:       doc.Number,
		OriginalName: doc.OriginalName,
		Date:         doc.Date,
		Description:  doc.Description,
		UploadedBy:   doc.UploadedBy,
		CreatedAt:    doc.CreatedAt,
	}
}
