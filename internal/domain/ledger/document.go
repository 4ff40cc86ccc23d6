package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
)

// DocumentKind categorizes supporting documents
type DocumentKind string

const (
	DocumentInvoice       DocumentKind = "facture"
	DocumentReceipt       DocumentKind = "recu"
	DocumentContract      DocumentKind = "contrat"
	DocumentPurchaseOrder DocumentKind = "bon_commande"
)

// IsValid checks if the document kind is valid
func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentInvoice, DocumentReceipt, DocumentContract, DocumentPurchaseOrder:
		return true
	}
	return false
}

// SupportingDocument is the metadata of a scanned receipt or invoice
// attached to an entry or one of its lines. The bytes live in the
// DocumentStore under StoragePath.
type SupportingDocument struct {
	shared.BaseEntity
	EntryID      uuid.UUID
	LineID       *uuid.UUID
	Kind         DocumentKind
	Number       string
	StoragePath  string
	OriginalName string
	Date         time.Time
	Description  string
	UploadedBy   string
}

// NewSupportingDocument records an attachment already stored at
// storagePath.
func NewSupportingDocument(entryID uuid.UUID, lineID *uuid.UUID, kind DocumentKind, number, storagePath, originalName string, date time.Time, description, uploadedBy string) (*SupportingDocument, error) {
	if entryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTRY", "Document entry is required")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_KIND", "Unknown document kind")
	}
	if strings.TrimSpace(storagePath) == "" {
		return nil, shared.NewDomainError("INVALID_PATH", "Document storage path is required")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &SupportingDocument{
		BaseEntity:   shared.NewBaseEntity(),
		EntryID:      entryID,
		LineID:       lineID,
		Kind:         kind,
		Number:       number,
		StoragePath:  storagePath,
		OriginalName: originalName,
		Date:         date,
		Description:  description,
		UploadedBy:   uploadedBy,
	}, nil
}
