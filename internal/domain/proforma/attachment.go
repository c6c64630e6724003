package proforma

import (
	"context"
	"io"
	"time"

	"github.com/culinary/backend/internal/domain/shared"
)

// Attachment records a stored file attached to a document
type Attachment struct {
	shared.BaseEntity
	AttachedToDoctype string
	AttachedToName    string
	FileName          string
	StorageKey        string
	ContentType       string
	Size              int64
}

// DoctypeSalesOrder is the doctype proformas are attached to
const DoctypeSalesOrder = "Sales Order"

// AttachmentRepository defines persistence for attachment records
type AttachmentRepository interface {
	Find(ctx context.Context, doctype, docname, fileName string) (*Attachment, error)
	FindByDocument(ctx context.Context, doctype, docname string) ([]Attachment, error)
	Save(ctx context.Context, a *Attachment) error
}

// DocumentStorage stores rendered documents
type DocumentStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
	DownloadURL(ctx context.Context, key string, expires time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
