package proforma

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/proforma"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/domain/trade"
	"github.com/culinary/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// keyPrefix is the storage folder of proforma documents
const keyPrefix = "proformas"

// Service generates proforma invoices for split orders and stores their documents
type Service struct {
	proformas      proforma.Repository
	orders         trade.SalesOrderRepository
	customers      partner.CustomerRepository
	companies      partner.CompanyRepository
	attachments    proforma.AttachmentRepository
	storage        proforma.DocumentStorage
	renderer       Renderer
	names          shared.NameGenerator
	tx             shared.TransactionManager
	clock          shared.Clock
	dueDays        int
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a proforma Service. dueDays <= 0 uses the default payment term.
func NewService(
	proformas proforma.Repository,
	orders trade.SalesOrderRepository,
	customers partner.CustomerRepository,
	companies partner.CompanyRepository,
	attachments proforma.AttachmentRepository,
	storage proforma.DocumentStorage,
	renderer Renderer,
	names shared.NameGenerator,
	tx shared.TransactionManager,
	clock shared.Clock,
	dueDays int,
	logger *zap.Logger,
) *Service {
	if dueDays <= 0 {
		dueDays = proforma.DefaultDueDays
	}
	return &Service{
		proformas:   proformas,
		orders:      orders,
		customers:   customers,
		companies:   companies,
		attachments: attachments,
		storage:     storage,
		renderer:    renderer,
		names:       names,
		tx:          tx,
		clock:       clock,
		dueDays:     dueDays,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateForOrder makes sure every child order of parent has a proforma with
// a stored document, and returns the proforma names in child order.
func (s *Service) CreateForOrder(ctx context.Context, parentName string) ([]string, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "proforma", "create_for_order", telemetry.AttrSalesOrder, parentName)
	defer span.End()

	parent, err := s.orders.FindByName(ctx, parentName)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	children, err := s.orders.FindChildren(ctx, parent.Name)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if len(children) == 0 {
		return nil, shared.NewDomainError(proforma.ErrCodeNoChildOrders,
			fmt.Sprintf("No child sales orders found for %s", parent.Name))
	}

	names := make([]string, 0, len(children))
	for i := range children {
		child := &children[i]
		name, err := s.ensureProforma(ctx, parent, child)
		if err != nil {
			s.logger.Error("Proforma creation failed",
				zap.String("parent", parent.Name),
				zap.String("child", child.Name),
				zap.Error(err),
			)
			telemetry.RecordError(span, err)
			return nil, err
		}
		names = append(names, name)
	}
	telemetry.SetAttributes(span, "proforma.count", len(names))
	return names, nil
}

// ensureProforma reuses the proforma of (parent, child company) when one
// exists, re-attaching its document only if it went missing.
func (s *Service) ensureProforma(ctx context.Context, parent, child *trade.SalesOrder) (string, error) {
	existing, err := s.proformas.FindBySourceAndCompany(ctx, parent.Name, child.Company)
	switch {
	case err == nil:
		attached, err := s.isAttached(ctx, parent.Name, child.Name)
		if err != nil {
			return "", err
		}
		if !attached {
			if key, err := s.attach(ctx, existing, parent, child); err != nil {
				s.discard(ctx, key)
				return "", err
			}
			s.logger.Info("Proforma document re-attached",
				zap.String("proforma", existing.Name), zap.String("parent", parent.Name))
		}
		return existing.Name, nil
	case !errors.Is(err, shared.ErrNotFound):
		return "", err
	}

	var (
		p        *proforma.ProformaInvoice
		uploaded string
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		name, err := s.names.Next(ctx, proforma.NamePrefix)
		if err != nil {
			return err
		}
		p, err = proforma.NewProformaInvoice(name, parent.Customer, parent.Name, child.Name,
			child.Company, shared.Today(s.clock), s.dueDays)
		if err != nil {
			return err
		}
		for _, line := range child.Items {
			p.AddItem(line.ItemCode, line.ItemName, line.Qty, line.Rate, line.Amount)
		}
		if err := p.Submit(); err != nil {
			return err
		}
		if err := s.proformas.Save(ctx, p); err != nil {
			return err
		}
		uploaded, err = s.attach(ctx, p, parent, child)
		return err
	})
	if err != nil {
		// the proforma rows rolled back, so the object has no owner
		s.discard(ctx, uploaded)
		return "", err
	}

	s.logger.Info("Proforma created",
		zap.String("proforma", p.Name),
		zap.String("parent", parent.Name),
		zap.String("company", p.SupplierCompany),
		zap.String("grand_total", p.GrandTotal.String()),
	)
	s.publishEvents(ctx, p)
	return p.Name, nil
}

func (s *Service) documentKey(parent, child string) string {
	return path.Join(keyPrefix, parent, proforma.AttachmentName(child, s.renderer.Extension()))
}

// isAttached reports whether the parent carries the child's document and the object is stored
func (s *Service) isAttached(ctx context.Context, parent, child string) (bool, error) {
	fileName := proforma.AttachmentName(child, s.renderer.Extension())
	a, err := s.attachments.Find(ctx, proforma.DoctypeSalesOrder, parent, fileName)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.storage.Exists(ctx, a.StorageKey)
}

// discard removes a document whose attachment was never committed
func (s *Service) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Orphaned proforma document not removed",
			zap.String("key", key), zap.Error(err))
	}
}

// attach renders p, uploads the document and records it on the parent order.
// It returns the storage key once the upload succeeded, even when recording fails.
func (s *Service) attach(ctx context.Context, p *proforma.ProformaInvoice, parent, child *trade.SalesOrder) (string, error) {
	in := RenderInput{
		Proforma: p,
		Parent:   parent,
		Child:    child,
		Today:    shared.Today(s.clock),
	}
	if c, err := s.customers.FindByName(ctx, p.Customer); err == nil {
		in.Customer = c
	} else if !errors.Is(err, shared.ErrNotFound) {
		return "", err
	}
	if c, err := s.companies.FindByName(ctx, p.SupplierCompany); err == nil {
		in.Company = c
	} else if !errors.Is(err, shared.ErrNotFound) {
		return "", err
	}

	body, err := s.renderer.Render(ctx, in)
	if err != nil {
		return "", fmt.Errorf("failed to render proforma %s: %w", p.Name, err)
	}
	key := s.documentKey(parent.Name, child.Name)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(body), s.renderer.ContentType(), int64(len(body))); err != nil {
		return "", fmt.Errorf("failed to store proforma %s: %w", p.Name, err)
	}

	fileName := proforma.AttachmentName(child.Name, s.renderer.Extension())
	a, err := s.attachments.Find(ctx, proforma.DoctypeSalesOrder, parent.Name, fileName)
	if errors.Is(err, shared.ErrNotFound) {
		a = &proforma.Attachment{
			BaseEntity:        shared.NewBaseEntity(),
			AttachedToDoctype: proforma.DoctypeSalesOrder,
			AttachedToName:    parent.Name,
			FileName:          fileName,
		}
	} else if err != nil {
		return key, err
	} else {
		a.Touch()
	}
	a.StorageKey = key
	a.ContentType = s.renderer.ContentType()
	a.Size = int64(len(body))
	return key, s.attachments.Save(ctx, a)
}

// FixGrandTotals recomputes the grand total of every proforma of parent from
// its lines and returns how many proformas were rewritten.
func (s *Service) FixGrandTotals(ctx context.Context, parentName string) (int, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "proforma", "fix_grand_totals", telemetry.AttrSalesOrder, parentName)
	defer span.End()

	fixed := 0
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		list, err := s.proformas.FindBySource(ctx, parentName)
		if err != nil {
			return err
		}
		for i := range list {
			p := &list[i]
			before := p.GrandTotal
			after := p.CalculateTotals()
			p.Touch()
			if err := s.proformas.Save(ctx, p); err != nil {
				return err
			}
			fixed++
			s.logger.Info("Proforma grand total fixed",
				zap.String("proforma", p.Name),
				zap.String("company", p.SupplierCompany),
				zap.String("before", before.String()),
				zap.String("after", after.String()),
			)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Fix Proforma Totals Error", zap.String("parent", parentName), zap.Error(err))
		telemetry.RecordError(span, err)
		return 0, err
	}
	return fixed, nil
}

// CreateResult wraps CreateForOrder in the status envelope used by the API
func (s *Service) CreateResult(ctx context.Context, parent string) CreateResult {
	names, err := s.CreateForOrder(ctx, parent)
	if err != nil {
		return CreateResult{Status: StatusError, Message: err.Error()}
	}
	return CreateResult{Status: StatusSuccess, ProformaName: names}
}

// FixTotalsResult wraps FixGrandTotals in the status envelope used by the API
func (s *Service) FixTotalsResult(ctx context.Context, parent string) FixTotalsResult {
	n, err := s.FixGrandTotals(ctx, parent)
	if err != nil {
		return FixTotalsResult{Status: StatusError, Message: err.Error()}
	}
	return FixTotalsResult{Status: StatusSuccess, FixedCount: n}
}

// Get retrieves a proforma by name
func (s *Service) Get(ctx context.Context, name string) (*ProformaResponse, error) {
	p, err := s.proformas.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	response := ToProformaResponse(p)
	return &response, nil
}

// ListForOrder returns the proformas generated for parent
func (s *Service) ListForOrder(ctx context.Context, parent string) ([]ProformaResponse, error) {
	if _, err := s.orders.FindByName(ctx, parent); err != nil {
		return nil, err
	}
	list, err := s.proformas.FindBySource(ctx, parent)
	if err != nil {
		return nil, err
	}
	out := make([]ProformaResponse, len(list))
	for i := range list {
		out[i] = ToProformaResponse(&list[i])
	}
	return out, nil
}

// OpenDocument opens the stored document of the named proforma
func (s *Service) OpenDocument(ctx context.Context, name string) (*Document, error) {
	a, err := s.documentAttachment(ctx, name)
	if err != nil {
		return nil, err
	}
	body, err := s.storage.Download(ctx, a.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open proforma document: %w", err)
	}
	return &Document{FileName: a.FileName, ContentType: a.ContentType, Size: a.Size, Body: body}, nil
}

// DocumentURL returns a time-limited download link for the named proforma's document
func (s *Service) DocumentURL(ctx context.Context, name string, expires time.Duration) (string, error) {
	a, err := s.documentAttachment(ctx, name)
	if err != nil {
		return "", err
	}
	return s.storage.DownloadURL(ctx, a.StorageKey, expires)
}

func (s *Service) documentAttachment(ctx context.Context, name string) (*proforma.Attachment, error) {
	p, err := s.proformas.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	fileName := proforma.AttachmentName(p.ChildSalesOrder, s.renderer.Extension())
	return s.attachments.Find(ctx, proforma.DoctypeSalesOrder, p.SourceSalesOrder, fileName)
}

func (s *Service) publishEvents(ctx context.Context, p *proforma.ProformaInvoice) {
	events := p.GetDomainEvents()
	p.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish proforma events",
			zap.String("proforma", p.Name), zap.Error(err))
	}
}
