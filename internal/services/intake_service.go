package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"stockroom/internal/catalog"
	"stockroom/internal/domain"
	"stockroom/internal/intake"
	applog "stockroom/internal/log"
	"stockroom/internal/validate"
)

const MsgProductCreated = "Product created successfully"

var ErrUnauthenticated = errors.New("you must be logged in to access this route")

// PersistenceError wraps a failure of the product store. Its text is the
// store's own.
type PersistenceError struct{ Err error }

func (e *PersistenceError) Error() string { return e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// ProductStore persists a validated product with its attributes.
type ProductStore interface {
	Create(ctx context.Context, p domain.Product, ownerID string, attrs []domain.Attribute) (domain.Product, error)
}

// ImageIngester uploads submitted images and returns the URLs that made it.
type ImageIngester interface {
	Ingest(ctx context.Context, files []intake.File) []string
}

type IntakeService struct {
	Images ImageIngester
	Store  ProductStore
	Fields *catalog.Registry
}

func NewIntakeService(images ImageIngester, store ProductStore, fields *catalog.Registry) *IntakeService {
	if fields == nil {
		fields = catalog.Default()
	}
	return &IntakeService{Images: images, Store: store, Fields: fields}
}

// Submit runs one product submission: images, normalization, validation and
// persistence, in that order, stopping at the first failure. It never
// returns an error; failures are reported through the result. Images already
// uploaded are not removed when a later step fails.
func (s *IntakeService) Submit(ctx context.Context, userID string, payload intake.Payload) domain.IntakeResult {
	req := applog.Request(ctx)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		applog.Security(req, "intake.unauthenticated", nil)
		return failure(ErrUnauthenticated)
	}

	urls := s.Images.Ingest(ctx, payload.Files)

	n := intake.Normalize(payload.Fields)
	base := n.Product
	if len(urls) > 0 {
		base.ImageURLs = urls
	}
	s.checkAttributeKinds(req, base.Category, n.Attributes)

	valid, err := validate.Product(base)
	if err != nil {
		applog.Warn(req, "intake.validation.fail", err, map[string]any{"owner_id": userID, "name": base.Name})
		return failure(err)
	}

	stored, err := s.Store.Create(ctx, valid, userID, n.Attributes)
	if err != nil {
		applog.Error(req, "intake.persist.fail", err, map[string]any{"owner_id": userID, "images": len(urls)})
		return failure(&PersistenceError{Err: err})
	}

	applog.Audit(req, "intake.create", map[string]any{
		"product_id": stored.ID,
		"owner_id":   userID,
		"category":   string(stored.Category),
		"images":     len(stored.ImageURLs),
		"attributes": len(n.Attributes),
	})
	return domain.IntakeResult{Message: MsgProductCreated, Product: &stored}
}

// checkAttributeKinds logs category fields whose value does not fit the
// declared kind. The values are still stored as submitted.
func (s *IntakeService) checkAttributeKinds(req *fiber.Ctx, c domain.Category, attrs []domain.Attribute) {
	for _, a := range attrs {
		f, ok := s.Fields.Field(c, a.Key)
		if !ok {
			continue
		}
		v := strings.TrimSpace(a.Value)
		var fits bool
		switch f.Kind {
		case domain.KindNumber:
			_, err := strconv.ParseFloat(v, 64)
			fits = v == "" || err == nil
		case domain.KindBoolean:
			_, err := strconv.ParseBool(v)
			fits = v == "" || err == nil
		default:
			fits = true
		}
		if !fits {
			applog.Warn(req, "intake.attribute.kind_mismatch", nil, map[string]any{
				"category": string(c), "field": f.Label, "kind": string(f.Kind), "value": a.Value,
			})
		}
	}
}

func failure(err error) domain.IntakeResult {
	return domain.IntakeResult{Message: err.Error(), Err: err}
}
