package services

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/effyhq/effy-cli/internal/client/models"
)

// DocumentService exposes the document operations of the platform. It is a
// thin consumer of the shared request pipeline: token attach, error
// normalization and session teardown all happen below it.
type DocumentService interface {
	List(ctx context.Context, params models.ListParams) ([]models.Document, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	Create(ctx context.Context, payload models.DocumentCreate) (*models.Document, error)
	Update(ctx context.Context, id string, fields models.DocumentUpdate) (*models.Document, error)
	Delete(ctx context.Context, id string) error
	Upload(ctx context.Context, title, fileName string, file io.Reader) (*models.Document, error)
}

type documentService struct {
	api Caller
}

// NewDocumentService constructs a DocumentService over the given caller.
func NewDocumentService(caller Caller) DocumentService {
	return &documentService{api: caller}
}

func (d *documentService) List(ctx context.Context, params models.ListParams) ([]models.Document, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	path := "/documents"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var docs []models.Document
	if err := d.api.Get(ctx, path, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (d *documentService) Get(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := d.api.Get(ctx, "/documents/"+url.PathEscape(id), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *documentService) Create(ctx context.Context, payload models.DocumentCreate) (*models.Document, error) {
	var doc models.Document
	if err := d.api.Post(ctx, "/documents", payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *documentService) Update(ctx context.Context, id string, fields models.DocumentUpdate) (*models.Document, error) {
	var doc models.Document
	if err := d.api.Put(ctx, "/documents/"+url.PathEscape(id), fields, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *documentService) Delete(ctx context.Context, id string) error {
	return d.api.Delete(ctx, "/documents/"+url.PathEscape(id), nil)
}

func (d *documentService) Upload(ctx context.Context, title, fileName string, file io.Reader) (*models.Document, error) {
	fields := map[string]string{}
	if title != "" {
		fields["title"] = title
	}

	var doc models.Document
	if err := d.api.Upload(ctx, "/documents/upload", "file", fileName, file, fields, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
