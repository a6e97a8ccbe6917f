package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// DocumentsClient implements k2.DocumentsClient.
type DocumentsClient struct {
	httpClient *http.Client
}

// NewDocumentsClient creates a new documents client.
func NewDocumentsClient(httpClient *http.Client) *DocumentsClient {
	return &DocumentsClient{httpClient: httpClient}
}

// Upload implements k2.DocumentsClient.Upload. The upload is accepted
// asynchronously; the returned job tracks ingestion.
func (c *DocumentsClient) Upload(ctx context.Context, corpusID string, request *k2.DocumentCreateRequest) (*k2.DocumentCreateResult, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/corpora/"+corpusID+"/documents", request)
	if err != nil {
		return nil, fmt.Errorf("uploading document: %w", err)
	}

	var result k2.DocumentCreateResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing upload result: %w", err)
	}

	return &result, nil
}

// Get implements k2.DocumentsClient.Get.
func (c *DocumentsClient) Get(ctx context.Context, docID string) (*k2.Document, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/documents/"+docID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	var document k2.Document

	err = json.Unmarshal(resp.Body, &document)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	return &document, nil
}

// List implements k2.DocumentsClient.List.
func (c *DocumentsClient) List(ctx context.Context, corpusID string, params *k2.ListParams) (*k2.DocumentList, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/corpora/"+corpusID+"/documents", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	var list k2.DocumentList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing document list: %w", err)
	}

	return &list, nil
}

// Iterate implements k2.DocumentsClient.Iterate.
func (c *DocumentsClient) Iterate(ctx context.Context, corpusID string, pageSize int) *k2.PaginationIterator[k2.Document] {
	fetch := func(ctx context.Context, limit, offset int) ([]k2.Document, *int, error) {
		list, err := c.List(ctx, corpusID, k2.NewListParams().WithLimit(limit).WithOffset(offset))
		if err != nil {
			return nil, nil, err
		}

		return list.Documents, list.Total, nil
	}

	return k2.NewPaginationIterator(ctx, fetch, pageSize)
}

// UpdateMetadata implements k2.DocumentsClient.UpdateMetadata.
func (c *DocumentsClient) UpdateMetadata(ctx context.Context, docID string, metadata map[string]interface{}) (*k2.Document, error) {
	body := map[string]interface{}{"metadata": metadata}

	resp, err := c.httpClient.Patch(ctx, "/v1/documents/"+docID+"/metadata", body)
	if err != nil {
		return nil, fmt.Errorf("updating document metadata: %w", err)
	}

	var document k2.Document

	err = json.Unmarshal(resp.Body, &document)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	return &document, nil
}

// Delete implements k2.DocumentsClient.Delete.
func (c *DocumentsClient) Delete(ctx context.Context, docID string) (*k2.DocumentDeleteResult, error) {
	resp, err := c.httpClient.Delete(ctx, "/v1/documents/"+docID)
	if err != nil {
		return nil, fmt.Errorf("deleting document: %w", err)
	}

	var result k2.DocumentDeleteResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing delete result: %w", err)
	}

	return &result, nil
}
