package client

import (
	"bytes"
	"context"
	"fmt"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/rag/schema"
	"io"
	"net/http"
	"path"
	"strconv"
)

func (c *Client) ListDocuments(ctx context.Context, options ...RequestOption) ([]*schema.Document, error) {
	return list[schema.Document](ctx, c, &request{method: http.MethodGet, path: schema.PathDocuments}, options...)
}

// UploadDocument uploads content as a multipart `file` named fileName.
func (c *Client) UploadDocument(ctx context.Context, fileName string, content io.Reader, options ...RequestOption) (*schema.Document, error) {
	req, err := multipartRequest(schema.PathDocuments, fileName, content)
	if err != nil {
		return nil, err
	}
	return send[schema.Document](ctx, c, req, options...)
}

// UploadDocumentURL uploads a document read from any afs URL (file://, mem://, s3://, ...).
func (c *Client) UploadDocumentURL(ctx context.Context, URL string, options ...RequestOption) (*schema.Document, error) {
	data, err := c.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	_, name := url.Split(URL, file.Scheme)
	return c.UploadDocument(ctx, name, bytes.NewReader(data), options...)
}

func (c *Client) DeleteDocument(ctx context.Context, id int64, options ...RequestOption) error {
	location := path.Join(schema.PathDocuments, strconv.FormatInt(id, 10))
	return exec(ctx, c, &request{method: http.MethodDelete, path: location}, options...)
}
