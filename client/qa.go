package client

import (
	"context"
	"github.com/viant/rag/schema"
	"net/http"
	"path"
	"strconv"
)

// Ask asks a question about a processed document.
func (c *Client) Ask(ctx context.Context, params *schema.QaRequest, options ...RequestOption) (*schema.QaResponse, error) {
	req, err := jsonRequest(http.MethodPost, schema.PathAsk, params)
	if err != nil {
		return nil, err
	}
	return send[schema.QaResponse](ctx, c, req, options...)
}

// History returns the question/answer exchanges recorded for a document.
func (c *Client) History(ctx context.Context, documentID int64, options ...RequestOption) ([]*schema.QaHistory, error) {
	location := path.Join(schema.PathHistory, strconv.FormatInt(documentID, 10))
	return list[schema.QaHistory](ctx, c, &request{method: http.MethodGet, path: location}, options...)
}
