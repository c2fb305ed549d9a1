package client

import (
	"context"
	"fmt"
	"github.com/viant/rag/schema"
	"io"
	"mime"
	"net/http"
	neturl "net/url"
	"path"
	"strconv"
)

// UploadFacultyList uploads a faculty spreadsheet (xlsx/csv) and returns the
// aggregated summaries. articlesLimit caps fetched articles per faculty; zero
// leaves the service default.
func (c *Client) UploadFacultyList(ctx context.Context, fileName string, content io.Reader, articlesLimit int, options ...RequestOption) ([]*schema.FacultySummary, error) {
	req, err := multipartRequest(schema.PathFacultyUpload, fileName, content)
	if err != nil {
		return nil, err
	}
	if articlesLimit > 0 {
		req.query = neturl.Values{"articlesLimit": {strconv.Itoa(articlesLimit)}}
	}
	return list[schema.FacultySummary](ctx, c, req, options...)
}

func (c *Client) FacultyBatches(ctx context.Context, options ...RequestOption) ([]*schema.FacultyUploadBatch, error) {
	return list[schema.FacultyUploadBatch](ctx, c, &request{method: http.MethodGet, path: schema.PathFacultyBatches}, options...)
}

func (c *Client) BatchSummaries(ctx context.Context, batchID int64, options ...RequestOption) ([]*schema.FacultySummary, error) {
	location := path.Join(schema.PathFacultyBatches, strconv.FormatInt(batchID, 10), "summaries")
	return list[schema.FacultySummary](ctx, c, &request{method: http.MethodGet, path: location}, options...)
}

func (c *Client) DeleteFacultyBatch(ctx context.Context, batchID int64, options ...RequestOption) error {
	location := path.Join(schema.PathFacultyBatches, strconv.FormatInt(batchID, 10))
	return exec(ctx, c, &request{method: http.MethodDelete, path: location}, options...)
}

func (c *Client) FacultyProfile(ctx context.Context, facultyID string, options ...RequestOption) (*schema.FacultyProfile, error) {
	location := path.Join(schema.PathFacultyProfile, neturl.PathEscape(facultyID))
	return send[schema.FacultyProfile](ctx, c, &request{method: http.MethodGet, path: location}, options...)
}

// FacultyArticles returns one page of a faculty member's articles.
func (c *Client) FacultyArticles(ctx context.Context, facultyID string, page, size int, options ...RequestOption) ([]*schema.Article, error) {
	location := path.Join(schema.PathFacultyArticle, neturl.PathEscape(facultyID))
	query := neturl.Values{"page": {strconv.Itoa(page)}}
	if size > 0 {
		query.Set("size", strconv.Itoa(size))
	}
	return list[schema.Article](ctx, c, &request{method: http.MethodGet, path: location, query: query}, options...)
}

// FacultySummaryText returns the generated publication summary; zero years are unbounded.
func (c *Client) FacultySummaryText(ctx context.Context, facultyID string, fromYear, toYear int, options ...RequestOption) (string, error) {
	query := neturl.Values{}
	if fromYear > 0 {
		query.Set("fromYear", strconv.Itoa(fromYear))
	}
	if toYear > 0 {
		query.Set("toYear", strconv.Itoa(toYear))
	}
	location := path.Join(schema.PathFacultySummary, neturl.PathEscape(facultyID))
	resp, err := c.do(ctx, &request{method: http.MethodGet, path: location, query: query}, options...)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read summary of %v: %w", facultyID, err)
	}
	return string(data), nil
}

// ExportFacultyProfile downloads the faculty report as a Word or Excel document.
func (c *Client) ExportFacultyProfile(ctx context.Context, facultyID string, format schema.ExportFormat, options ...RequestOption) (*schema.FacultyReport, error) {
	location := path.Join(schema.PathFacultyExport, neturl.PathEscape(facultyID))
	query := neturl.Values{"format": {string(format)}}
	resp, err := c.do(ctx, &request{method: http.MethodGet, path: location, query: query}, options...)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read report of %v: %w", facultyID, err)
	}
	ret := &schema.FacultyReport{
		FileName:    facultyID + "_report." + format.Extension(),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		ret.FileName = path.Base(params["filename"])
	}
	return ret, nil
}

func list[T any](ctx context.Context, c *Client, req *request, options ...RequestOption) ([]*T, error) {
	ret, err := send[[]*T](ctx, c, req, options...)
	if err != nil {
		return nil, err
	}
	return *ret, nil
}
