package client

import (
	"context"
	"github.com/viant/rag/schema"
	"golang.org/x/oauth2"
	"io"
)

// Interface defines the client operations exposed by Client
type Interface interface {
	// Register creates an account and starts a session
	Register(ctx context.Context, params *schema.RegisterRequest, options ...RequestOption) (*oauth2.Token, error)

	// Authenticate logs in and starts a session
	Authenticate(ctx context.Context, params *schema.AuthenticationRequest, options ...RequestOption) (*oauth2.Token, error)

	// Refresh rotates the session credential pair
	Refresh(ctx context.Context) (*oauth2.Token, error)

	// Logout ends the session
	Logout(ctx context.Context, options ...RequestOption) error

	// Me returns the current user
	Me(ctx context.Context, options ...RequestOption) (*schema.User, error)

	// UpdateMe updates the current user's name
	UpdateMe(ctx context.Context, params *schema.UpdateUserRequest, options ...RequestOption) error

	// ChangePassword changes the current user's password
	ChangePassword(ctx context.Context, params *schema.ChangePasswordRequest, options ...RequestOption) error

	// DeleteAccount deletes the current user
	DeleteAccount(ctx context.Context, options ...RequestOption) error

	// ListDocuments lists uploaded documents
	ListDocuments(ctx context.Context, options ...RequestOption) ([]*schema.Document, error)

	// UploadDocument uploads a document
	UploadDocument(ctx context.Context, fileName string, content io.Reader, options ...RequestOption) (*schema.Document, error)

	// UploadDocumentURL uploads a document read from a storage URL
	UploadDocumentURL(ctx context.Context, URL string, options ...RequestOption) (*schema.Document, error)

	// DeleteDocument deletes a document
	DeleteDocument(ctx context.Context, id int64, options ...RequestOption) error

	// Ask asks a question about a document
	Ask(ctx context.Context, params *schema.QaRequest, options ...RequestOption) (*schema.QaResponse, error)

	// History returns the chat history of a document
	History(ctx context.Context, documentID int64, options ...RequestOption) ([]*schema.QaHistory, error)

	// UploadFacultyList uploads a faculty list for publication aggregation
	UploadFacultyList(ctx context.Context, fileName string, content io.Reader, articlesLimit int, options ...RequestOption) ([]*schema.FacultySummary, error)

	// FacultyBatches lists faculty uploads
	FacultyBatches(ctx context.Context, options ...RequestOption) ([]*schema.FacultyUploadBatch, error)

	// BatchSummaries lists faculty summaries of an upload
	BatchSummaries(ctx context.Context, batchID int64, options ...RequestOption) ([]*schema.FacultySummary, error)

	// DeleteFacultyBatch deletes a faculty upload
	DeleteFacultyBatch(ctx context.Context, batchID int64, options ...RequestOption) error

	// FacultyProfile returns a faculty profile
	FacultyProfile(ctx context.Context, facultyID string, options ...RequestOption) (*schema.FacultyProfile, error)

	// FacultyArticles returns a page of faculty articles
	FacultyArticles(ctx context.Context, facultyID string, page, size int, options ...RequestOption) ([]*schema.Article, error)

	// FacultySummaryText returns a generated publication summary
	FacultySummaryText(ctx context.Context, facultyID string, fromYear, toYear int, options ...RequestOption) (string, error)

	// ExportFacultyProfile downloads a faculty report
	ExportFacultyProfile(ctx context.Context, facultyID string, format schema.ExportFormat, options ...RequestOption) (*schema.FacultyReport, error)
}

var _ Interface = (*Client)(nil)
