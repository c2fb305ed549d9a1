package schema

// DocumentStatus is the processing state of an uploaded document
type DocumentStatus string

const (
	DocumentUploading  DocumentStatus = "UPLOADING"
	DocumentProcessing DocumentStatus = "PROCESSING"
	DocumentCompleted  DocumentStatus = "COMPLETED"
	DocumentFailed     DocumentStatus = "FAILED"
)

// Document represents uploaded document metadata. UploadDate is the
// service's zone-less local date time, kept verbatim.
type Document struct {
	ID               int64          `json:"id"`
	FileName         string         `json:"fileName"`
	UploadDate       string         `json:"uploadDate"`
	Status           DocumentStatus `json:"status"`
	PythonDocumentID string         `json:"pythonDocumentId,omitempty"`
}

// Ready reports whether the document can be queried
func (d *Document) Ready() bool {
	return d.Status == DocumentCompleted
}
