package schema

import "strings"

// ExportFormat selects the faculty report document type
type ExportFormat string

const (
	ExportWord  ExportFormat = "word"
	ExportExcel ExportFormat = "excel"
)

// Extension returns the report file extension
func (f ExportFormat) Extension() string {
	if strings.EqualFold(string(f), string(ExportWord)) {
		return "docx"
	}
	return "xlsx"
}

type (
	FacultySummary struct {
		FacultyID        string `json:"faculty_id"`
		Name             string `json:"name"`
		PublicationCount int    `json:"publication_count"`
	}

	FacultyProfile struct {
		FacultyID             string   `json:"faculty_id"`
		Name                  string   `json:"name"`
		Affiliations          string   `json:"affiliations"`
		GoogleScholarAuthorID string   `json:"google_scholar_author_id"`
		Thumbnail             string   `json:"thumbnail"`
		Interests             []string `json:"interests"`
		TotalCitations        int      `json:"total_citations"`
		HIndex                int      `json:"h_index"`
		I10Index              int      `json:"i10_index"`
		Summary               string   `json:"summary,omitempty"`
	}

	Article struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		Authors     string `json:"authors"`
		Publication string `json:"publication"`
		Citations   int    `json:"citations"`
		Year        int    `json:"year"`
	}

	FacultyUploadBatch struct {
		ID           int64  `json:"id"`
		FileName     string `json:"fileName"`
		UploadDate   string `json:"uploadDate"`
		FacultyCount int    `json:"facultyCount"`
	}

	// FacultyReport is an exported faculty profile document
	FacultyReport struct {
		FileName    string
		ContentType string
		Data        []byte
	}
)
