package schema

// Paths relative to the API base URL.
const (
	PathRegister       = "auth/register"
	PathAuthenticate   = "auth/authenticate"
	PathRefreshToken   = "auth/refresh-token"
	PathLogout         = "auth/logout"
	PathUserMe         = "users/me"
	PathUserPassword   = "users/password"
	PathDocuments      = "documents"
	PathAsk            = "qa/ask"
	PathHistory        = "qa/history"
	PathPublications   = "publications"
	PathFacultyUpload  = "publications/upload"
	PathFacultyBatches = "publications/batches"
	PathFacultyExport  = "publications/export"
	PathFacultySummary = "publications/summary"
	PathFacultyProfile = "publications/profile"
	PathFacultyArticle = "publications/articles"
)

// DefaultBaseURL is the base URL of a locally running service.
const DefaultBaseURL = "http://localhost:8081/api/v1"
