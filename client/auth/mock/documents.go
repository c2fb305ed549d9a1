package mock

import (
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/viant/rag/schema"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"
)

const timeLayout = "2006-01-02T15:04:05"

// maxUploadSize bounds multipart bodies accepted by upload handlers.
const maxUploadSize = 32 << 20

func (s *Service) listDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	s.mu.Lock()
	var ret = make([]*schema.Document, 0)
	for _, doc := range s.documents {
		if doc.userID == u.ID {
			item := doc.Document
			ret = append(ret, &item)
		}
	}
	s.mu.Unlock()
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	writeJSON(w, http.StatusOK, ret)
}

func (s *Service) uploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	fileName, content, err := formFile(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	u := userFrom(r.Context())
	s.mu.Lock()
	doc := &document{
		Document: schema.Document{
			ID:               s.nextID(),
			FileName:         fileName,
			UploadDate:       time.Now().Format(timeLayout),
			Status:           schema.DocumentCompleted,
			PythonDocumentID: uuid.NewString(),
		},
		userID:  u.ID,
		content: content,
	}
	s.documents[doc.ID] = doc
	ret := doc.Document
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, &ret)
}

func (s *Service) deleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	u := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err = s.ownedDocument(u, id); err != nil {
		writeError(w, r, err)
		return
	}
	delete(s.documents, id)
	delete(s.history, id)
	w.WriteHeader(http.StatusNoContent)
}

// Document returns the uploaded content of a document.
func (s *Service) Document(id int64) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, false
	}
	return doc.content, true
}

// ownedDocument returns the document id of u; s.mu must be held.
func (s *Service) ownedDocument(u *user, id int64) (*document, error) {
	doc, ok := s.documents[id]
	if !ok || doc.userID != u.ID {
		return nil, newStatusError(http.StatusNotFound, "Document not found with id: "+strconv.FormatInt(id, 10))
	}
	return doc, nil
}

func formFile(r *http.Request) (string, []byte, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", nil, newStatusError(http.StatusBadRequest, "invalid multipart request")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, newStatusError(http.StatusBadRequest, "file part was missing")
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	if len(content) == 0 {
		return "", nil, newStatusError(http.StatusBadRequest, "file was empty")
	}
	return header.Filename, content, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, newStatusError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
