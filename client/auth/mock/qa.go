package mock

import (
	"fmt"
	"github.com/viant/rag/schema"
	"net/http"
	"strings"
	"time"
)

func (s *Service) askHandler(w http.ResponseWriter, r *http.Request) {
	req := &schema.QaRequest{}
	if err := decode(r, req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, r, newStatusError(http.StatusBadRequest, "question cannot be empty"))
		return
	}
	u := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.ownedDocument(u, req.DocumentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	excerpt := string(doc.content)
	if len(excerpt) > 200 {
		excerpt = excerpt[:200]
	}
	answer := fmt.Sprintf("%v answers %q with: %v", doc.FileName, req.Question, excerpt)
	s.history[doc.ID] = append(s.history[doc.ID], &schema.QaHistory{
		Question:  req.Question,
		Answer:    answer,
		Timestamp: time.Now().Format(timeLayout),
	})
	writeJSON(w, http.StatusOK, &schema.QaResponse{
		Answer:     answer,
		Success:    true,
		DocumentID: doc.PythonDocumentID,
		Sources: []*schema.Source{
			{Text: excerpt, Metadata: doc.FileName, RelevanceScore: 1, SectionType: "body"},
		},
		ProcessingInfo: &schema.ProcessingInfo{ChunksUsed: 1, QuestionProcessed: true, ModelUsed: "mock"},
	})
}

func (s *Service) historyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "documentId")
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
	ret := append(make([]*schema.QaHistory, 0), s.history[id]...)
	writeJSON(w, http.StatusOK, ret)
}
