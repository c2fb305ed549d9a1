package mock

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/viant/rag/schema"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

const defaultPageSize = 10

// uploadFacultyHandler accepts a CSV of `faculty_id,name` rows.
func (s *Service) uploadFacultyHandler(w http.ResponseWriter, r *http.Request) {
	fileName, content, err := formFile(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit := -1
	if value := r.URL.Query().Get("articlesLimit"); value != "" {
		if limit, err = strconv.Atoi(value); err != nil || limit < 0 {
			writeError(w, r, newStatusError(http.StatusBadRequest, "invalid articlesLimit"))
			return
		}
	}
	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	if err != nil {
		writeError(w, r, newStatusError(http.StatusBadRequest, "invalid faculty list: "+err.Error()))
		return
	}
	if len(records) > 0 && strings.EqualFold(strings.TrimSpace(records[0][0]), "faculty_id") {
		records = records[1:]
	}
	u := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	var summaries = make([]*schema.FacultySummary, 0, len(records))
	for _, record := range records {
		if len(record) < 2 {
			writeError(w, r, newStatusError(http.StatusBadRequest, "faculty row requires id and name"))
			return
		}
		id, name := strings.TrimSpace(record[0]), strings.TrimSpace(record[1])
		member, ok := s.faculty[id]
		if !ok {
			member = &faculty{profile: &schema.FacultyProfile{FacultyID: id, Name: name}}
			s.faculty[id] = member
		}
		count := len(member.articles)
		if limit >= 0 && count > limit {
			count = limit
		}
		summaries = append(summaries, &schema.FacultySummary{FacultyID: id, Name: member.profile.Name, PublicationCount: count})
	}
	aBatch := &batch{
		FacultyUploadBatch: schema.FacultyUploadBatch{
			ID:           s.nextID(),
			FileName:     fileName,
			UploadDate:   time.Now().Format(timeLayout),
			FacultyCount: len(summaries),
		},
		userID:    u.ID,
		summaries: summaries,
	}
	s.batches[aBatch.ID] = aBatch
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Service) batchesHandler(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	s.mu.Lock()
	var ret = make([]*schema.FacultyUploadBatch, 0)
	for _, item := range s.batches {
		if item.userID == u.ID {
			uploadBatch := item.FacultyUploadBatch
			ret = append(ret, &uploadBatch)
		}
	}
	s.mu.Unlock()
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID > ret[j].ID })
	writeJSON(w, http.StatusOK, ret)
}

func (s *Service) batchSummariesHandler(w http.ResponseWriter, r *http.Request) {
	s.withBatch(w, r, func(aBatch *batch) {
		writeJSON(w, http.StatusOK, aBatch.summaries)
	})
}

func (s *Service) deleteBatchHandler(w http.ResponseWriter, r *http.Request) {
	s.withBatch(w, r, func(aBatch *batch) {
		delete(s.batches, aBatch.ID)
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *Service) withBatch(w http.ResponseWriter, r *http.Request, fn func(aBatch *batch)) {
	id, err := pathID(r, "batchId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	u := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	aBatch, ok := s.batches[id]
	if !ok || aBatch.userID != u.ID {
		writeError(w, r, newStatusError(http.StatusNotFound, fmt.Sprintf("Batch not found with id: %v", id)))
		return
	}
	fn(aBatch)
}

func (s *Service) profileHandler(w http.ResponseWriter, r *http.Request) {
	s.withFaculty(w, r, func(member *faculty) {
		writeJSON(w, http.StatusOK, member.profile)
	})
}

func (s *Service) articlesHandler(w http.ResponseWriter, r *http.Request) {
	page, size := 0, defaultPageSize
	query := r.URL.Query()
	var err error
	if value := query.Get("page"); value != "" {
		if page, err = strconv.Atoi(value); err != nil || page < 0 {
			writeError(w, r, newStatusError(http.StatusBadRequest, "invalid page"))
			return
		}
	}
	if value := query.Get("size"); value != "" {
		if size, err = strconv.Atoi(value); err != nil || size <= 0 {
			writeError(w, r, newStatusError(http.StatusBadRequest, "invalid size"))
			return
		}
	}
	if page > math.MaxInt/size {
		writeError(w, r, newStatusError(http.StatusBadRequest, "page out of range"))
		return
	}
	s.withFaculty(w, r, func(member *faculty) {
		ret := make([]*schema.Article, 0)
		if from := page * size; from < len(member.articles) {
			to := len(member.articles)
			if size < to-from {
				to = from + size
			}
			ret = append(ret, member.articles[from:to]...)
		}
		writeJSON(w, http.StatusOK, ret)
	})
}

func (s *Service) summaryHandler(w http.ResponseWriter, r *http.Request) {
	fromYear, _ := strconv.Atoi(r.URL.Query().Get("fromYear"))
	toYear, _ := strconv.Atoi(r.URL.Query().Get("toYear"))
	s.withFaculty(w, r, func(member *faculty) {
		count := 0
		for _, article := range member.articles {
			if (fromYear == 0 || article.Year >= fromYear) && (toYear == 0 || article.Year <= toYear) {
				count++
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintf(w, "%v published %v articles", member.profile.Name, count)
	})
}

func (s *Service) exportHandler(w http.ResponseWriter, r *http.Request) {
	format := schema.ExportFormat(strings.ToLower(r.URL.Query().Get("format")))
	if format == "" {
		format = schema.ExportWord
	}
	if format != schema.ExportWord && format != schema.ExportExcel {
		writeError(w, r, newStatusError(http.StatusBadRequest, "unsupported format: "+string(format)))
		return
	}
	s.withFaculty(w, r, func(member *faculty) {
		contentType := "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		if format == schema.ExportExcel {
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%v_report.%v"`, member.profile.FacultyID, format.Extension()))
		_, _ = fmt.Fprintf(w, "%v\n%v\n", member.profile.Name, member.profile.Affiliations)
		for _, article := range member.articles {
			_, _ = fmt.Fprintf(w, "%v (%v)\n", article.Title, article.Year)
		}
	})
}

func (s *Service) withFaculty(w http.ResponseWriter, r *http.Request, fn func(member *faculty)) {
	id := chi.URLParam(r, "facultyId")
	s.mu.Lock()
	defer s.mu.Unlock()
	member, ok := s.faculty[id]
	if !ok {
		writeError(w, r, newStatusError(http.StatusNotFound, "Faculty not found: "+id))
		return
	}
	fn(member)
}
