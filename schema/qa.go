package schema

type (
	QaRequest struct {
		DocumentID int64  `json:"documentId"`
		Question   string `json:"question"`
	}

	QaResponse struct {
		Answer         string          `json:"answer"`
		Sources        []*Source       `json:"sources"`
		Success        bool            `json:"success"`
		DocumentID     string          `json:"document_id"`
		ProcessingInfo *ProcessingInfo `json:"processing_info,omitempty"`
	}

	// Source is a retrieved chunk backing an answer
	Source struct {
		Text           string  `json:"text"`
		Metadata       string  `json:"metadata"`
		RelevanceScore float64 `json:"relevance_score"`
		SectionType    string  `json:"section_type"`
	}

	ProcessingInfo struct {
		ChunksUsed        int    `json:"chunks_used"`
		QuestionProcessed bool   `json:"question_processed"`
		ModelUsed         string `json:"model_used"`
	}

	// QaHistory is a past question/answer exchange for a document
	QaHistory struct {
		Question  string `json:"question"`
		Answer    string `json:"answer"`
		Timestamp string `json:"timestamp"`
	}
)
