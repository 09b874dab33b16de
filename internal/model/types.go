package model

type MCQ struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   string   `json:"answer"`
}

type GenerateRequest struct {
	Paragraph    string `json:"paragraph"`
	NumQuestions *int   `json:"numQuestions" binding:"omitempty,gte=0"`
}

type GenerateResponse struct {
	MCQs []MCQ `json:"mcqs"`
}

type PDFRequest struct {
	MCQs []MCQ `json:"mcqs"`
}

// GenerateErrorResponse keeps the mcqs key present on failures so clients can
// always read the list.
type GenerateErrorResponse struct {
	Error string `json:"error"`
	MCQs  []MCQ  `json:"mcqs"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
