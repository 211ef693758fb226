// Package domain holds the conversion DTOs
package domain

// MarkdownInput is the body for markdown-only conversion
type MarkdownInput struct {
	Markdown string `json:"markdown"  validate:"required"`
	ReportID string `json:"report_id" validate:"omitempty,min=1"`
	Model    string `json:"model"     validate:"omitempty,min=1"`
}

// Report identifies the selected report type in a success payload.
// Score and MatchedKeywords are absent when the caller selected the
// report explicitly
type Report struct {
	ID              string   `json:"id"   example:"ballistic"`
	Name            string   `json:"name" example:"Ballistic Test Report"`
	Score           *int     `json:"score,omitempty" example:"3"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}

// Candidate is one conflicting report type in a 409 payload
type Candidate struct {
	ID    string `json:"id"    example:"ballistic"`
	Name  string `json:"name"  example:"Ballistic Test Report"`
	Score int    `json:"score" example:"2"`
}

// Conversion is the outcome of one markdown dispatch. On a no-match
// Data and Report are empty and Message carries the advisory
type Conversion struct {
	Data    map[string]any `json:"json"`
	Report  *Report        `json:"report"`
	Message string         `json:"message,omitempty"`
}

// OriginalFile points at the retained upload
type OriginalFile struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	ContentType  string `json:"content_type"`
	OriginalName string `json:"original_name"`
}

// UploadSettings echoes the OCR settings used for an upload
type UploadSettings struct {
	Device     string `json:"device"      example:"cpu"`
	NumThreads int    `json:"num_threads" example:"8"`
}

// UploadResult is the full document-upload conversion payload
type UploadResult struct {
	Success      bool           `json:"success"`
	Filename     string         `json:"filename"`
	Markdown     string         `json:"markdown"`
	Data         map[string]any `json:"json"`
	Report       *Report        `json:"report"`
	Message      string         `json:"message,omitempty"`
	OriginalFile OriginalFile   `json:"original_file"`
	Settings     UploadSettings `json:"settings"`
}
