// Package domain holds the reports DTOs
package domain

// ReportInfo describes one registered report type
type ReportInfo struct {
	ID          string   `json:"id"          example:"ballistic"`
	Name        string   `json:"name"        example:"Ballistic Test Report"`
	Description string   `json:"description" example:"Velocity summary tables with V0/V45 metrics."`
	Keywords    []string `json:"keywords"    example:"ballistic test,velocity"`
}

// ListResponse is the reports listing payload
type ListResponse struct {
	Reports []ReportInfo `json:"reports"`
}
