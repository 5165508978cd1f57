package models

// DocumentationRequest is the immutable input to one generation call.
type DocumentationRequest struct {
	Code            string `json:"code"`
	Language        string `json:"language"`
	Style           string `json:"style"`
	IncludeExamples bool   `json:"include_examples"`
	IncludeTypes    bool   `json:"include_types"`
}

// DocumentationResult is an insertion directive: place Text as new content
// immediately above InsertionLine, pushing the function down.
type DocumentationResult struct {
	InsertionLine int    `json:"insertion_line"`
	Text          string `json:"text"`
	SourceName    string `json:"source_name"`
}

// UsageStats is a snapshot of the daily quota counters.
type UsageStats struct {
	RequestsToday   int  `json:"requests_today"`
	RequestsTotal   int  `json:"requests_total"`
	DailyLimit      int  `json:"daily_limit"`
	UsingSharedPool bool `json:"using_shared_pool"`
}
