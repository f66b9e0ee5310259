package dto

// ErrorResponse is the uniform error body returned by the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse echoes the pagination of a list request.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// LabelValue is one slice of a distribution chart.
type LabelValue struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}
