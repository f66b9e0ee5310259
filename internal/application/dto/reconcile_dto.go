package dto

// LowInventoryResponse items at or below the threshold, ascending by
// quantity.
type LowInventoryResponse struct {
	Threshold int            `json:"threshold"`
	Items     []ItemResponse `json:"items"`
}

// DistributionResponse label/value pairs for the dashboard charts.
type DistributionResponse struct {
	By     string       `json:"by"` // category | warehouse | transaction_type
	Slices []LabelValue `json:"slices"`
}
