package models

// FunctionChunkPayload is the Qdrant payload stored for each indexed
// function record. Field names are part of the stored-data contract.
type FunctionChunkPayload struct {
	FilePath     string   `json:"file_path"`
	Language     string   `json:"language"`
	NodeType     string   `json:"node_type"`
	NodeName     string   `json:"node_name"`
	StartLine    int      `json:"start_line"`
	EndLine      int      `json:"end_line"`
	CodeHash     string   `json:"code_hash"`
	Content      string   `json:"content"`
	ContractName string   `json:"contract_name"`
	Modifiers    []string `json:"modifiers"`
	Visibility   string   `json:"visibility"`
	NodeCount    int      `json:"node_count"`
}

// SearchResult is one scored hit returned by the search command.
type SearchResult struct {
	Score   float64              `json:"score"`
	Payload FunctionChunkPayload `json:"payload"`
}
