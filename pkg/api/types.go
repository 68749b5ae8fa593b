package api

import "github.com/ashenlab/paramforge/pkg/codec"

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port int
	Bind string
}

// TableSummary lists one loaded table
type TableSummary struct {
	Entry   string `json:"entry"`
	Param   string `json:"param"`
	Entries int    `json:"entries"`
}

// RowSummary lists one entry of a table
type RowSummary struct {
	ID   int32  `json:"id"`
	Name string `json:"name,omitempty"`
}

// TableDetail describes one table with its row listing
type TableDetail struct {
	Entry  string       `json:"entry"`
	Param  string       `json:"param"`
	Magic  [3]uint16    `json:"magic"`
	Fields []string     `json:"fields"`
	Rows   []RowSummary `json:"rows"`
}

// FieldValue is one (field, value) pair in schema order
type FieldValue struct {
	Name  string      `json:"name"`
	Value codec.Value `json:"value"`
}

// EntryDetail describes one entry with its decoded field values
type EntryDetail struct {
	ID     int32        `json:"id"`
	Name   string       `json:"name,omitempty"`
	Fields []FieldValue `json:"fields"`
}
