package api

import "time"

// Parameter is SSM parameter metadata. Values are deliberately never
// fetched: they may be SecureString material and a catalog has no business
// decrypting them.
type Parameter struct {
	Name         string            `json:"name"`
	Type         string            `json:"type,omitempty"`
	Tier         string            `json:"tier,omitempty"`
	DataType     string            `json:"data_type,omitempty"`
	Description  string            `json:"description,omitempty"`
	Version      int64             `json:"version,omitempty"`
	LastModified *time.Time        `json:"last_modified,omitempty"`
	Tags         map[string]string `json:"tags,omitempty"`
}
