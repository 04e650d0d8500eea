package api

type Function struct {
	ARN            string            `json:"arn"`
	Name           string            `json:"name"`
	Runtime        string            `json:"runtime,omitempty"`
	Handler        string            `json:"handler,omitempty"`
	Description    string            `json:"description,omitempty"`
	MemorySizeMB   int32             `json:"memory_size_mb,omitempty"`
	TimeoutSeconds int32             `json:"timeout_seconds,omitempty"`
	LastModified   string            `json:"last_modified,omitempty"`
	Policy         string            `json:"policy,omitempty"`
	Tags           map[string]string `json:"tags,omitempty"`
}

// FunctionPolicy is the resource-based policy sub-resource of a function.
type FunctionPolicy struct {
	Function   string `json:"function"`
	Policy     string `json:"policy"`
	RevisionID string `json:"revision_id,omitempty"`
}
