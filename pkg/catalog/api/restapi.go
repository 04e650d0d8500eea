package api

import "time"

type RestAPI struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	CreatedDate   *time.Time        `json:"created_date,omitempty"`
	EndpointTypes []string          `json:"endpoint_types,omitempty"`
	Stages        []Stage           `json:"stages,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`
}

type Stage struct {
	Name           string            `json:"name"`
	DeploymentID   string            `json:"deployment_id,omitempty"`
	Description    string            `json:"description,omitempty"`
	CacheEnabled   bool              `json:"cache_enabled"`
	TracingEnabled bool              `json:"tracing_enabled"`
	LastUpdated    *time.Time        `json:"last_updated,omitempty"`
	Tags           map[string]string `json:"tags,omitempty"`
}
