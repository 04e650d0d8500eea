package api

import "time"

// Secret is secret metadata only; the secret value is never read.
type Secret struct {
	ARN             string            `json:"arn"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	KmsKeyID        string            `json:"kms_key_id,omitempty"`
	RotationEnabled bool              `json:"rotation_enabled"`
	LastChanged     *time.Time        `json:"last_changed,omitempty"`
	LastAccessed    *time.Time        `json:"last_accessed,omitempty"`
	Policy          string            `json:"policy,omitempty"`
	Tags            map[string]string `json:"tags,omitempty"`
}
