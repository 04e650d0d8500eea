package api

import "time"

type Bucket struct {
	ARN                 string            `json:"arn"`
	Name                string            `json:"name"`
	Region              string            `json:"region,omitempty"`
	CreationDate        *time.Time        `json:"creation_date,omitempty"`
	Versioning          string            `json:"versioning,omitempty"`
	Encryption          string            `json:"encryption,omitempty"`
	LifecycleRules      int               `json:"lifecycle_rules,omitempty"`
	PublicAccessBlocked *bool             `json:"public_access_blocked,omitempty"`
	Tags                map[string]string `json:"tags,omitempty"`
}
