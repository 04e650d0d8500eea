package api

import "time"

type Repository struct {
	ARN                string            `json:"arn"`
	Name               string            `json:"name"`
	URI                string            `json:"uri,omitempty"`
	CreatedAt          *time.Time        `json:"created_at,omitempty"`
	ImageTagMutability string            `json:"image_tag_mutability,omitempty"`
	ScanOnPush         bool              `json:"scan_on_push"`
	LifecyclePolicy    string            `json:"lifecycle_policy,omitempty"`
	Policy             string            `json:"policy,omitempty"`
	Tags               map[string]string `json:"tags,omitempty"`
}

// Image is one pushed image of a repository, returned by the peek-style
// images listing.
type Image struct {
	Digest    string     `json:"digest"`
	Tags      []string   `json:"tags,omitempty"`
	SizeBytes int64      `json:"size_bytes,omitempty"`
	PushedAt  *time.Time `json:"pushed_at,omitempty"`
}
