package api

// Account is one registry entry as exposed over HTTP.
type Account struct {
	Name      string `json:"name"`
	AccountID string `json:"account_id"`
	Region    string `json:"region"`
	RoleArn   string `json:"role_arn"`
}

// AccountStatus reports whether the service can currently assume into the
// account and who it becomes when it does.
type AccountStatus struct {
	Account   string `json:"account"`
	Reachable bool   `json:"reachable"`
	CallerArn string `json:"caller_arn,omitempty"`
	AccountID string `json:"account_id,omitempty"`
	Error     string `json:"error,omitempty"`
}
