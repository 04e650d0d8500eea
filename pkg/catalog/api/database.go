package api

type Database struct {
	ARN                string            `json:"arn"`
	Identifier         string            `json:"identifier"`
	Engine             string            `json:"engine,omitempty"`
	EngineVersion      string            `json:"engine_version,omitempty"`
	Status             string            `json:"status,omitempty"`
	InstanceClass      string            `json:"instance_class,omitempty"`
	AllocatedStorageGB int32             `json:"allocated_storage_gb,omitempty"`
	MultiAZ            bool              `json:"multi_az"`
	Endpoint           string            `json:"endpoint,omitempty"`
	Port               int32             `json:"port,omitempty"`
	Tags               map[string]string `json:"tags,omitempty"`
}
