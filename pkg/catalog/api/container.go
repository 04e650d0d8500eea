package api

type ContainerCluster struct {
	ARN                          string            `json:"arn"`
	Name                         string            `json:"name"`
	Status                       string            `json:"status,omitempty"`
	RunningTasks                 int32             `json:"running_tasks"`
	PendingTasks                 int32             `json:"pending_tasks"`
	ActiveServices               int32             `json:"active_services"`
	RegisteredContainerInstances int32             `json:"registered_container_instances"`
	Tags                         map[string]string `json:"tags,omitempty"`
}

type ContainerService struct {
	ARN            string            `json:"arn"`
	Name           string            `json:"name"`
	ClusterARN     string            `json:"cluster_arn,omitempty"`
	Status         string            `json:"status,omitempty"`
	LaunchType     string            `json:"launch_type,omitempty"`
	TaskDefinition string            `json:"task_definition,omitempty"`
	DesiredCount   int32             `json:"desired_count"`
	RunningCount   int32             `json:"running_count"`
	PendingCount   int32             `json:"pending_count"`
	Tags           map[string]string `json:"tags,omitempty"`
}
