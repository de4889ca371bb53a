package dto

import "time"

// InstanceStats holds usage numbers for one running instance of a service
type InstanceStats struct {
	Name        string     `json:"name"`
	ServiceName string     `json:"serviceName"`
	Phase       string     `json:"phase"`
	Restarts    int32      `json:"restarts"`
	CPU         string     `json:"cpu,omitempty"`
	Memory      string     `json:"memory,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
}

// InstanceStatsResponse wraps the instances of one app
type InstanceStatsResponse struct {
	AppID     string          `json:"appId"`
	Instances []InstanceStats `json:"instances"`
}
