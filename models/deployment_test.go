package models

import (
	"testing"
)

func TestDeploymentIsFinished(t *testing.T) {
	tests := []struct {
		status DeploymentStatus
		want   bool
	}{
		{DeploymentStatusPending, false},
		{DeploymentStatusDeploying, false},
		{DeploymentStatusRunning, true},
		{DeploymentStatusFailed, true},
	}

	for _, tt := range tests {
		d := Deployment{Status: tt.status}
		if got := d.IsFinished(); got != tt.want {
			t.Errorf("IsFinished() with status %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}
