package dto

// PushEvent is the subset of a GitHub push payload the platform acts on
type PushEvent struct {
	Ref        string `json:"ref"` // refs/heads/<branch>
	After      string `json:"after"`
	Repository struct {
		FullName string `json:"full_name"` // owner/repo
	} `json:"repository"`
}

// Branch extracts the branch name from the push ref, or "" for non-branch refs
func (e PushEvent) Branch() string {
	const prefix = "refs/heads/"
	if len(e.Ref) <= len(prefix) || e.Ref[:len(prefix)] != prefix {
		return ""
	}
	return e.Ref[len(prefix):]
}

// WebhookResponse summarizes what a webhook delivery triggered
type WebhookResponse struct {
	DeliveryID    string   `json:"deliveryId"`
	DeploymentIDs []string `json:"deploymentIds"`
}
