package utils

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// SendDeployNotification posts a deployment status change to the configured
// notification URL. Failures are logged and swallowed; notification is
// best effort and must never fail a deployment.
func SendDeployNotification(notifyURL, deploymentID, appID, status, errorMessage string) {
	if notifyURL == "" {
		return
	}

	payload := map[string]interface{}{
		"deploymentId": deploymentID,
		"appId":        appID,
		"status":       status,
		"timestamp":    time.Now().Format(time.RFC3339),
	}
	if errorMessage != "" {
		payload["error"] = errorMessage
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling notification payload: %v", err)
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(notifyURL, "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Printf("Error calling notification URL: %v", err)
		return
	}
	defer resp.Body.Close()

	log.Printf("Deploy notification sent to %s, status: %s, deployment: %s",
		notifyURL, status, deploymentID)
}
