package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/specdeploy/models"
)

// GenerateShortID generates a short, URL-safe random ID
// Format: 8 characters, lowercase alphanumeric
// Example: "x7k9m2p1"
func GenerateShortID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	const length = 8

	result := make([]byte, length)
	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		result[i] = chars[num.Int64()]
	}

	return string(result)
}

// AppNamespace returns the Kubernetes namespace an app's resources live in
func AppNamespace(app models.App) string {
	return app.ID
}

// ResourceName builds the immutable name shared by a service's Deployment,
// Service and pod selector labels
func ResourceName(app models.App, svc models.ServiceSpec) string {
	name := fmt.Sprintf("%s-%s", app.Name, svc.Name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	return name
}

// ResourceLabels builds the common labels stamped on every rendered resource
func ResourceLabels(app models.App, svc models.ServiceSpec) map[string]string {
	return map[string]string{
		"app":                          ResourceName(app, svc),
		"specdeploy.io/app-id":         app.ID,
		"specdeploy.io/service":        svc.Name,
		"app.kubernetes.io/managed-by": "specdeploy",
	}
}

// GenerateRolloutAnnotation returns the annotation used to force a pod
// template change on redeploys of an unchanged descriptor
func GenerateRolloutAnnotation() map[string]string {
	return map[string]string{
		"specdeploy.io/rollout-at": fmt.Sprintf("%d", time.Now().Unix()),
	}
}

// IsValidResourceName checks if a string is a valid Kubernetes resource name
func IsValidResourceName(name string) bool {
	if len(name) == 0 || len(name) > 63 {
		return false
	}

	// Must start and end with alphanumeric
	if !isAlphanumeric(name[0]) || !isAlphanumeric(name[len(name)-1]) {
		return false
	}

	// Check each character
	for _, char := range name {
		if !isAlphanumeric(byte(char)) && char != '-' {
			return false
		}
	}

	return true
}

// isAlphanumeric checks if a byte is lowercase alphanumeric
func isAlphanumeric(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
