package kubernetes

import (
	"fmt"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	metricsv1beta1 "k8s.io/metrics/pkg/client/clientset/versioned"
)

// Client represents a kubernetes client
type Client struct {
	Clientset     *kubernetes.Clientset
	MetricsClient *metricsv1beta1.Clientset
}

// NewClient creates a Kubernetes client reaching the cluster through the
// kubectl proxy at the given address
func NewClient(proxyURL string) (*Client, error) {
	if proxyURL == "" {
		proxyURL = "http://localhost:8001"
	}

	// Create a simple REST config pointing to the kubectl proxy
	config := &rest.Config{
		Host: proxyURL,
		// No authentication needed when using kubectl proxy
		TLSClientConfig: rest.TLSClientConfig{
			Insecure: true,
		},
	}

	// Create clientset
	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %v", err)
	}

	// Create metrics client
	metricsClient, err := metricsv1beta1.NewForConfig(config)
	if err != nil {
		// If metrics client fails, we'll continue without it
		fmt.Printf("Warning: Unable to create metrics client: %v\n", err)
	}

	return &Client{
		Clientset:     clientset,
		MetricsClient: metricsClient,
	}, nil
}
