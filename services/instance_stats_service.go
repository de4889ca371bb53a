package services

import (
	"context"
	"fmt"
	"log"

	"github.com/specdeploy/dto"
	"github.com/specdeploy/lib/kubernetes"
	"github.com/specdeploy/repositories"
	"github.com/specdeploy/utils"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	metricsapi "k8s.io/metrics/pkg/apis/metrics/v1beta1"
)

// InstanceStatsService reports usage of an app's running instances
type InstanceStatsService struct {
	appRepo     *repositories.AppRepository
	k8sProxyURL string
}

// NewInstanceStatsService creates a new instance stats service
func NewInstanceStatsService(k8sProxyURL string) *InstanceStatsService {
	return &InstanceStatsService{
		appRepo:     repositories.NewAppRepository(),
		k8sProxyURL: k8sProxyURL,
	}
}

// GetAppInstanceStats returns per-instance stats for one app
func (s *InstanceStatsService) GetAppInstanceStats(appID string) (dto.InstanceStatsResponse, error) {
	app, err := s.appRepo.FindByID(appID)
	if err != nil {
		return dto.InstanceStatsResponse{}, err
	}

	kubeClient, err := kubernetes.NewClient(s.k8sProxyURL)
	if err != nil {
		return dto.InstanceStatsResponse{}, fmt.Errorf("failed to create Kubernetes client: %v", err)
	}

	ctx := context.Background()
	namespace := utils.AppNamespace(app)

	podList, err := kubeClient.Clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: "app.kubernetes.io/managed-by=specdeploy",
	})
	if err != nil {
		return dto.InstanceStatsResponse{}, fmt.Errorf("failed to list instances: %v", err)
	}

	// Metrics are optional; instances are still listed without them
	metricsMap := make(map[string]*metricsapi.PodMetrics)
	if kubeClient.MetricsClient != nil {
		podMetricsList, err := kubeClient.MetricsClient.MetricsV1beta1().PodMetricses(namespace).List(ctx, metav1.ListOptions{})
		if err != nil {
			log.Printf("Warning: Error getting instance metrics: %v", err)
		} else {
			for i := range podMetricsList.Items {
				metricsMap[podMetricsList.Items[i].Name] = &podMetricsList.Items[i]
			}
		}
	}

	response := dto.InstanceStatsResponse{
		AppID:     app.ID,
		Instances: make([]dto.InstanceStats, 0, len(podList.Items)),
	}

	for _, pod := range podList.Items {
		stats := dto.InstanceStats{
			Name:        pod.Name,
			ServiceName: pod.Labels["specdeploy.io/service"],
			Phase:       string(pod.Status.Phase),
		}

		for _, containerStatus := range pod.Status.ContainerStatuses {
			stats.Restarts += containerStatus.RestartCount
		}

		if pod.Status.StartTime != nil {
			startedAt := pod.Status.StartTime.Time
			stats.StartedAt = &startedAt
		}

		if metrics, ok := metricsMap[pod.Name]; ok {
			for _, container := range metrics.Containers {
				if cpu := container.Usage.Cpu(); cpu != nil {
					stats.CPU = cpu.String()
				}
				if memory := container.Usage.Memory(); memory != nil {
					stats.Memory = memory.String()
				}
			}
		}

		response.Instances = append(response.Instances, stats)
	}

	return response, nil
}
