package services

import (
	"context"
	"fmt"
	"log"

	"github.com/specdeploy/lib/kubernetes"
	"github.com/specdeploy/models"
	"github.com/specdeploy/utils"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ProvisionService renders stored descriptors into cluster resources
type ProvisionService struct {
	registryHost  string
	encryptionKey string
	k8sProxyURL   string
}

// NewProvisionService creates a new provision service instance
func NewProvisionService(registryHost, encryptionKey, k8sProxyURL string) *ProvisionService {
	return &ProvisionService{
		registryHost:  registryHost,
		encryptionKey: encryptionKey,
		k8sProxyURL:   k8sProxyURL,
	}
}

// Provision materializes every service of an app's descriptor: namespace,
// Deployment and Service per entry. Secret env values are opened only here,
// on their way into the pod spec, and never logged.
func (s *ProvisionService) Provision(ctx context.Context, app models.App) error {
	kubeClient, err := kubernetes.NewClient(s.k8sProxyURL)
	if err != nil {
		return fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	namespace := utils.AppNamespace(app)
	nsLabels := map[string]string{
		"specdeploy.io/app-id":         app.ID,
		"app.kubernetes.io/managed-by": "specdeploy",
	}
	if err := kubeClient.EnsureNamespace(ctx, namespace, nsLabels); err != nil {
		return err
	}

	for _, svc := range app.Spec.Services {
		log.Printf("Provisioning service %s of app %s (revision %d)", svc.Name, app.Name, app.SpecRevision)

		deployment, err := utils.RenderDeployment(app, svc, s.registryHost, s.encryptionKey)
		if err != nil {
			return fmt.Errorf("failed to render service %s: %w", svc.Name, err)
		}

		if err := s.applyDeployment(ctx, kubeClient, deployment); err != nil {
			return fmt.Errorf("failed to apply deployment for service %s: %w", svc.Name, err)
		}

		if err := s.applyService(ctx, kubeClient, utils.RenderService(app, svc)); err != nil {
			return fmt.Errorf("failed to apply service %s: %w", svc.Name, err)
		}
	}

	return nil
}

// applyDeployment creates the Deployment, falling back to update when it
// already exists
func (s *ProvisionService) applyDeployment(ctx context.Context, client *kubernetes.Client, deployment *appsv1.Deployment) error {
	deployments := client.Clientset.AppsV1().Deployments(deployment.Namespace)

	_, err := deployments.Create(ctx, deployment, metav1.CreateOptions{})
	if err == nil {
		return nil
	}
	if !apierrors.IsAlreadyExists(err) {
		return err
	}

	existing, err := deployments.Get(ctx, deployment.Name, metav1.GetOptions{})
	if err != nil {
		return err
	}

	deployment.ResourceVersion = existing.ResourceVersion
	_, err = deployments.Update(ctx, deployment, metav1.UpdateOptions{})
	return err
}

// applyService creates the Service, preserving the allocated ClusterIP on
// update
func (s *ProvisionService) applyService(ctx context.Context, client *kubernetes.Client, service *corev1.Service) error {
	services := client.Clientset.CoreV1().Services(service.Namespace)

	_, err := services.Create(ctx, service, metav1.CreateOptions{})
	if err == nil {
		return nil
	}
	if !apierrors.IsAlreadyExists(err) {
		return err
	}

	existing, err := services.Get(ctx, service.Name, metav1.GetOptions{})
	if err != nil {
		return err
	}

	service.ResourceVersion = existing.ResourceVersion
	service.Spec.ClusterIP = existing.Spec.ClusterIP
	_, err = services.Update(ctx, service, metav1.UpdateOptions{})
	return err
}
