package utils

import (
	"fmt"

	"github.com/specdeploy/models"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

// ServiceImageURL builds the image reference for a service from its github
// source. The platform does not build images itself; it expects the CI of
// the source repo to have pushed <registry>/<owner/repo>:<branch>.
func ServiceImageURL(registryHost string, svc models.ServiceSpec) string {
	return fmt.Sprintf("%s/%s:%s", registryHost, svc.Github.Repo, svc.Github.Branch)
}

// RenderDeployment turns one descriptor service into a Kubernetes Deployment:
// replicas from instance_count, resources from instance_size_slug, probes
// from health_check.http_path, container env from the RUN_TIME declarations,
// and the run command executed through a shell.
func RenderDeployment(app models.App, svc models.ServiceSpec, registryHost, encryptionKey string) (*appsv1.Deployment, error) {
	size, ok := LookupInstanceSize(svc.InstanceSizeSlug)
	if !ok {
		return nil, fmt.Errorf("unknown instance size slug: %s", svc.InstanceSizeSlug)
	}

	env, err := RuntimeEnvVars(svc, encryptionKey)
	if err != nil {
		return nil, err
	}

	replicas := int32(svc.InstanceCount)
	labels := ResourceLabels(app, svc)
	probe := healthProbe(svc)

	deployment := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      ResourceName(app, svc),
			Namespace: AppNamespace(app),
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{
				MatchLabels: map[string]string{
					"app": ResourceName(app, svc),
				},
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels:      labels,
					Annotations: GenerateRolloutAnnotation(),
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:    svc.Name,
							Image:   ServiceImageURL(registryHost, svc),
							Command: []string{"/bin/sh", "-c", svc.RunCommand},
							Ports: []corev1.ContainerPort{
								{
									ContainerPort: int32(svc.HTTPPort),
									Protocol:      corev1.ProtocolTCP,
								},
							},
							Resources:      size.ResourceRequirements(),
							Env:            env,
							LivenessProbe:  probe,
							ReadinessProbe: probe,
						},
					},
				},
			},
		},
	}

	return deployment, nil
}

// RenderService turns a descriptor service into a ClusterIP Service routing
// to http_port
func RenderService(app models.App, svc models.ServiceSpec) *corev1.Service {
	labels := ResourceLabels(app, svc)

	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      ResourceName(app, svc),
			Namespace: AppNamespace(app),
			Labels:    labels,
		},
		Spec: corev1.ServiceSpec{
			Selector: map[string]string{
				"app": ResourceName(app, svc),
			},
			Ports: []corev1.ServicePort{
				{
					Port:       int32(svc.HTTPPort),
					TargetPort: intstr.FromInt(svc.HTTPPort),
					Protocol:   corev1.ProtocolTCP,
					Name:       "http",
				},
			},
			Type: corev1.ServiceTypeClusterIP,
		},
	}
}

// healthProbe builds the HTTP probe the platform polls for liveness,
// straight from the descriptor's health_check.http_path
func healthProbe(svc models.ServiceSpec) *corev1.Probe {
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{
				Path: svc.HealthCheck.HTTPPath,
				Port: intstr.FromInt(svc.HTTPPort),
			},
		},
		InitialDelaySeconds: 10,
		PeriodSeconds:       15,
		TimeoutSeconds:      5,
		FailureThreshold:    3,
	}
}
