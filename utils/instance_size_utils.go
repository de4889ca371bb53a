package utils

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

// InstanceSize maps a descriptor size slug to container resource limits
type InstanceSize struct {
	Slug   string
	CPU    string
	Memory string
}

// instanceSizes lists every slug a descriptor may reference
var instanceSizes = map[string]InstanceSize{
	"basic-xxs":       {Slug: "basic-xxs", CPU: "500m", Memory: "512Mi"},
	"basic-xs":        {Slug: "basic-xs", CPU: "1", Memory: "1Gi"},
	"basic-s":         {Slug: "basic-s", CPU: "1", Memory: "2Gi"},
	"basic-m":         {Slug: "basic-m", CPU: "2", Memory: "4Gi"},
	"professional-xs": {Slug: "professional-xs", CPU: "1", Memory: "1Gi"},
	"professional-s":  {Slug: "professional-s", CPU: "1", Memory: "2Gi"},
	"professional-m":  {Slug: "professional-m", CPU: "2", Memory: "4Gi"},
	"professional-l":  {Slug: "professional-l", CPU: "4", Memory: "8Gi"},
	"professional-xl": {Slug: "professional-xl", CPU: "8", Memory: "16Gi"},
}

// LookupInstanceSize resolves a size slug, reporting whether it is known
func LookupInstanceSize(slug string) (InstanceSize, bool) {
	size, ok := instanceSizes[slug]
	return size, ok
}

// ResourceRequirements converts an instance size into the container
// resource block used by rendered Deployments
func (s InstanceSize) ResourceRequirements() corev1.ResourceRequirements {
	return corev1.ResourceRequirements{
		Limits: corev1.ResourceList{
			corev1.ResourceCPU:    resource.MustParse(s.CPU),
			corev1.ResourceMemory: resource.MustParse(s.Memory),
		},
		Requests: corev1.ResourceList{
			corev1.ResourceCPU:    resource.MustParse("100m"),
			corev1.ResourceMemory: resource.MustParse("128Mi"),
		},
	}
}
