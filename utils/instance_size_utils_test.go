package utils

import "testing"

func TestLookupInstanceSize(t *testing.T) {
	size, ok := LookupInstanceSize("basic-xxs")
	if !ok {
		t.Fatal("basic-xxs should be a known slug")
	}
	if size.CPU != "500m" || size.Memory != "512Mi" {
		t.Errorf("unexpected basic-xxs sizing: %s / %s", size.CPU, size.Memory)
	}

	if _, ok := LookupInstanceSize("mega-xxl"); ok {
		t.Error("unknown slug should not resolve")
	}
}

func TestResourceRequirements(t *testing.T) {
	size, _ := LookupInstanceSize("professional-l")
	reqs := size.ResourceRequirements()

	if reqs.Limits.Cpu().String() != "4" {
		t.Errorf("unexpected CPU limit %s", reqs.Limits.Cpu().String())
	}
	if reqs.Limits.Memory().String() != "8Gi" {
		t.Errorf("unexpected memory limit %s", reqs.Limits.Memory().String())
	}
	if reqs.Requests.Cpu().IsZero() {
		t.Error("requests must be set for scheduling")
	}
}
