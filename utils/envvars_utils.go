package utils

import (
	"fmt"
	"strconv"

	"github.com/specdeploy/models"
	corev1 "k8s.io/api/core/v1"
)

// RuntimeEnvVars builds the container environment for a service: every
// RUN_TIME declaration with secrets opened, plus the injected PORT variable.
// BUILD_TIME declarations never reach the running process.
func RuntimeEnvVars(svc models.ServiceSpec, encryptionKey string) ([]corev1.EnvVar, error) {
	result := make([]corev1.EnvVar, 0, len(svc.Envs)+1)

	for _, env := range svc.Envs {
		if env.Scope != models.EnvScopeRunTime {
			continue
		}

		value := env.Value
		if env.IsSecret() && IsEncryptedEnvValue(value) {
			opened, err := DecryptEnvValue(encryptionKey, value)
			if err != nil {
				return nil, fmt.Errorf("failed to open secret %s: %w", env.Key, err)
			}
			value = opened
		}

		result = append(result, corev1.EnvVar{
			Name:  env.Key,
			Value: value,
		})
	}

	// PORT always mirrors http_port for run commands that read it
	result = append(result, corev1.EnvVar{
		Name:  "PORT",
		Value: strconv.Itoa(svc.HTTPPort),
	})

	return result, nil
}

// MissingRuntimeKeys lists the RUN_TIME env keys a service declares but has
// no value for. Declaring a runtime key marks it required: deploys are
// refused until every one of them is set, instead of booting a process that
// immediately dies on its own required-variable check.
func MissingRuntimeKeys(svc models.ServiceSpec) []string {
	var missing []string
	for _, env := range svc.Envs {
		if env.Scope == models.EnvScopeRunTime && env.Value == "" {
			missing = append(missing, env.Key)
		}
	}
	return missing
}

// SealSecretValues encrypts every plain SECRET value in a descriptor in
// place. GENERAL values and already sealed values are left untouched.
func SealSecretValues(spec *models.AppSpec, encryptionKey string) error {
	for i := range spec.Services {
		for j := range spec.Services[i].Envs {
			env := &spec.Services[i].Envs[j]
			if !env.IsSecret() || env.Value == "" || IsEncryptedEnvValue(env.Value) {
				continue
			}

			sealed, err := EncryptEnvValue(encryptionKey, env.Value)
			if err != nil {
				return fmt.Errorf("failed to seal secret %s: %w", env.Key, err)
			}
			env.Value = sealed
		}
	}
	return nil
}

// CarryForwardSecrets copies stored ciphertext into a new descriptor revision
// for SECRET declarations whose value was omitted on update. Secrets are
// write-only through the API, so updates routinely leave them blank.
func CarryForwardSecrets(next *models.AppSpec, current models.AppSpec) {
	for i := range next.Services {
		svc := &next.Services[i]
		currentSvc := current.Service(svc.Name)
		if currentSvc == nil {
			continue
		}

		for j := range svc.Envs {
			env := &svc.Envs[j]
			if !env.IsSecret() || env.Value != "" {
				continue
			}

			for _, existing := range currentSvc.Envs {
				if existing.Key == env.Key && existing.IsSecret() {
					env.Value = existing.Value
					break
				}
			}
		}
	}
}

// RedactSecrets returns a copy of a descriptor safe for API responses and
// logs: every SECRET value is blanked out, plain values pass through.
func RedactSecrets(spec models.AppSpec) models.AppSpec {
	redacted := spec
	redacted.Services = make([]models.ServiceSpec, len(spec.Services))

	for i, svc := range spec.Services {
		redactedSvc := svc
		redactedSvc.Envs = make([]models.EnvVarSpec, len(svc.Envs))

		for j, env := range svc.Envs {
			if env.IsSecret() {
				env.Value = ""
			}
			redactedSvc.Envs[j] = env
		}

		redacted.Services[i] = redactedSvc
	}

	return redacted
}
