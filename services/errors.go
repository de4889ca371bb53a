package services

import "errors"

// ErrUnauthorizedApp is returned when a caller acts on an app they do not own
var ErrUnauthorizedApp = errors.New("unauthorized access to app")

// ErrAppNameTaken is returned when an app name is already registered
var ErrAppNameTaken = errors.New("app name already taken")

// ErrMissingRuntimeValues is returned when a deploy is attempted while a
// declared RUN_TIME env key still has no value
var ErrMissingRuntimeValues = errors.New("missing runtime env values")

// ErrDeploymentInProgress is returned when an app already has an unfinished
// deployment
var ErrDeploymentInProgress = errors.New("deployment already in progress")
