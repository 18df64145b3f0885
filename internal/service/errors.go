package service

import "errors"

var (
	// ErrClassRequired rejects a submit without a class selection.
	ErrClassRequired = errors.New("class selection required")
	// ErrSystemLocked rejects writes while the admin gate is closed.
	ErrSystemLocked = errors.New("registrations are locked")
	// ErrUploadFailed aborts a submit when any receipt fails to persist.
	ErrUploadFailed = errors.New("receipt upload failed")
	// ErrNoData means a report query found no registrations or students.
	ErrNoData = errors.New("no data for the requested day")
)
