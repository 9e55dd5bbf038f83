package main

import "context"

// noBiometrics reports that a terminal has no biometric hardware. The gate
// can therefore only be toggled off from the CLI; enabling it is a job for a
// device that can actually run a biometric challenge.
type noBiometrics struct{}

func (noBiometrics) Available(context.Context) (bool, error) {
	return false, nil
}

func (noBiometrics) Enrolled(context.Context) (bool, error) {
	return false, nil
}

func (noBiometrics) Authenticate(context.Context, string) (bool, error) {
	return false, nil
}
