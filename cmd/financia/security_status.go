package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func securityStatus(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("security status requires no arguments")
	}

	console, err := getConsole(c)
	if err != nil {
		return err
	}

	status, err := console.Status(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("Two-factor authentication: %s\n", onOff(status.TwoFactorEnabled))
	fmt.Printf("Biometric gate:            %s\n", onOff(status.BiometricGateEnabled))

	return nil
}

func onOff(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
