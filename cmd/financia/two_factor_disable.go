package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func twoFactorDisable(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("disable-2fa requires no arguments")
	}

	// Turning 2FA off is a step-up operation; the backend re-authenticates
	// by password, not just by the live token.
	password := c.String(flagPassword)
	var err error
	if password == "" {
		if password, err = promptLine("Password"); err != nil {
			return err
		}
	}

	console, err := getConsole(c)
	if err != nil {
		return err
	}

	if err := console.DisableTwoFactor(c.Context, password); err != nil {
		return err
	}

	fmt.Println("Two-factor authentication is now disabled.")

	return nil
}
