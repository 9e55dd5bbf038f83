package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func twoFactorEnable(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("enable-2fa requires no arguments")
	}

	console, err := getConsole(c)
	if err != nil {
		return err
	}

	challenge, err := console.RequestTwoFactor(c.Context)
	if err != nil {
		return err
	}
	fmt.Printf("A code was sent to %s.\n", challenge.TargetEmail)

	code, err := promptLine("Code")
	if err != nil {
		return err
	}
	if err := console.ConfirmTwoFactor(
		c.Context,
		challenge.ChallengeID,
		code,
	); err != nil {
		return err
	}

	fmt.Println("Two-factor authentication is now enabled.")

	return nil
}
