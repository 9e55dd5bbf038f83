package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func resetPassword(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("reset-password requires no arguments")
	}

	email := c.String(flagEmail)
	var err error
	if email == "" {
		if email, err = promptLine("Email"); err != nil {
			return err
		}
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	challenge, err := manager.RequestPasswordReset(c.Context, email)
	if err != nil {
		return err
	}
	// A nil challenge means the backend declined to say whether the account
	// exists. The message is the same either way.
	fmt.Println("If the email exists, we sent a code.")
	if challenge == nil {
		return nil
	}

	code, err := promptLine("Code")
	if err != nil {
		return err
	}
	newPassword, err := promptLine("New password")
	if err != nil {
		return err
	}
	confirm, err := promptLine("Confirm new password")
	if err != nil {
		return err
	}
	if newPassword != confirm {
		return errors.New("the passwords do not match")
	}

	if err := manager.ResetPassword(
		c.Context,
		challenge.ChallengeID,
		code,
		newPassword,
	); err != nil {
		return err
	}

	fmt.Println("Password updated. Log in with the new password.")

	return nil
}
