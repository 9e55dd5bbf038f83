package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func passwordChange(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("change-password requires no arguments")
	}

	oldPassword, err := promptLine("Current password")
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

	console, err := getConsole(c)
	if err != nil {
		return err
	}

	if err := console.ChangePassword(
		c.Context,
		oldPassword,
		newPassword,
	); err != nil {
		return err
	}

	fmt.Println("Your password was updated.")

	return nil
}
