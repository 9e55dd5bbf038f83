package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func login(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("login requires no arguments")
	}

	email := c.String(flagEmail)
	password := c.String(flagPassword)
	var err error
	if email == "" {
		if email, err = promptLine("Email"); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = promptLine("Password"); err != nil {
			return err
		}
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	challenge, err := manager.SignIn(c.Context, email, password)
	if err != nil {
		return err
	}
	if challenge != nil {
		fmt.Printf("A code was sent to %s.\n", challenge.TargetEmail)
		code, err := promptLine("Code")
		if err != nil {
			return err
		}
		if err := manager.VerifyTwoFactor(
			c.Context,
			challenge.ChallengeID,
			code,
		); err != nil {
			return err
		}
	}

	user, _ := manager.CurrentUser()
	fmt.Printf("Logged in as %s.\n", user.Email)

	return nil
}
