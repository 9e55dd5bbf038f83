package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func register(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("register requires no arguments")
	}

	name := c.String(flagName)
	email := c.String(flagEmail)
	password := c.String(flagPassword)
	var err error
	if name == "" {
		if name, err = promptLine("Name"); err != nil {
			return err
		}
	}
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

	if err := manager.Register(c.Context, name, email, password); err != nil {
		return err
	}

	fmt.Printf("Welcome to FinancIA, %s.\n", name)

	return nil
}
