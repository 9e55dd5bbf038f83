package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func profileUpdate(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("profile update requires no arguments")
	}

	// Command-specific flags
	name := c.String(flagName)
	compensation := c.Float64(flagCompensation)
	if name == "" {
		return errors.New("a name is required")
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	user, err := manager.UpdateProfile(c.Context, name, compensation)
	if err != nil {
		return err
	}

	fmt.Printf(
		"Profile updated: %s, compensation %.2f.\n",
		user.Name,
		user.Compensation,
	)

	return nil
}
