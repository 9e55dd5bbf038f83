package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func logout(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("logout requires no arguments")
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	// The manager clears local credentials even when the server-side
	// termination fails; only a local storage error surfaces here.
	result, err := manager.SignOut(c.Context)
	if err != nil {
		return err
	}
	if result.ServerAcknowledged {
		fmt.Println("Logout was successful.")
	} else {
		fmt.Println(
			"Local credentials cleared; the server could not be notified.",
		)
	}

	return nil
}
