package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func sessionRevoke(c *cli.Context) error {
	// Args
	if c.Args().Len() != 1 {
		return errors.New(
			"session revoke requires one argument-- a session ID",
		)
	}
	id := c.Args().Get(0)

	console, err := getConsole(c)
	if err != nil {
		return err
	}

	// Listing first lets the console recognize (and refuse) the current
	// session by id.
	if _, err := console.ListSessions(c.Context); err != nil {
		return err
	}
	if err := console.RevokeSession(c.Context, id); err != nil {
		return err
	}

	fmt.Printf("Session %q was revoked.\n", id)

	return nil
}
