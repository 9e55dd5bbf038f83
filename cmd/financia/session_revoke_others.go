package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func sessionRevokeOthers(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("session revoke-others requires no arguments")
	}

	console, err := getConsole(c)
	if err != nil {
		return err
	}

	if _, err := console.ListSessions(c.Context); err != nil {
		return err
	}
	remaining, err := console.RevokeOtherSessions(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf(
		"All other sessions were revoked. %d session(s) remain.\n",
		len(remaining),
	)

	return nil
}
