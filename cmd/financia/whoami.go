package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func whoami(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("whoami requires no arguments")
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	if err := manager.Restore(c.Context); err != nil {
		return errors.Wrap(err, "error restoring session")
	}
	user, ok := manager.CurrentUser()
	if !ok {
		return errors.New(
			"no session found; please use `financia login` to continue",
		)
	}

	fmt.Printf("%s <%s>\n", user.Name, user.Email)

	return nil
}
