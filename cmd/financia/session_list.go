package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func sessionList(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("session list requires no arguments")
	}

	// Command-specific flags
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	console, err := getConsole(c)
	if err != nil {
		return err
	}

	sessions, err := console.ListSessions(c.Context)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "DEVICE", "LAST ACCESS", "CURRENT?")
		for _, session := range sessions {
			table.AddRow(
				session.ID,
				session.UserAgent,
				session.LastAccessAt,
				session.IsCurrent,
			)
		}
		fmt.Println(table)

	case "json":
		prettyJSON, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list sessions operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}
