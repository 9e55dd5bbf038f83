package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func goalList(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("goal list requires no arguments")
	}

	// Command-specific flags
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, _, err := getClient(c)
	if err != nil {
		return err
	}

	goals, err := client.Goals().List(c.Context)
	if err != nil {
		return err
	}

	if len(goals) == 0 {
		fmt.Println("No goals found.")
		return nil
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "TITLE", "TARGET", "CURRENT", "DEADLINE")
		for _, goal := range goals {
			table.AddRow(
				goal.ID,
				goal.Title,
				goal.TargetAmount,
				goal.CurrentAmount,
				goal.Deadline,
			)
		}
		fmt.Println(table)

	case "json":
		prettyJSON, err := json.MarshalIndent(goals, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list goals operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}
