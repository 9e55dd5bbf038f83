package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func categoryList(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("category list requires no arguments")
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

	categories, err := client.Categories().List(c.Context)
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "NAME")
		for _, category := range categories {
			table.AddRow(category.ID, category.Name)
		}
		fmt.Println(table)

	case "json":
		prettyJSON, err := json.MarshalIndent(categories, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list categories operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}
