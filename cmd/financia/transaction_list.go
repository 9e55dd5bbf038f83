package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func transactionList(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("transaction list requires no arguments")
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

	transactions, err := client.Transactions().List(c.Context)
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		fmt.Println("No transactions found.")
		return nil
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "TITLE", "AMOUNT", "TYPE", "CATEGORY", "CREATED")
		for _, transaction := range transactions {
			table.AddRow(
				transaction.ID,
				transaction.Title,
				transaction.Amount,
				transaction.Type,
				transaction.Category,
				transaction.CreatedAt,
			)
		}
		fmt.Println(table)

	case "json":
		prettyJSON, err := json.MarshalIndent(transactions, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list transactions operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}
