package main

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func export(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("export requires no arguments")
	}

	// Command-specific flags
	format := strings.ToLower(c.String(flagFormat))
	outputFile := c.String(flagFile)

	switch format {
	case "csv", "json":
	default:
		return errors.Errorf("unknown export format %q", format)
	}

	client, _, err := getClient(c)
	if err != nil {
		return err
	}

	summary, err := client.Export().Summary(c.Context)
	if err != nil {
		return err
	}
	fmt.Printf(
		"Exporting %d transaction(s), %d goal(s), %d category(ies)...\n",
		summary.Transactions,
		summary.Goals,
		summary.Categories,
	)

	download, err := client.Export().Download(c.Context, format)
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(download.Data))
		return nil
	}
	if err := ioutil.WriteFile(outputFile, download.Data, 0644); err != nil {
		return errors.Wrapf(err, "error writing to %s", outputFile)
	}
	fmt.Printf("Export written to %s.\n", outputFile)

	return nil
}
