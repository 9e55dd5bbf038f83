package main

import "github.com/urfave/cli/v2"

const (
	flagCompensation = "compensation"
	flagEmail        = "email"
	flagFile         = "file"
	flagFormat       = "format"
	flagInsecure     = "insecure"
	flagName         = "name"
	flagOutput       = "output"
	flagPassword     = "password"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage:   "Return output in another format. Supported formats: table, json",
		Value:   "table",
	}
)
