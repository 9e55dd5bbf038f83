package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/AguiarDev47/FinancIA/internal/signals"
)

func main() {
	app := cli.NewApp()
	app.Name = "financia"
	app.Usage = "Manage your FinancIA account from the command line"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:  "login",
			Usage: "Log in to FinancIA",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagEmail,
					Aliases: []string{"e"},
					Usage:   "The account's email address",
				},
				&cli.StringFlag{
					Name:    flagPassword,
					Aliases: []string{"p"},
					Usage:   "Specify the password non-interactively",
				},
			},
			Action: login,
		},
		{
			Name:   "logout",
			Usage:  "Log out of FinancIA",
			Action: logout,
		},
		{
			Name:  "register",
			Usage: "Create a FinancIA account and log in with it",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagName,
					Aliases: []string{"n"},
					Usage:   "Your full name",
				},
				&cli.StringFlag{
					Name:    flagEmail,
					Aliases: []string{"e"},
					Usage:   "The email address for the new account",
				},
				&cli.StringFlag{
					Name:    flagPassword,
					Aliases: []string{"p"},
					Usage:   "Specify the password non-interactively",
				},
			},
			Action: register,
		},
		{
			Name:   "whoami",
			Usage:  "Show the currently signed-in account",
			Action: whoami,
		},
		{
			Name:  "reset-password",
			Usage: "Reset a forgotten password using an emailed code",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagEmail,
					Aliases: []string{"e"},
					Usage:   "The account's email address",
				},
			},
			Action: resetPassword,
		},
		{
			Name:  "profile",
			Usage: "Manage your profile",
			Subcommands: []*cli.Command{
				{
					Name:  "update",
					Usage: "Update profile name and compensation",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:    flagName,
							Aliases: []string{"n"},
							Usage:   "Your full name",
						},
						&cli.Float64Flag{
							Name:  flagCompensation,
							Usage: "Your monthly compensation",
						},
					},
					Action: profileUpdate,
				},
			},
		},
		{
			Name:  "security",
			Usage: "Manage account security",
			Subcommands: []*cli.Command{
				{
					Name:   "status",
					Usage:  "Show the account's security posture",
					Action: securityStatus,
				},
				{
					Name:   "enable-2fa",
					Usage:  "Enable two-factor authentication",
					Action: twoFactorEnable,
				},
				{
					Name:  "disable-2fa",
					Usage: "Disable two-factor authentication",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:    flagPassword,
							Aliases: []string{"p"},
							Usage: "Specify the password " +
								"non-interactively",
						},
					},
					Action: twoFactorDisable,
				},
				{
					Name:   "change-password",
					Usage:  "Change the account password",
					Action: passwordChange,
				},
			},
		},
		{
			Name:  "session",
			Usage: "Manage active sessions",
			Subcommands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List active sessions",
					Flags: []cli.Flag{
						cliFlagOutput,
					},
					Action: sessionList,
				},
				{
					Name:      "revoke",
					Usage:     "Revoke one non-current session",
					ArgsUsage: "SESSION_ID",
					Action:    sessionRevoke,
				},
				{
					Name:   "revoke-others",
					Usage:  "Revoke every session except this one",
					Action: sessionRevokeOthers,
				},
			},
		},
		{
			Name:  "transaction",
			Usage: "Manage transactions",
			Subcommands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List transactions",
					Flags: []cli.Flag{
						cliFlagOutput,
					},
					Action: transactionList,
				},
			},
		},
		{
			Name:  "goal",
			Usage: "Manage savings goals",
			Subcommands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List savings goals",
					Flags: []cli.Flag{
						cliFlagOutput,
					},
					Action: goalList,
				},
			},
		},
		{
			Name:  "category",
			Usage: "Manage transaction categories",
			Subcommands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List categories",
					Flags: []cli.Flag{
						cliFlagOutput,
					},
					Action: categoryList,
				},
			},
		},
		{
			Name:  "export",
			Usage: "Download account data",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagFormat,
					Aliases: []string{"f"},
					Usage:   "Export format. Supported formats: csv, json",
					Value:   "csv",
				},
				&cli.StringFlag{
					Name:    flagFile,
					Aliases: []string{"o"},
					Usage:   "Write the export to this file instead of stdout",
				},
			},
			Action: export,
		},
	}
	fmt.Println()
	if err := app.RunContext(signals.Context(), os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		os.Exit(1)
	}
	fmt.Println()
}
