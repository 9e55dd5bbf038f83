package main

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	financia "github.com/AguiarDev47/FinancIA"
	"github.com/AguiarDev47/FinancIA/credstore"
	"github.com/AguiarDev47/FinancIA/security"
	"github.com/AguiarDev47/FinancIA/session"
)

const envconfigPrefix = "FINANCIA"

// config represents CLI configuration drawn from the environment.
type config struct {
	APIAddress    string `envconfig:"API_ADDRESS" default:"http://localhost:3333"` // nolint: lll
	AllowInsecure bool   `envconfig:"ALLOW_INSECURE"`
}

func getConfig() (config, error) {
	c := config{}
	if err := envconfig.Process(envconfigPrefix, &c); err != nil {
		return c, errors.Wrap(
			err,
			"error getting financia configuration from environment",
		)
	}
	return c, nil
}

func getStore() (credstore.Store, error) {
	store, err := credstore.NewFileStore()
	if err != nil {
		return nil, errors.Wrap(err, "error opening credential store")
	}
	return store, nil
}

func getClient(c *cli.Context) (financia.Client, credstore.Store, error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := getStore()
	if err != nil {
		return nil, nil, err
	}
	client := financia.NewClient(
		cfg.APIAddress,
		store,
		cfg.AllowInsecure || c.Bool(flagInsecure),
	)
	return client, store, nil
}

func getManager(c *cli.Context) (session.Manager, error) {
	client, store, err := getClient(c)
	if err != nil {
		return nil, err
	}
	return session.NewManager(client, store), nil
}

func getConsole(c *cli.Context) (security.Console, error) {
	client, store, err := getClient(c)
	if err != nil {
		return nil, err
	}
	return security.NewConsole(
		client.Security(),
		store,
		noBiometrics{},
	), nil
}
