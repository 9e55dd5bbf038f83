package financia

// Client is an all-in-one client for the FinancIA API.
type Client interface {
	Auth() AuthClient
	Profile() ProfileClient
	Security() SecurityClient
	Transactions() TransactionsClient
	Goals() GoalsClient
	Categories() CategoriesClient
	Export() ExportClient
}

type client struct {
	authClient         AuthClient
	profileClient      ProfileClient
	securityClient     SecurityClient
	transactionsClient TransactionsClient
	goalsClient        GoalsClient
	categoriesClient   CategoriesClient
	exportClient       ExportClient
}

// NewClient returns an all-in-one client for the FinancIA API. The given
// TokenSource is consulted per request, so a token persisted after NewClient
// returns is picked up without rebuilding the client.
func NewClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) Client {
	return &client{
		authClient:    NewAuthClient(apiAddress, tokens, allowInsecure),
		profileClient: NewProfileClient(apiAddress, tokens, allowInsecure),
		securityClient: NewSecurityClient(
			apiAddress,
			tokens,
			allowInsecure,
		),
		transactionsClient: NewTransactionsClient(
			apiAddress,
			tokens,
			allowInsecure,
		),
		goalsClient: NewGoalsClient(apiAddress, tokens, allowInsecure),
		categoriesClient: NewCategoriesClient(
			apiAddress,
			tokens,
			allowInsecure,
		),
		exportClient: NewExportClient(apiAddress, tokens, allowInsecure),
	}
}

func (c *client) Auth() AuthClient {
	return c.authClient
}

func (c *client) Profile() ProfileClient {
	return c.profileClient
}

func (c *client) Security() SecurityClient {
	return c.securityClient
}

func (c *client) Transactions() TransactionsClient {
	return c.transactionsClient
}

func (c *client) Goals() GoalsClient {
	return c.goalsClient
}

func (c *client) Categories() CategoriesClient {
	return c.categoriesClient
}

func (c *client) Export() ExportClient {
	return c.exportClient
}
