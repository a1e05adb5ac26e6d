package plaid

import (
	"fmt"

	"github.com/plaid/plaid-go/v41/plaid"
)

func NewPlaidClient(clientID, secret, env string) (*plaid.APIClient, error) {
	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", clientID)
	configuration.AddDefaultHeader("PLAID-SECRET", secret)

	switch env {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	default:
		return nil, fmt.Errorf("invalid Plaid environment: %s", env)
	}

	return plaid.NewAPIClient(configuration), nil
}

// describeError extracts Plaid's error_code from an API error when present.
func describeError(err error) error {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil || plaidErr.ErrorCode == "" {
		return err
	}
	return fmt.Errorf("%s: %s: %w", plaidErr.ErrorCode, plaidErr.ErrorMessage, err)
}
