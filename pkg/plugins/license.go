package plugins

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/systemstart/stash-init/pkg/api"
)

// DefaultLicenseEndpoint serves ACF pro downloads for a valid license key.
const DefaultLicenseEndpoint = "https://connect.advancedcustomfields.com/index.php"

// DownloadURL returns the ACF pro download URL for key.
func DownloadURL(endpoint, key string) string {
	q := url.Values{}
	q.Set("p", "pro")
	q.Set("a", "download")
	q.Set("k", key)
	return endpoint + "?" + q.Encode()
}

// LicenseValidator checks an ACF pro key against the vendor endpoint.
type LicenseValidator struct {
	Client   *http.Client
	Endpoint string
}

// NewLicenseValidator returns a validator for DefaultLicenseEndpoint.
func NewLicenseValidator(client *http.Client) *LicenseValidator {
	return &LicenseValidator{Client: client, Endpoint: DefaultLicenseEndpoint}
}

// Validate succeeds only if the download endpoint answers 200 for key.
// An empty key is not checked.
func (v *LicenseValidator) Validate(ctx context.Context, key string) error {
	if key == "" {
		slog.Debug("no ACF pro key, skipping license check")
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, DownloadURL(v.Endpoint, key), nil)
	if err != nil {
		return api.ValidationError("building license request", err)
	}

	client := v.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return api.ValidationError("could not reach the ACF license endpoint", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return api.ValidationError(fmt.Sprintf("your ACF pro key is not correct (HTTP %d)", resp.StatusCode), nil)
	}

	slog.Info("ACF pro key accepted")
	return nil
}
