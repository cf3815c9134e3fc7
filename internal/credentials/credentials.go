package credentials

import (
	"fmt"
	"net/url"

	"github.com/bgentry/go-netrc/netrc"
)

// Credentials is the (API key, username, API token) triple a netrc machine
// entry yields for the ingestion API: login is the key, account the OOINet
// username, password the token.
type Credentials struct {
	APIKey   string
	Username string
	APIToken string
}

// FromNetrc looks up the machine entry for host in the netrc file at path.
// A missing file, a missing machine entry, or an incomplete triple all fail
// fast so no request is ever attempted with partial credentials.
func FromNetrc(path, host string) (*Credentials, error) {
	n, err := netrc.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("read netrc %s: %w", path, err)
	}
	m := n.FindMachine(host)
	if m == nil {
		return nil, fmt.Errorf("no netrc entry for machine %q in %s", host, path)
	}
	c := &Credentials{
		APIKey:   m.Login,
		Username: m.Account,
		APIToken: m.Password,
	}
	if c.APIKey == "" || c.Username == "" || c.APIToken == "" {
		return nil, fmt.Errorf("netrc entry for %q must set login (API key), account (username) and password (API token)", host)
	}
	return c, nil
}

// HostOf extracts the machine name to look up from an API base URL.
func HostOf(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("base URL %q has no host", baseURL)
	}
	return u.Hostname(), nil
}
