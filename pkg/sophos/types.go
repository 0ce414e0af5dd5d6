package sophos

import "encoding/json"

// AccessTokenResponse is the identity service token grant response.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Page is a single page of a paginated collection. NextKey is the opaque
// cursor for the following page; empty means this was the last page.
type Page struct {
	Items   []json.RawMessage
	NextKey string
}

// pageEnvelope is the wire shape shared by the endpoint and SIEM collections.
type pageEnvelope struct {
	Items []json.RawMessage `json:"items"`
	Pages struct {
		NextKey string `json:"nextKey"`
	} `json:"pages"`
}

// EndpointItem is a device as returned by the endpoint inventory API.
type EndpointItem struct {
	ID       string `json:"id"`
	Hostname string `json:"hostname"`
	Type     string `json:"type"`
	Online   bool   `json:"online"`
	OS       struct {
		Name string `json:"name"`
	} `json:"os"`
	Health struct {
		Overall string `json:"overall"`
	} `json:"health"`
	Group struct {
		Name string `json:"name"`
	} `json:"group"`
	IPv4Addresses []string `json:"ipv4Addresses"`
	IPAddresses   []string `json:"ipAddresses"`
}

// IPs returns the address list for the configured payload key. Tenants have
// been observed returning either ipv4Addresses or ipAddresses depending on
// API generation, so the key is configuration rather than hard-coded.
func (e *EndpointItem) IPs(field string) []string {
	if field == IPFieldLegacy {
		return e.IPAddresses
	}

	return e.IPv4Addresses
}

// EventItem is a SIEM event as returned by the events API. Timestamps stay
// strings here; parsing is the caller's concern since a malformed timestamp
// must not drop the event.
type EventItem struct {
	ID         string `json:"id"`
	EndpointID string `json:"endpoint_id"`
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Source     string `json:"source"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Group      string `json:"group"`
	CreatedAt  string `json:"created_at"`
	When       string `json:"when"`
}

const (
	// IPFieldDefault selects the ipv4Addresses payload key.
	IPFieldDefault = "ipv4Addresses"
	// IPFieldLegacy selects the ipAddresses payload key.
	IPFieldLegacy = "ipAddresses"
)
