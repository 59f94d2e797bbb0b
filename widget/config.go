package widget

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Config is the widget's bootstrap configuration, the same JSON shape
// the embedding page supplies. It replaces the collaborator and shop
// globals with one explicit value handed to the dispatcher.
type Config struct {
	ShopID        string `json:"shopId"`
	ProductIDs    string `json:"productIds"` // comma-separated explicit ids
	APIURL        string `json:"apiUrl"`
	ProfileAPIURL string `json:"profileApiUrl"`
	Token         string `json:"token"`
	ProfileID     string `json:"profileId"`
	MediaBaseURL  string `json:"mediaBaseUrl"`
	PaymentURL    string `json:"paymentUrl"`
}

// ParseConfig decodes a widget configuration blob.
func ParseConfig(b []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ProductIDList splits the comma-separated product id list, trimming
// whitespace and dropping empties.
func (c Config) ProductIDList() []string {
	var ids []string
	for _, part := range strings.Split(c.ProductIDs, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// ResolveProfileID returns the explicit profile id when configured,
// otherwise the bearer token's subject claim.
func (c Config) ResolveProfileID() string {
	if c.ProfileID != "" {
		return c.ProfileID
	}
	return JWTSubject(c.Token)
}

// JWTSubject extracts the sub claim from a JWT without verifying the
// signature; the backend does the verifying, the widget only needs the
// id. Any malformed token yields "".
func JWTSubject(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return ""
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		if payload, err = base64.StdEncoding.DecodeString(parts[1]); err != nil {
			return ""
		}
	}
	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return ""
	}
	return claims.Sub
}

// MediaURL joins the media base URL and a media id. Empty when either
// side is missing.
func MediaURL(baseURL, mediaID string) string {
	if baseURL == "" || mediaID == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + mediaID
}
