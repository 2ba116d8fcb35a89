// Package credentials loads the Twitter API keys used to sign requests.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCredentials is returned when the file does not hold exactly the
// four expected string fields.
var ErrInvalidCredentials = errors.New("twitter API credentials not set")

var requiredKeys = []string{"access_token_key", "access_token_secret", "consumer_key", "consumer_secret"}

// Credentials are the OAuth1 user-context keys.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessTokenKey    string
	AccessTokenSecret string
}

// Load reads credentials from a JSON file, or YAML if path ends in .yaml or .yml.
func Load(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("decode credentials %s: %w", path, err)
	}

	return fromMap(raw)
}

func fromMap(raw map[string]any) (*Credentials, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if strings.Join(keys, ",") != strings.Join(requiredKeys, ",") {
		return nil, fmt.Errorf("%w: got fields %v, want %v", ErrInvalidCredentials, keys, requiredKeys)
	}

	vals := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidCredentials, k)
		}
		vals[k] = s
	}

	return &Credentials{
		ConsumerKey:       vals["consumer_key"],
		ConsumerSecret:    vals["consumer_secret"],
		AccessTokenKey:    vals["access_token_key"],
		AccessTokenSecret: vals["access_token_secret"],
	}, nil
}
