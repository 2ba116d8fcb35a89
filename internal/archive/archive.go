// Package archive reads the tweet.js file from a Twitter data export.
package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// prefixLen is the length of the "window.YTD.tweet.part0 = " assignment
// that precedes the JSON array in tweet.js.
const prefixLen = 25

// ErrBadPrefix is returned when the file does not start with the
// window.YTD assignment the export tool writes.
var ErrBadPrefix = errors.New("archive does not start with window.YTD prefix")

// Record is one archived tweet.
type Record struct {
	ID              string `json:"id_str"`
	CreatedAt       string `json:"created_at"`
	FullText        string `json:"full_text"`
	InReplyToUserID string `json:"in_reply_to_user_id_str"`
	FavoriteCount   Count  `json:"favorite_count"`
	RetweetCount    Count  `json:"retweet_count"`
}

// Count is an engagement counter. Exports store them as strings.
type Count int

// UnmarshalJSON accepts "12", 12, "" and null.
func (c *Count) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*c = 0
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	if s == "" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid count %s: %w", b, err)
	}
	*c = Count(n)
	return nil
}

type wrapper struct {
	Tweet *Record `json:"tweet"`
}

// Load reads the archive at path and returns its records in file order.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse archive %s: %w", path, err)
	}
	return records, nil
}

// Parse strips the fixed prefix from data and decodes the remaining JSON array.
func Parse(data []byte) ([]Record, error) {
	if len(data) < prefixLen || !bytes.HasPrefix(data, []byte("window.YTD.")) {
		return nil, ErrBadPrefix
	}

	var rows []wrapper
	if err := json.Unmarshal(data[prefixLen:], &rows); err != nil {
		return nil, fmt.Errorf("decode tweets: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if row.Tweet == nil {
			return nil, fmt.Errorf("entry %d has no tweet object", i)
		}
		records = append(records, *row.Tweet)
	}
	return records, nil
}
