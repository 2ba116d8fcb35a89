// Package spare reads the list of tweet ids that must never be deleted.
package spare

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads one id per line. Blank lines are ignored and duplicates collapse.
func Load(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spare ids: %w", err)
	}
	defer f.Close()

	ids := map[string]struct{}{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if id := strings.TrimSpace(scanner.Text()); id != "" {
			ids[id] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read spare ids %s: %w", path, err)
	}
	return ids, nil
}
