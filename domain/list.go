package domain

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadList reads watch lists from the given files, one domain per line.
// Blank lines and # comments are skipped; entries are returned raw, in file
// order, for the caller to normalize.
func LoadList(paths []string) ([]string, error) {
	var out []string
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open domain file %s: %w", path, err)
		}

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			out = append(out, line)
		}

		if err := scanner.Err(); err != nil {
			file.Close()
			return nil, fmt.Errorf("read domain file %s: %w", path, err)
		}
		file.Close()
	}
	return out, nil
}
