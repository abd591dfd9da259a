package host

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ReadRequests parses a request file. Each non-blank line is either a JSON
// Request or a bare specifier. Lines starting with '#' are comments.
// Requests without a context directory get defaultContext.
func ReadRequests(in io.Reader, defaultContext string) ([]Request, error) {
	var reqs []Request
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var req Request
		if line[0] == '{' {
			if err := json.Unmarshal(line, &req); err != nil {
				return nil, fmt.Errorf("line %d: decoding request: %w", lineNo, err)
			}
			if req.Specifier == "" {
				return nil, fmt.Errorf("line %d: missing specifier", lineNo)
			}
		} else {
			req.Specifier = strings.TrimSpace(string(line))
		}
		if req.ContextDir == "" {
			req.ContextDir = defaultContext
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading requests: %w", err)
	}
	return reqs, nil
}
