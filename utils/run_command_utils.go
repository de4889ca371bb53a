package utils

import (
	"strconv"
	"strings"
)

// RunCommandPort extracts the port a run command binds to, when the command
// names one explicitly. Recognized forms:
//
//	uvicorn app:app --port 7860
//	gunicorn app --bind 0.0.0.0:8000
//	server --port=3000
//	node server.js -p 9000
//
// Returns false when the command leaves the port to the environment, in
// which case no consistency check against http_port is possible.
func RunCommandPort(command string) (int, bool) {
	tokens := strings.Fields(command)

	for i, token := range tokens {
		switch {
		case token == "--port" || token == "-p":
			if i+1 < len(tokens) {
				if port, ok := parsePort(tokens[i+1]); ok {
					return port, true
				}
			}
		case strings.HasPrefix(token, "--port="):
			if port, ok := parsePort(strings.TrimPrefix(token, "--port=")); ok {
				return port, true
			}
		case strings.Contains(token, ":"):
			// host:port bind targets like 0.0.0.0:8000
			idx := strings.LastIndex(token, ":")
			if port, ok := parsePort(token[idx+1:]); ok && isBindHost(token[:idx]) {
				return port, true
			}
		}
	}

	return 0, false
}

func parsePort(s string) (int, bool) {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return 0, false
	}
	return port, true
}

// isBindHost reports whether a string looks like a bind address rather than
// an arbitrary colon-separated token such as a module path
func isBindHost(host string) bool {
	if host == "" || host == "localhost" {
		return true
	}
	for _, char := range host {
		if (char < '0' || char > '9') && char != '.' {
			return false
		}
	}
	return true
}
