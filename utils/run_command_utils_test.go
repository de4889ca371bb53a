package utils

import "testing"

func TestRunCommandPort(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		wantPort int
		wantOK   bool
	}{
		{
			name:     "uvicorn long flag",
			command:  "uvicorn bot_runner:app --host 0.0.0.0 --port 7860",
			wantPort: 7860,
			wantOK:   true,
		},
		{
			name:     "long flag with equals",
			command:  "server --port=3000",
			wantPort: 3000,
			wantOK:   true,
		},
		{
			name:     "short flag",
			command:  "node server.js -p 9000",
			wantPort: 9000,
			wantOK:   true,
		},
		{
			name:     "gunicorn bind address",
			command:  "gunicorn app:app --bind 0.0.0.0:8000",
			wantPort: 8000,
			wantOK:   true,
		},
		{
			name:     "localhost bind",
			command:  "serve localhost:4000",
			wantPort: 4000,
			wantOK:   true,
		},
		{
			name:    "port from environment",
			command: "npm start",
			wantOK:  false,
		},
		{
			name:    "module path is not a bind target",
			command: "uvicorn bot_runner:app --host 0.0.0.0",
			wantOK:  false,
		},
		{
			name:    "flag without value",
			command: "server --port",
			wantOK:  false,
		},
		{
			name:    "port out of range",
			command: "server --port 99999",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port, ok := RunCommandPort(tt.command)
			if ok != tt.wantOK {
				t.Fatalf("RunCommandPort(%q) ok = %v, want %v", tt.command, ok, tt.wantOK)
			}
			if ok && port != tt.wantPort {
				t.Errorf("RunCommandPort(%q) = %d, want %d", tt.command, port, tt.wantPort)
			}
		})
	}
}
