package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	StateFile string
	Output    string
	Verbose   bool

	// Session is the saved lobby identity, loaded from StateFile
	Session Session
}

// Session is the locally persisted lobby identity. Possession of the PIN and
// the generated user id is the whole access model, so this file is all a
// client needs to reconnect.
type Session struct {
	PIN    string `json:"pin"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("QM_SERVER", "http://localhost:8080"),
		StateFile: getEnvOrDefault("QM_STATE_FILE", defaultStateFile()),
		Output:    "text",
		Verbose:   false,
	}
}

// LoadSession loads the saved session from the state file if present
func (c *Config) LoadSession() error {
	data, err := os.ReadFile(c.StateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No saved session is fine
		}
		return err
	}

	return json.Unmarshal(data, &c.Session)
}

// SaveSession persists the session to the state file
func (c *Config) SaveSession(s Session) error {
	c.Session = s

	dir := filepath.Dir(c.StateFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.StateFile, data, 0600)
}

// ClearSession removes the state file
func (c *Config) ClearSession() error {
	c.Session = Session{}
	if err := os.Remove(c.StateFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".questmaster/session"
	}
	return filepath.Join(home, ".questmaster", "session")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
