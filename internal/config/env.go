package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment variables that override the config file.
const (
	EnvBaseURL = "INFERENCE_BASE_URL"
	EnvTimeout = "INFERENCE_TIMEOUT"
	EnvLocale  = "EDITOR_LOCALE"
)

// LoadDotEnv reads the given file (e.g. ".env") and sets environment variables for each
// line of the form KEY=VALUE. Empty lines and lines starting with # are skipped.
// Variables already present in the environment win. A missing file is not an error.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}

func parseEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	i := strings.Index(line, "=")
	if i <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:i])
	value = strings.TrimSpace(line[i+1:])
	if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
		value = value[1 : len(value)-1]
	}
	return key, value, key != ""
}

// ApplyEnv overrides p with INFERENCE_BASE_URL, INFERENCE_TIMEOUT and EDITOR_LOCALE when set.
func ApplyEnv(p *Prefs) error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		p.Service.BaseURL = strings.TrimSuffix(v, "/")
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		p.Service.Timeout = d
	}
	if v := os.Getenv(EnvLocale); v != "" {
		p.Panels.Locale = v
	}
	return nil
}
