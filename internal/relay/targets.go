// Package relay forwards verified webhook deliveries to configured downstream
// targets.
package relay

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TargetsFile is the YAML document declaring forwarding targets:
//
//	targets:
//	  - name: crm
//	    url: https://crm.example.com/hooks/cosmopay
//	    events: [invoicePay]
type TargetsFile struct {
	Targets []Target `yaml:"targets"`
}

// Target is one downstream consumer. An empty events list subscribes the
// target to every event type.
type Target struct {
	Name   string   `yaml:"name"`
	URL    string   `yaml:"url"`
	Events []string `yaml:"events"`
}

// Wants reports whether the target subscribes to the given event type.
func (t Target) Wants(event string) bool {
	if len(t.Events) == 0 {
		return true
	}
	for _, e := range t.Events {
		if e == event {
			return true
		}
	}
	return false
}

// LoadTargets reads and validates the targets file at path.
func LoadTargets(path string) ([]Target, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}
	return ParseTargets(content)
}

// ParseTargets parses and validates a targets document.
func ParseTargets(content []byte) ([]Target, error) {
	var file TargetsFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	names := make(map[string]bool)
	for i, target := range file.Targets {
		if err := validateTarget(&target); err != nil {
			return nil, fmt.Errorf("target %d validation failed: %w", i, err)
		}

		if names[target.Name] {
			return nil, fmt.Errorf("duplicate target name: %s", target.Name)
		}
		names[target.Name] = true
	}

	return file.Targets, nil
}

func validateTarget(target *Target) error {
	if strings.TrimSpace(target.Name) == "" {
		return fmt.Errorf("target name is required")
	}

	rawURL := strings.TrimSpace(target.URL)
	if rawURL == "" {
		return fmt.Errorf("target url is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return fmt.Errorf("target url must be a valid absolute URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("target url must use http or https")
	}

	for _, event := range target.Events {
		if strings.TrimSpace(event) == "" {
			return fmt.Errorf("target events cannot be empty strings")
		}
	}

	return nil
}
