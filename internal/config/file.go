package config

import (
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadFileValues reads an optional YAML config file into a flat
// env-variable-name -> value map. Keys in the file are lowercase without the
// HEARTGATE_ prefix, e.g.:
//
//	listen_port: ":8080"
//	storage_backend: s3
//	s3_bucket: heartgate
//
// A missing or unreadable file is not an error; the environment and built-in
// defaults still apply.
func loadFileValues(path string) map[string]string {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("config file %s not readable, ignoring: %v", path, err)
		return nil
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		log.Printf("config file %s not valid yaml, ignoring: %v", path, err)
		return nil
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		key := "HEARTGATE_" + strings.ToUpper(strings.TrimSpace(k))
		values[key] = v
	}
	return values
}
