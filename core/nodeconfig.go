package core

import "gopkg.in/yaml.v3"

// NodeConfig is a configuration mapping describing one Redis-compatible
// node: a connection url plus additional client options. Of the options,
// only the "username" and "password" keys are applied when an adapter is
// built from a NodeConfig; other keys are ignored. LockFactory
// accepts a slice of these as an alternative to pre-built NodeAdapter
// handles (spec's "configuration mappings" construction path).
type NodeConfig struct {
	URL     string            `yaml:"url"`
	Options map[string]string `yaml:"options,omitempty"`
}

// LoadNodeConfigsYAML parses a YAML document listing node configuration
// mappings, e.g.:
//
//	- url: redis://node-a:6379/0
//	- url: redis://node-b:6379/0
//	  options:
//	    username: app
//	- url: redis://node-c:6379/0
func LoadNodeConfigsYAML(doc []byte) ([]NodeConfig, error) {
	var cfgs []NodeConfig
	if err := yaml.Unmarshal(doc, &cfgs); err != nil {
		return nil, err
	}
	return cfgs, nil
}
