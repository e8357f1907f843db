package main

import (
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/coregx/btregex"
)

// rule is a named pattern. In a rules file the pattern uses the serialized
// Pattern form:
//
//	- name: todo
//	  match: {pattern: "TODO|FIXME", flags: 2}
type rule struct {
	Name  string           `json:"name"`
	Match *btregex.Pattern `json:"match"`
}

func loadRules(path string) ([]rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseRules(data)
}

func parseRules(data []byte) ([]rule, error) {
	var rules []rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, errors.New("no rules")
	}
	for i, r := range rules {
		if r.Match == nil {
			return nil, fmt.Errorf("rule %d (%s): missing match", i, r.Name)
		}
	}
	return rules, nil
}
