package btregex

import (
	"encoding/json"
	"fmt"
)

// patternJSON is the serialized form of a Pattern.
type patternJSON struct {
	Pattern string `json:"pattern"`
	Flags   Flags  `json:"flags"`
}

// MarshalJSON encodes p as {"pattern": ..., "flags": ...}.
func (p *Pattern) MarshalJSON() ([]byte, error) {
	return json.Marshal(patternJSON{Pattern: p.String(), Flags: p.Flags()})
}

// UnmarshalJSON decodes the form written by MarshalJSON and compiles it
// with the default configuration.
func (p *Pattern) UnmarshalJSON(data []byte) error {
	var v patternJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	compiled, err := CompileFlags(v.Pattern, v.Flags)
	if err != nil {
		return fmt.Errorf("regexp: decode pattern: %w", err)
	}
	*p = *compiled
	return nil
}
