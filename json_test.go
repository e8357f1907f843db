package btregex

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/coregx/btregex/syntax"
)

func TestPatternJSON(t *testing.T) {
	p, err := CompileFlags(`(\w+)!`, CaseInsensitive|Multiline)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	const want = `{"pattern":"(\\w+)!","flags":10}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var q Pattern
	if err := json.Unmarshal(data, &q); err != nil {
		t.Fatal(err)
	}
	if q.String() != p.String() || q.Flags() != p.Flags() {
		t.Errorf("round trip = %q/%v, want %q/%v", q.String(), q.Flags(), p.String(), p.Flags())
	}
	if q.NumSubexp() != 1 {
		t.Error("decoded pattern lost its group")
	}
	if !q.MatchString("HELLO!") {
		t.Error("decoded pattern does not match")
	}
}

func TestPatternJSONInvalid(t *testing.T) {
	var p Pattern
	err := json.Unmarshal([]byte(`{"pattern":"(","flags":0}`), &p)
	if !errors.Is(err, syntax.ErrUnclosedGroup) {
		t.Errorf("Unmarshal error = %v, want ErrUnclosedGroup", err)
	}
	err = json.Unmarshal([]byte(`{"pattern":"a","flags":65536}`), &p)
	if !errors.Is(err, syntax.ErrInvalidFlags) {
		t.Errorf("Unmarshal error = %v, want ErrInvalidFlags", err)
	}
}

func TestPatternJSONInStruct(t *testing.T) {
	type rule struct {
		Name    string   `json:"name"`
		Pattern *Pattern `json:"pattern"`
	}
	var r rule
	if err := json.Unmarshal([]byte(`{"name":"digits","pattern":{"pattern":"\\d+","flags":0}}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Pattern == nil || !r.Pattern.MatchString("a1") {
		t.Errorf("decoded rule = %+v", r)
	}
}
