// SPDX-License-Identifier: MPL-2.0

package cueutil_test

import (
	"strings"
	"testing"

	"solvenv-cli/pkg/cueutil"
)

const testSchema = `
#Thing: {
	name: string & !=""
	count?: int & >=0
}
`

type thing struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

func TestParseAndDecode_Valid(t *testing.T) {
	t.Parallel()

	data := []byte(`name: "scip"` + "\n" + `count: 2`)
	result, err := cueutil.ParseAndDecode[thing](testSchema, data, "#Thing")
	if err != nil {
		t.Fatalf("ParseAndDecode() error = %v", err)
	}
	if result.Value.Name != "scip" {
		t.Errorf("Name = %q, want %q", result.Value.Name, "scip")
	}
	if result.Value.Count != 2 {
		t.Errorf("Count = %d, want 2", result.Value.Count)
	}
}

func TestParseAndDecode_SchemaViolation(t *testing.T) {
	t.Parallel()

	data := []byte(`name: ""`)
	_, err := cueutil.ParseAndDecode[thing](testSchema, data, "#Thing", cueutil.WithFilename("thing.cue"))
	if err == nil {
		t.Fatal("ParseAndDecode() expected error for empty name")
	}
	if !strings.Contains(err.Error(), "thing.cue") {
		t.Errorf("error %q should mention the filename", err)
	}
}

func TestParseAndDecode_SyntaxError(t *testing.T) {
	t.Parallel()

	data := []byte(`name: "unterminated`)
	_, err := cueutil.ParseAndDecode[thing](testSchema, data, "#Thing")
	if err == nil {
		t.Fatal("ParseAndDecode() expected error for invalid CUE syntax")
	}
}

func TestParseAndDecode_UnknownDefinition(t *testing.T) {
	t.Parallel()

	_, err := cueutil.ParseAndDecode[thing](testSchema, []byte(`name: "x"`), "#Missing")
	if err == nil {
		t.Fatal("ParseAndDecode() expected error for unknown schema path")
	}
}

func TestParseAndDecode_SizeLimit(t *testing.T) {
	t.Parallel()

	data := []byte(`name: "x"`)
	_, err := cueutil.ParseAndDecode[thing](testSchema, data, "#Thing", cueutil.WithMaxFileSize(4))
	if err == nil {
		t.Fatal("ParseAndDecode() expected error for oversized input")
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := cueutil.CheckFileSize(make([]byte, 10), 10, "f"); err != nil {
		t.Errorf("CheckFileSize() at limit should pass, got %v", err)
	}
	if err := cueutil.CheckFileSize(make([]byte, 11), 10, "f"); err == nil {
		t.Error("CheckFileSize() over limit should fail")
	}
}
