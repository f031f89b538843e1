package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type routeRow struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
}

type routeRows []routeRow

func (r routeRows) Table() *Table {
	t := &Table{Headers: []string{"METHOD", "PATH"}}
	for _, row := range r {
		t.AddRow(row.Method, row.Path)
	}
	return t
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("json formatter")
	}
	if _, ok := NewFormatter(FormatYAML).(*YAMLFormatter); !ok {
		t.Error("yaml formatter")
	}
	if _, ok := NewFormatter(FormatTable).(*TableFormatter); !ok {
		t.Error("table formatter")
	}
	if _, ok := NewFormatter("bogus").(*TableFormatter); !ok {
		t.Error("unknown formats fall back to table")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	data := routeRows{{"GET", "/hola"}}
	if err := (&JSONFormatter{}).Format(&buf, data); err != nil {
		t.Fatal(err)
	}
	var back []routeRow
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(back) != 1 || back[0].Path != "/hola" {
		t.Errorf("decoded %+v", back)
	}
	if !strings.Contains(buf.String(), "\n  {") {
		t.Errorf("expected indented output: %q", buf.String())
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	data := routeRows{{"GET", "/hola"}, {"POST", "/api/hello"}}
	if err := (&YAMLFormatter{}).Format(&buf, data); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "- method: GET\n  path: /hola\n") {
		t.Errorf("unexpected YAML:\n%s", buf.String())
	}
	var back []routeRow
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(back) != 2 || back[1].Method != "POST" {
		t.Errorf("decoded %+v", back)
	}
}

func TestTableFormatter_Tabular(t *testing.T) {
	var buf bytes.Buffer
	data := routeRows{{"GET", "/hola"}, {"POST", "/api/hello"}}
	if err := (&TableFormatter{}).Format(&buf, data); err != nil {
		t.Fatal(err)
	}
	want := "METHOD  PATH\n" +
		"GET     /hola\n" +
		"POST    /api/hello\n"
	if buf.String() != want {
		t.Errorf("got\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestTableFormatter_NoHeadersAndEmptyCells(t *testing.T) {
	var buf bytes.Buffer
	tbl := &Table{}
	tbl.SetHeaders("NAME", "DEFAULT")
	tbl.AddRow("name", "World")
	tbl.AddRow("city", "")

	if err := (&TableFormatter{NoHeaders: true}).Format(&buf, tbl); err != nil {
		t.Fatal(err)
	}
	want := "name  World\ncity  -\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestTableFormatter_Fallbacks(t *testing.T) {
	tests := []struct {
		data any
		want string
	}{
		{nil, ""},
		{[]string{"a", "b"}, "a\nb\n"},
		{42, "42\n"},
		{Table{Headers: []string{"X"}}, "X\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := (&TableFormatter{}).Format(&buf, tt.data); err != nil {
			t.Fatal(err)
		}
		if buf.String() != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.data, buf.String(), tt.want)
		}
	}
}
