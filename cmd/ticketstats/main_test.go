package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRunSampleText(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"--sample"}, &out, &errOut); err != nil {
		t.Fatalf("run: %v (%s)", err, errOut.String())
	}
	text := out.String()
	for _, want := range []string{"Total de chamados:    42", "Encerrados:           14 (33%)", "Outras", "Destaques"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
}

func TestRunJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chamados.json")
	content := `[{"status":"Fechado","tecnico":"Ana"},{"status":"Aberto","tecnico":"Ana"},{"status":"Aberto","tecnico":"Bia"}]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out, errOut bytes.Buffer
	if err := run([]string{"--format", "json", "--max-technicians", "1", path}, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	var res struct {
		Total  int `json:"total"`
		Closed int `json:"encerrados"`
		Series []struct {
			Name  string `json:"name"`
			Value int    `json:"value"`
		} `json:"chamadosPorTecnico"`
	}
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if res.Total != 3 || res.Closed != 1 {
		t.Fatalf("unexpected totals %+v", res)
	}
	if len(res.Series) != 1 || res.Series[0].Name != "Outros" || res.Series[0].Value != 3 {
		t.Fatalf("expected everything folded into Outros, got %+v", res.Series)
	}
}

func TestRunYAML(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"--sample", "-f", "yaml"}, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	var res map[string]any
	if err := yaml.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if res["total"] != 42 {
		t.Fatalf("unexpected total %v", res["total"])
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{}, &out, &errOut); err == nil {
		t.Fatal("expected missing file to fail")
	}
	if err := run([]string{"--sample", "--format", "xml"}, &out, &errOut); err == nil {
		t.Fatal("expected unknown format to fail")
	}
	if err := run([]string{"--sample", "--max-categories", "0"}, &out, &errOut); err == nil {
		t.Fatal("expected zero cap to fail")
	}
}
