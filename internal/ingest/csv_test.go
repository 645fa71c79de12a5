package ingest

import (
	"errors"
	"testing"
)

func TestDecodeCSVKeepsColumnOrder(t *testing.T) {
	rows, err := DecodeCSV([]byte("\ufeffid,Técnico,status\n1,Ana,Aberto\n2,Bruno,Fechado\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0].Key != "id" || rows[0][1].Key != "Técnico" || rows[0][2].Key != "status" {
		t.Fatalf("unexpected keys %+v", rows[0])
	}
	if v, _ := rows[1].Get("Técnico"); v != "Bruno" {
		t.Fatalf("unexpected value %v", v)
	}
}

func TestDecodeCSVSniffsSemicolon(t *testing.T) {
	rows, err := DecodeCSV([]byte("id;categoria;satisfacao\n1;\"Rede; Wi-Fi\";4\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v, _ := rows[0].Get("categoria"); v != "Rede; Wi-Fi" {
		t.Fatalf("unexpected categoria %v", v)
	}
}

func TestDecodeCSVWindows1252(t *testing.T) {
	// "Não" encoded as Windows-1252.
	data := []byte("categoria\nImpressora N\xe3o Funciona\n")
	rows, err := DecodeCSV(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v, _ := rows[0].Get("categoria"); v != "Impressora Não Funciona" {
		t.Fatalf("unexpected categoria %q", v)
	}
}

func TestDecodeCSVSkipsBlankLines(t *testing.T) {
	rows, err := DecodeCSV([]byte("id,status\n\n1,Aberto\n\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestDecodeCSVRejectsRaggedRows(t *testing.T) {
	if _, err := DecodeCSV([]byte("id,status\n1,Aberto,extra\n")); err == nil {
		t.Fatal("expected ragged row to fail")
	}
}

func TestDecodeCSVEmpty(t *testing.T) {
	if _, err := DecodeCSV(nil); !errors.Is(err, ErrMissingHeader) {
		t.Fatalf("expected ErrMissingHeader, got %v", err)
	}
}

func TestSniffDelimiter(t *testing.T) {
	cases := map[string]rune{
		"a,b,c\n":       ',',
		"a;b;c\n":       ';',
		"a\tb\tc\n":     '\t',
		"a|b|c\n":       '|',
		"\"a,b\";c;d\n": ';',
		"unica\n":       ',',
	}
	for in, want := range cases {
		if got := sniffDelimiter([]byte(in)); got != want {
			t.Fatalf("%q: got %q, want %q", in, got, want)
		}
	}
}
