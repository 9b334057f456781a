package feriados

import (
	"testing"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
)

func TestPascoaKnownYears(t *testing.T) {
	cases := map[int]string{
		2024: "2024-03-31",
		2025: "2025-04-20",
		2026: "2026-04-05",
	}
	for ano, want := range cases {
		if got := Pascoa(ano); got.String() != want {
			t.Errorf("Pascoa(%d) = %s, want %s", ano, got, want)
		}
	}
}

func TestNacionaisMovablesFor2024(t *testing.T) {
	feriados := Nacionais(2024, 1)

	movables := map[string]string{
		"2024-03-29": "Sexta-feira Santa",
		"2024-02-13": "Carnaval",
		"2024-05-30": "Corpus Christi",
		"2024-03-31": "Páscoa",
	}
	for data, nome := range movables {
		if got := feriados[civil.MustParseDate(data)]; got != nome {
			t.Errorf("feriados[%s] = %q, want %q", data, got, nome)
		}
	}
}

func TestNacionaisFixedDates(t *testing.T) {
	feriados := Nacionais(2025, 2)

	for _, data := range []string{
		"2025-01-01", "2025-04-21", "2025-05-01", "2025-09-07",
		"2025-10-12", "2025-11-02", "2025-11-15", "2025-11-20", "2025-12-25",
		"2026-01-01", "2026-12-25",
	} {
		if _, ok := feriados[civil.MustParseDate(data)]; !ok {
			t.Errorf("missing fixed holiday %s", data)
		}
	}

	if _, ok := feriados[civil.MustParseDate("2027-01-01")]; ok {
		t.Error("generated beyond requested range")
	}
}

func TestSetLookupAcrossLegacyKeyFormat(t *testing.T) {
	// The two historical variants keyed holidays as DD/MM/YYYY and
	// YYYY-MM-DD. Both must resolve to the same canonical entry.
	set := NewSet(Nacionais(2024, 1), nil)

	fromBR := civil.MustParseDate("25/12/2024")
	fromISO := civil.MustParseDate("2024-12-25")
	if fromBR != fromISO {
		t.Fatalf("canonical dates differ: %v vs %v", fromBR, fromISO)
	}
	if !set.Contains(fromBR) || !set.Contains(fromISO) {
		t.Fatal("Natal not found through both input formats")
	}
}

func TestSetMunicipalWinsAndTagsOrigin(t *testing.T) {
	aniversario := civil.MustParseDate("2024-06-20")
	set := NewSet(Nacionais(2024, 1), []Entry{
		{Data: aniversario, Nome: "Aniversário da Cidade"},
	})

	if !set.Contains(aniversario) {
		t.Fatal("municipal holiday not found")
	}
	nome, ok := set.Label(aniversario)
	if !ok || nome != "Aniversário da Cidade" {
		t.Fatalf("Label = %q, %v", nome, ok)
	}

	entries := set.Entries(civil.MustParseDate("2024-06-01"), civil.MustParseDate("2024-06-30"))
	if len(entries) != 1 || !entries[0].Municipal {
		t.Fatalf("Entries = %+v", entries)
	}
}

func TestEntriesOrderedWithinRange(t *testing.T) {
	set := NewSet(Nacionais(2024, 1), nil)
	entries := set.Entries(civil.MustParseDate("2024-11-01"), civil.MustParseDate("2024-11-30"))

	want := []string{"2024-11-02", "2024-11-15", "2024-11-20"}
	if len(entries) != len(want) {
		t.Fatalf("Entries returned %d holidays, want %d: %+v", len(entries), len(want), entries)
	}
	for i, data := range want {
		if entries[i].Data != civil.MustParseDate(data) {
			t.Errorf("entries[%d] = %s, want %s", i, entries[i].Data, data)
		}
	}
}
