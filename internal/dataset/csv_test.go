package dataset

import (
	"errors"
	"testing"

	pberrors "github.com/priceboard/priceboard/internal/errors"
)

const sampleCSV = `Brand,Price,RAM_Size,Storage_Capacity,Processor_Speed,Screen_Size,Weight
HP,17395.09,16,512,3.8,11.2,2.64
Acer,31607.61,4,1000,3.7,11.3,3.26
Lenovo,22600.51,4,256,2.2,11.7,2.36
`

func TestParseCSV(t *testing.T) {
	listings, err := ParseCSV([]byte(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(listings) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.Brand != "HP" {
		t.Errorf("brand = %q, want HP", first.Brand)
	}
	if first.Price != 17395.09 {
		t.Errorf("price = %v, want 17395.09", first.Price)
	}
	if first.RAMSize != 16 || first.StorageCapacity != 512 {
		t.Errorf("ram/storage = %d/%d, want 16/512", first.RAMSize, first.StorageCapacity)
	}
	if first.ProcessorSpeed != 3.8 || first.ScreenSize != 11.2 || first.Weight != 2.64 {
		t.Errorf("specs mismatch: %+v", first)
	}
	// Derived columns are not the parser's business
	if first.Marketplace != "" || first.City != "" || first.Rating != 0 {
		t.Errorf("parser should not populate derived columns: %+v", first)
	}
}

func TestParseCSV_ReorderedHeader(t *testing.T) {
	csv := "Price,Brand,Weight,Screen_Size,Processor_Speed,Storage_Capacity,RAM_Size\n" +
		"9999,Dell,1.5,13.3,2.4,512,8\n"
	listings, err := ParseCSV([]byte(csv))
	if err != nil {
		t.Fatal(err)
	}
	if listings[0].Brand != "Dell" || listings[0].RAMSize != 8 {
		t.Errorf("column order should not matter: %+v", listings[0])
	}
}

func TestParseCSV_MissingColumn(t *testing.T) {
	csv := "Brand,Price,RAM_Size\nHP,100,8\n"
	_, err := ParseCSV([]byte(csv))
	if err == nil {
		t.Fatal("expected schema error")
	}
	if pberrors.GetCode(err) != pberrors.CodeSchemaMismatch {
		t.Errorf("code = %q, want SCHEMA_MISMATCH", pberrors.GetCode(err))
	}
}

func TestParseCSV_MalformedRows(t *testing.T) {
	header := "Brand,Price,RAM_Size,Storage_Capacity,Processor_Speed,Screen_Size,Weight\n"
	tests := []struct {
		name string
		row  string
	}{
		{"non-numeric price", "HP,cheap,8,512,2.4,13.3,1.5"},
		{"negative price", "HP,-5,8,512,2.4,13.3,1.5"},
		{"zero ram", "HP,9999,0,512,2.4,13.3,1.5"},
		{"fractional ram", "HP,9999,8.5,512,2.4,13.3,1.5"},
		{"empty brand", ",9999,8,512,2.4,13.3,1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV([]byte(header + tt.row + "\n"))
			if err == nil {
				t.Fatal("expected malformed-row error")
			}
			if pberrors.GetCode(err) != pberrors.CodeMalformedRow {
				t.Errorf("code = %q, want MALFORMED_ROW", pberrors.GetCode(err))
			}
		})
	}
}

func TestParseCSV_EmptyBody(t *testing.T) {
	csv := "Brand,Price,RAM_Size,Storage_Capacity,Processor_Speed,Screen_Size,Weight\n"
	listings, err := ParseCSV([]byte(csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(listings) != 0 {
		t.Errorf("expected no listings, got %d", len(listings))
	}
}

func TestParseCSV_GarbageInput(t *testing.T) {
	_, err := ParseCSV([]byte{})
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	var pe *pberrors.PriceboardError
	if !errors.As(err, &pe) {
		t.Errorf("expected structured error, got %T", err)
	}
}
