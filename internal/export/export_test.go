package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

func TestBuildTemplate(t *testing.T) {
	data, err := BuildTemplate()
	if err != nil {
		t.Fatalf("BuildTemplate failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("len(rows) = %d, want 5", len(rows))
	}
	for i, h := range Header {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}

	tests := []struct {
		row  int
		want []string
	}{
		{1, []string{"5000", "2025-04-01", "Salary", "Income", "Salary", "Bank"}},
		{4, []string{"10000", "2025-04-04", "EMI", "Liability", "Loan", "Credit Card"}},
	}
	for _, tt := range tests {
		for i, want := range tt.want {
			if rows[tt.row][i] != want {
				t.Errorf("rows[%d][%d] = %q, want %q", tt.row, i, rows[tt.row][i], want)
			}
		}
	}
}

func TestLocalSink_NeverOverwrites(t *testing.T) {
	ctx := context.Background()
	sink, err := NewLocalSink(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalSink failed: %v", err)
	}

	if exists, _ := sink.Exists(ctx, "u1"); exists {
		t.Fatal("template should not exist yet")
	}
	if err := sink.Create(ctx, "u1", []byte("first")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := sink.Create(ctx, "u1", []byte("second")); !errors.Is(err, ErrExists) {
		t.Errorf("second Create() error = %v, want ErrExists", err)
	}

	got, _ := os.ReadFile(sink.Path("u1"))
	if string(got) != "first" {
		t.Errorf("template content = %q, want first", got)
	}
}

func TestExporter_Export(t *testing.T) {
	ctx := context.Background()
	sink, _ := NewLocalSink(t.TempDir())
	exp := NewExporter(sink, zerolog.Nop())

	created, err := exp.Export(ctx, "u1")
	if err != nil || !created {
		t.Fatalf("first Export() = %v, %v; want true, nil", created, err)
	}
	created, err = exp.Export(ctx, "u1")
	if err != nil || created {
		t.Errorf("second Export() = %v, %v; want false, nil", created, err)
	}
}
