package shelf_test

import (
	"bytes"
	"strings"
	"testing"

	"shelf-go/internal/encryption"
	"shelf-go/internal/shelf"
)

func TestShelfService_ExportImport(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		src, _, _ := newTestService(t)
		src.AddItem(shelf.ItemInput{Name: str("Milk"), SKU: str("MLK-001"), ExpiryDate: str("2024-01-20")})
		src.AddItem(shelf.ItemInput{Name: str("Eggs"), ExpiryDate: str("2024-01-25"), Notes: str("dozen")})

		enc := encryption.NewTestEncryptor()
		var snapshot bytes.Buffer
		n, err := src.Export(&snapshot, enc)
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if n != 2 {
			t.Errorf("Export() = %d items, want 2", n)
		}

		dst, _, _ := newTestService(t)
		dst.AddItem(shelf.ItemInput{Name: str("Stale"), ExpiryDate: str("2024-01-01")})

		dc, err := enc.Unlock("")
		if err != nil {
			t.Fatalf("Unlock() error = %v", err)
		}
		n, err = dst.Import(&snapshot, dc)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if n != 2 {
			t.Errorf("Import() = %d items, want 2", n)
		}

		items := dst.ListItems("", shelf.FilterAll)
		if len(items) != 2 {
			t.Fatalf("ListItems() = %d items, want 2", len(items))
		}
		if items[0].Name != "Milk" || items[0].SKU != "MLK-001" {
			t.Errorf("first item = %+v, want Milk/MLK-001", items[0])
		}
		if items[1].Notes != "dozen" {
			t.Errorf("Notes = %q, want %q", items[1].Notes, "dozen")
		}
	})

	t.Run("export output is not plaintext", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		svc.AddItem(shelf.ItemInput{Name: str("Milk"), ExpiryDate: str("2024-01-20")})

		var snapshot bytes.Buffer
		if _, err := svc.Export(&snapshot, encryption.NewTestEncryptor()); err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if strings.HasPrefix(snapshot.String(), "[{") {
			t.Error("snapshot starts with raw JSON")
		}
	})

	t.Run("garbage snapshot leaves collection unchanged", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		svc.AddItem(shelf.ItemInput{Name: str("Milk"), ExpiryDate: str("2024-01-20")})

		enc := encryption.NewTestEncryptor()
		dc, _ := enc.Unlock("")
		if _, err := svc.Import(strings.NewReader("garbage data here"), dc); err == nil {
			t.Fatal("Import() succeeded on garbage, want error")
		}

		items := svc.ListItems("", shelf.FilterAll)
		if len(items) != 1 || items[0].Name != "Milk" {
			t.Errorf("collection changed after failed import: %v", items)
		}
	})

	t.Run("invalid item in snapshot rejects the import", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		svc.AddItem(shelf.ItemInput{Name: str("Milk"), ExpiryDate: str("2024-01-20")})

		enc := encryption.NewTestEncryptor()
		var snapshot bytes.Buffer
		payload := `[{"id":"x","name":"","expiryDate":"2024-01-20","createdAt":1}]`
		if err := enc.Encrypt(strings.NewReader(payload), &snapshot); err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}

		dc, _ := enc.Unlock("")
		if _, err := svc.Import(&snapshot, dc); err == nil {
			t.Fatal("Import() succeeded on invalid item, want error")
		}

		items := svc.ListItems("", shelf.FilterAll)
		if len(items) != 1 || items[0].Name != "Milk" {
			t.Errorf("collection changed after failed import: %v", items)
		}
	})
}
