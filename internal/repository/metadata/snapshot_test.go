package metadata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/maktaba-cloud/matndex/internal/domain"
)

func intPtr(n int) *int { return &n }

func TestNewSnapshot_Lookups(t *testing.T) {
	snap, err := NewSnapshot(
		[]domain.Text{
			{ID: 2, Title: "الرسالة", AuthorID: 10},
			{ID: 1, Title: "الإحياء", AuthorID: 11},
		},
		[]domain.Author{
			{ID: 10, Name: "القشيري", DeathDateAH: intPtr(465)},
			{ID: 11, Name: "الغزالي", DeathDateAH: intPtr(505)},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := snap.TextIDs(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected sorted text ids [1 2], got %v", got)
	}
	txt, ok := snap.Text(2)
	if !ok || txt.Title != "الرسالة" {
		t.Errorf("unexpected text lookup: %+v ok=%v", txt, ok)
	}
	if _, ok := snap.Text(99); ok {
		t.Error("did not expect text 99")
	}
	a, ok := snap.Author(11)
	if !ok || a.Name != "الغزالي" {
		t.Errorf("unexpected author lookup: %+v ok=%v", a, ok)
	}
	if snap.TextCount() != 2 || snap.AuthorCount() != 2 {
		t.Errorf("unexpected counts: %d texts, %d authors", snap.TextCount(), snap.AuthorCount())
	}
}

func TestNewSnapshot_ObservedDeathRange(t *testing.T) {
	snap, err := NewSnapshot(nil, []domain.Author{
		{ID: 1, DeathDateAH: intPtr(505)},
		{ID: 2, DeathDateAH: intPtr(310)},
		{ID: 3}, // no recorded death date, must not affect the range
		{ID: 4, DeathDateAH: intPtr(728)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	min, max := snap.ObservedDeathRange()
	if min != 310 || max != 728 {
		t.Errorf("expected range [310,728], got [%d,%d]", min, max)
	}
}

func TestNewSnapshot_RejectsDuplicates(t *testing.T) {
	_, err := NewSnapshot([]domain.Text{{ID: 1}, {ID: 1}}, nil)
	if err == nil {
		t.Fatal("expected error for duplicate text id")
	}
	_, err = NewSnapshot(nil, []domain.Author{{ID: 5}, {ID: 5}})
	if err == nil {
		t.Fatal("expected error for duplicate author id")
	}
}

func TestNewSnapshot_RejectsNonPositiveTextID(t *testing.T) {
	if _, err := NewSnapshot([]domain.Text{{ID: 0, Title: "x"}}, nil); err == nil {
		t.Fatal("expected error for text id 0")
	}
}

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	payload := `{
		"texts": [
			{"id": 1, "title": "الإحياء", "author_id": 11, "tags": ["تصوف", "أخلاق"], "volume_count": 4, "extra": {"print": "بولاق"}}
		],
		"authors": [
			{"id": 11, "name": "الغزالي", "death_date_ah": 505},
			{"id": 12, "name": "مجهول"}
		]
	}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	texts, authors, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(texts) != 1 || len(authors) != 2 {
		t.Fatalf("expected 1 text and 2 authors, got %d/%d", len(texts), len(authors))
	}
	if texts[0].Title != "الإحياء" || len(texts[0].Tags) != 2 || texts[0].Extra["print"] != "بولاق" {
		t.Errorf("unexpected text: %+v", texts[0])
	}
	if authors[0].DeathDateAH == nil || *authors[0].DeathDateAH != 505 {
		t.Errorf("unexpected death date: %+v", authors[0])
	}
	if authors[1].DeathDateAH != nil {
		t.Error("expected absent death date to stay nil")
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	_, _, err := NewFileSource("/nonexistent/catalog.json").Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_WrapsSourceError(t *testing.T) {
	_, err := Load(context.Background(), NewFileSource("/nonexistent/catalog.json"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrMetadataUnavailable) {
		t.Errorf("expected ErrMetadataUnavailable, got %v", err)
	}
}

func TestParseText_RejectsBadFields(t *testing.T) {
	if _, err := parseText("matndex:text:7", "matndex:", map[string]string{"author_id": "abc"}); err == nil {
		t.Error("expected error for unparsable author_id")
	}
	if _, err := parseText("matndex:text:abc", "matndex:", nil); err == nil {
		t.Error("expected error for non-numeric key")
	}
}

func TestParseAuthor_ExtraFields(t *testing.T) {
	a, err := parseAuthor("matndex:author:11", "matndex:", map[string]string{
		"name":          "الغزالي",
		"death_date_ah": "505",
		"nisba":         "الطوسي",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != 11 || a.Name != "الغزالي" {
		t.Errorf("unexpected author: %+v", a)
	}
	if a.DeathDateAH == nil || *a.DeathDateAH != 505 {
		t.Errorf("unexpected death date: %+v", a.DeathDateAH)
	}
	if a.Extra["nisba"] != "الطوسي" {
		t.Errorf("expected extra field kept, got %+v", a.Extra)
	}
}
