package request

import (
	"errors"
	"testing"

	"github.com/maktaba-cloud/matndex/internal/domain"
)

func TestNew_EmptyQueryRejected(t *testing.T) {
	_, err := New("", false, nil, 1, 20)
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestNew_PhraseWithWildcardRejected(t *testing.T) {
	_, err := New("ابن ال*", false, nil, 1, 20)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestNew_SingleTokenWildcardAllowed(t *testing.T) {
	r, err := New("اب*", false, nil, 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "اب*" {
		t.Errorf("unexpected query %q", r.Query())
	}
}

func TestNew_PageClampedToOne(t *testing.T) {
	r, err := New("كتاب", true, nil, 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Page() != 1 {
		t.Errorf("expected page 1, got %d", r.Page())
	}
	if !r.Exact() {
		t.Error("expected exact flag preserved")
	}
}

func TestNew_NonPositivePageSizeRejected(t *testing.T) {
	if _, err := New("كتاب", false, nil, 1, 0); err == nil {
		t.Fatal("expected error for page size 0")
	}
}

func TestNew_EligibleIDsCopied(t *testing.T) {
	ids := []int{1, 2, 3}
	r, _ := New("كتاب", false, ids, 1, 20)
	ids[0] = 99
	if r.EligibleTextIDs()[0] != 1 {
		t.Error("request aliased caller's id slice")
	}
}
