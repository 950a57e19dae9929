package matndex

import (
	"context"
	"errors"
	"testing"

	"github.com/maktaba-cloud/matndex/internal/domain"
	"github.com/maktaba-cloud/matndex/internal/domain/search/request"
	"github.com/maktaba-cloud/matndex/internal/domain/search/result"
	"github.com/maktaba-cloud/matndex/internal/highlight"
	"github.com/maktaba-cloud/matndex/internal/repository/metadata"
	searchuc "github.com/maktaba-cloud/matndex/internal/usecase/search"
)

type fakeRepo struct {
	hits    []result.RawHit
	total   int64
	lastReq request.Request
}

func (f *fakeRepo) Search(_ context.Context, req request.Request) ([]result.RawHit, int64, error) {
	f.lastReq = req
	return f.hits, f.total, nil
}

func intPtr(n int) *int { return &n }

func newTestClient(t *testing.T, repo *fakeRepo) *Client {
	t.Helper()

	snap, err := metadata.NewSnapshot(
		[]domain.Text{
			{ID: 1, Title: "الرسالة", AuthorID: 10, Tags: []string{"تصوف"}},
			{ID: 2, Title: "المقدمة", AuthorID: 11, Tags: []string{"تاريخ"}},
		},
		[]domain.Author{
			{ID: 10, Name: "القشيري", DeathDateAH: intPtr(465)},
			{ID: 11, Name: "ابن خلدون", DeathDateAH: intPtr(808)},
		},
	)
	if err != nil {
		t.Fatalf("build snapshot: %v", err)
	}

	svc := searchuc.New(repo, snap, highlight.New("<em>", "</em>"),
		searchuc.Limits{DefaultPageSize: 20, MaxPageSize: 100, ExportPageSize: 5000})

	return &Client{snapshot: snap, searchSvc: svc}
}

func TestSearchBuilder_Do(t *testing.T) {
	repo := &fakeRepo{
		hits: []result.RawHit{
			{TextID: 1, VolumeLabel: "2", PageNumber: 9, SourceURI: "t1/v2/p9",
				Fragments: []string{"عن <em>التصوف</em> قال"}},
		},
		total: 5,
	}
	client := newTestClient(t, repo)

	page, err := client.Search("التصوف").
		Genres("تصوف").
		DiedBetween(300, 600).
		PageSize(10).
		Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := repo.lastReq.EligibleTextIDs()
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("expected eligible [1], got %v", ids)
	}
	if repo.lastReq.PageSize() != 10 {
		t.Errorf("expected page size 10, got %d", repo.lastReq.PageSize())
	}

	if page.Total != 5 || len(page.Hits) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	hit := page.Hits[0]
	if hit.Title != "الرسالة" || hit.Author != "القشيري" {
		t.Errorf("unexpected enrichment: %+v", hit)
	}
	if len(hit.Snippets) != 1 || hit.Snippets[0].Match != "التصوف" {
		t.Errorf("unexpected snippets: %+v", hit.Snippets)
	}
}

func TestSearchBuilder_InvalidQuery(t *testing.T) {
	client := newTestClient(t, &fakeRepo{})

	_, err := client.Search("ابن ال*").Do(context.Background())
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestSearchBuilder_InvalidDeathRange(t *testing.T) {
	client := newTestClient(t, &fakeRepo{})

	_, err := client.Search("كتاب").DiedBetween(800, 400).Do(context.Background())
	if err == nil {
		t.Fatal("expected error for inverted death range")
	}
}

func TestSearchBuilder_Export(t *testing.T) {
	repo := &fakeRepo{}
	client := newTestClient(t, repo)

	_, err := client.Search("كتاب").Page(4).PageSize(10).Export(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastReq.Page() != 1 {
		t.Errorf("export must pin page to 1, got %d", repo.lastReq.Page())
	}
	if repo.lastReq.PageSize() != 5000 {
		t.Errorf("export must use the export cap, got %d", repo.lastReq.PageSize())
	}
}
