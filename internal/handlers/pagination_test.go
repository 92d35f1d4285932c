package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestParseListQueryDefaults(t *testing.T) {
	c := testContext(t, "/auth/getAllCustomers")

	q, apiErr := parseListQuery(c)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if q.Page != 1 || q.Limit != 5 {
		t.Fatalf("expected defaults page=1 limit=5, got page=%d limit=%d", q.Page, q.Limit)
	}
}

func TestParseListQueryExplicitValues(t *testing.T) {
	c := testContext(t, "/auth/getAllCustomers?page=3&limit=20&status=pending&search=kings")

	q, apiErr := parseListQuery(c)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if q.Page != 3 || q.Limit != 20 {
		t.Fatalf("expected page=3 limit=20, got page=%d limit=%d", q.Page, q.Limit)
	}
	if q.Status != "pending" || q.Search != "kings" {
		t.Fatalf("expected status/search to pass through, got %+v", q)
	}
}

func TestParseListQueryRejectsBadValues(t *testing.T) {
	tests := []struct {
		target  string
		message string
	}{
		{"/x?limit=0", "Please provide limit"},
		{"/x?limit=abc", "Please provide limit"},
		{"/x?limit=-5", "Please provide limit"},
		{"/x?page=0", "Please provide page"},
		{"/x?page=abc", "Please provide page"},
	}

	for _, tt := range tests {
		c := testContext(t, tt.target)
		_, apiErr := parseListQuery(c)
		if apiErr == nil {
			t.Fatalf("expected error for %s", tt.target)
		}
		if apiErr.Code != 400 || apiErr.Message != tt.message {
			t.Fatalf("expected 400 %q for %s, got %d %q", tt.message, tt.target, apiErr.Code, apiErr.Message)
		}
	}
}

func TestSearchFilterBuildsRegexOr(t *testing.T) {
	or := searchFilter("kings", "fullName", "email", "phoneNumber")
	if len(or) != 3 {
		t.Fatalf("expected one clause per field, got %d", len(or))
	}

	if searchFilter("", "fullName") != nil {
		t.Fatal("expected nil filter for empty search term")
	}
	if searchFilter("   ", "fullName") != nil {
		t.Fatal("expected nil filter for blank search term")
	}
}

func TestIsNextPage(t *testing.T) {
	tests := []struct {
		page, limit, total int64
		want               bool
	}{
		{1, 5, 6, true},
		{1, 5, 5, false},
		{2, 5, 11, true},
		{3, 5, 11, false},
		{1, 5, 0, false},
	}
	for _, tt := range tests {
		if got := isNextPage(tt.page, tt.limit, tt.total); got != tt.want {
			t.Fatalf("isNextPage(%d, %d, %d) = %v, want %v", tt.page, tt.limit, tt.total, got, tt.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit int64
		want         int64
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 5, 3},
	}
	for _, tt := range tests {
		if got := totalPages(tt.total, tt.limit); got != tt.want {
			t.Fatalf("totalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestPageEnvelopeTotalLengthDependsOnSearch(t *testing.T) {
	idle := listQuery{Page: 1, Limit: 5}
	envelope := pageEnvelope(idle, nil, 3, 40)
	if envelope["totalLength"].(int64) != 40 {
		t.Fatalf("idle view should report the bare total, got %v", envelope["totalLength"])
	}

	searching := listQuery{Page: 1, Limit: 5, Search: "kings"}
	envelope = pageEnvelope(searching, nil, 3, 40)
	if envelope["totalLength"].(int64) != 3 {
		t.Fatalf("search should report the filtered total, got %v", envelope["totalLength"])
	}
	if envelope["isNextPage"].(bool) {
		t.Fatal("3 results on a 5-limit page should have no next page")
	}
	if envelope["totalPages"].(int64) != 1 {
		t.Fatalf("expected 1 total page, got %v", envelope["totalPages"])
	}
}
