package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const defaultPageLimit = 5

type listQuery struct {
	Page   int64
	Limit  int64
	Status string
	Search string
}

// parseListQuery reads the shared pagination query parameters. Limit
// defaults to 5 and page to 1; both must resolve to a positive integer.
func parseListQuery(c *gin.Context) (listQuery, *apiError) {
	q := listQuery{
		Page:   1,
		Limit:  defaultPageLimit,
		Status: strings.TrimSpace(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
	}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			return listQuery{}, badRequest("Please provide limit")
		}
		q.Limit = parsed
	}

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			return listQuery{}, badRequest("Please provide page")
		}
		q.Page = parsed
	}

	return q, nil
}

// searchFilter builds a case-insensitive substring match OR'd across the
// given fields. Returns nil when the term is empty so callers can merge it
// into their status filter unconditionally.
func searchFilter(search string, fields ...string) []bson.M {
	if strings.TrimSpace(search) == "" {
		return nil
	}
	or := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.M{field: bson.M{"$regex": search, "$options": "i"}})
	}
	return or
}

func isNextPage(page, limit, filteredTotal int64) bool {
	return page*limit < filteredTotal
}

func totalPages(filteredTotal, limit int64) int64 {
	if filteredTotal <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(filteredTotal) / float64(limit)))
}

// pageEnvelope assembles the pagination fields of a list response. The
// totalLength reported to an idle list view is the bare status-filtered
// count; a search reports the search-filtered count instead.
func pageEnvelope(q listQuery, data interface{}, filteredTotal, bareTotal int64) gin.H {
	totalLength := bareTotal
	if q.Search != "" {
		totalLength = filteredTotal
	}
	return gin.H{
		"statusCode":  200,
		"data":        data,
		"currentPage": q.Page,
		"totalLength": totalLength,
		"isNextPage":  isNextPage(q.Page, q.Limit, filteredTotal),
		"totalPages":  totalPages(filteredTotal, q.Limit),
	}
}
