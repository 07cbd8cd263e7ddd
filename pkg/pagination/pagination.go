// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pagination reads page-number paging from query strings and describes
the resulting page in list responses.

Every list endpoint (users, categories, genres, titles, reviews, comments)
accepts ?page=N&limit=M and answers with a [Meta] block alongside the data.
*/
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultPage  = 1
)

// Params is the requested page. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta describes one page of a listing.
//
// Next and Previous are page numbers, or nil at either end of the listing.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	Next       *int `json:"next"`
	Previous   *int `json:"previous"`
}

// NewMeta builds the metadata for page out of total matching rows.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}

	if page < meta.TotalPages {
		next := page + 1
		meta.Next = &next
	}
	if page > 1 {
		previous := min(page-1, max(meta.TotalPages, 1))
		meta.Previous = &previous
	}

	return meta
}

// FromRequest reads "page" and "limit" from the query string.
//
// Malformed or non-positive values fall back to the defaults; a limit above
// [MaxLimit] is capped.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	page := positiveInt(query.Get("page"), DefaultPage)
	limit := min(positiveInt(query.Get("limit"), DefaultLimit), MaxLimit)

	return Params{Page: page, Limit: limit}
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
