package models

import (
	"net/url"
	"strconv"
)

type Author struct {
	UID      int64  `json:"uid"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type Board struct {
	BID       int64     `json:"bid"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt LocalTime `json:"createdAt"`
	UpdatedAt LocalTime `json:"updatedAt"`
	Author    *Author   `json:"author,omitempty"`
}

// BoardInput is the body of create and update calls.
type BoardInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Envelope wraps every board API response.
type Envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// PageInfo describes one page of a listing. Number is zero-based.
type PageInfo struct {
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

type BoardPage struct {
	Content []Board  `json:"content"`
	Page    PageInfo `json:"page"`
}

// Current returns the one-based number of the page.
func (p BoardPage) Current() int {
	return p.Page.Number + 1
}

const (
	DefaultPage = 1
	DefaultSize = 10
	DefaultSort = "createdAt,desc"
)

// PageParams selects a page of the board list. Page is one-based; zero
// values fall back to the defaults.
type PageParams struct {
	Page int
	Size int
	Sort string
}

func (p PageParams) WithDefaults() PageParams {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Sort == "" {
		p.Sort = DefaultSort
	}
	return p
}

// Query encodes the params, defaults applied, as a query string.
func (p PageParams) Query() url.Values {
	p = p.WithDefaults()
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("size", strconv.Itoa(p.Size))
	q.Set("sort", p.Sort)
	return q
}
