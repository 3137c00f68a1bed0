// Package router resolves navigation paths into routes and keeps back history.
package router

import (
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// Kind identifies a destination
type Kind uint8

const (
	Home    Kind = iota // "/"
	Listing             // "/pokedex?page=N"
	Detail              // "/pokemon/{nameOrID}"
)

var kindNames = [...]string{
	Home:    "home",
	Listing: "listing",
	Detail:  "detail",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Route is a resolved destination
type Route struct {
	Kind Kind
	Path string // canonical path
	Page int    // listing page, zero-based
	Key  string // detail name or id, lower-cased
}

const (
	listingPrefix = "/pokedex"
	detailPrefix  = "/pokemon/"
)

// HomeRoute is the root destination
var HomeRoute = Route{Kind: Home, Path: "/"}

// Parse resolves a path; anything unrecognised resolves to home
func Parse(raw string) Route {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return HomeRoute
	}
	p := strings.TrimSuffix(u.Path, "/")

	switch {
	case p == listingPrefix:
		page, err := strconv.Atoi(u.Query().Get("page"))
		if err != nil || page < 0 {
			page = 0
		}
		return Route{Kind: Listing, Path: ListingPath(page), Page: page}

	case strings.HasPrefix(p, detailPrefix):
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(p, detailPrefix)))
		if key == "" || strings.Contains(key, "/") {
			return HomeRoute
		}
		return Route{Kind: Detail, Path: DetailPath(key), Key: key}
	}
	return HomeRoute
}

// ListingPath builds the path for a listing page
func ListingPath(page int) string {
	if page < 0 {
		page = 0
	}
	return listingPrefix + "?page=" + strconv.Itoa(page)
}

// DetailPath builds the path for a detail view
func DetailPath(key string) string {
	return detailPrefix + url.PathEscape(strings.ToLower(strings.TrimSpace(key)))
}

// Offset returns the listing offset for a page of the given size
func (r Route) Offset(pageSize int) int {
	return r.Page * pageSize
}

// Router holds the current route and back history
type Router struct {
	mu      sync.Mutex
	history []Route
	max     int
}

// New creates a router positioned at start, keeping at most max back entries (0 = unbounded)
func New(start string, max int) *Router {
	return &Router{history: []Route{Parse(start)}, max: max}
}

// Current returns the active route
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[len(r.history)-1]
}

// Navigate resolves path and pushes it; navigating to the current path is a no-op
func (r *Router) Navigate(path string) Route {
	route := Parse(path)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.history[len(r.history)-1].Path == route.Path {
		return route
	}
	r.history = append(r.history, route)
	if r.max > 0 && len(r.history) > r.max+1 {
		r.history = append(r.history[:0], r.history[len(r.history)-r.max-1:]...)
	}
	return route
}

// Back pops the current route; ok is false at the root of history
func (r *Router) Back() (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 1 {
		return r.history[0], false
	}
	r.history = r.history[:len(r.history)-1]
	return r.history[len(r.history)-1], true
}

// Depth returns the number of routes in history, current included
func (r *Router) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.history)
}
