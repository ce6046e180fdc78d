// Package page holds the view state behind each screen. A router hands a
// page the current path and drives its Load, Reload, Update and Unload
// hooks; pages never render anything themselves.
package page

import (
	"context"
	"errors"
	"strings"
)

type Page interface {
	Load(ctx context.Context, path []string) error
	Reload(ctx context.Context, path []string) error
	Update(ctx context.Context, path []string) error
	// Unload receives the path being navigated to.
	Unload(ctx context.Context, path []string) error
}

// ParsePath splits "search/ponies/" into its non-empty segments.
func ParsePath(s string) []string {
	var path []string
	for _, part := range strings.Split(s, "/") {
		if part = strings.TrimSpace(part); part != "" {
			path = append(path, part)
		}
	}
	return path
}

var ErrNoRoute = errors.New("no page for path")

type route struct {
	match func(path []string) bool
	page  Page
}

// Router picks the page for a path. Navigating within the active page
// calls Update; switching pages unloads the old one first.
type Router struct {
	routes  []route
	current Page
	path    []string
}

func (r *Router) Handle(match func(path []string) bool, p Page) {
	r.routes = append(r.routes, route{match: match, page: p})
}

// Prefix matches paths whose first segment is one of names.
func Prefix(names ...string) func(path []string) bool {
	return func(path []string) bool {
		if len(path) == 0 {
			return false
		}
		for _, name := range names {
			if path[0] == name {
				return true
			}
		}
		return false
	}
}

func (r *Router) Navigate(ctx context.Context, path []string) error {
	var next Page
	for _, rt := range r.routes {
		if rt.match(path) {
			next = rt.page
			break
		}
	}
	if next == nil {
		return ErrNoRoute
	}

	if next == r.current {
		r.path = path
		return next.Update(ctx, path)
	}

	if r.current != nil {
		if err := r.current.Unload(ctx, path); err != nil {
			return err
		}
	}
	r.current = next
	r.path = path
	return next.Load(ctx, path)
}

func (r *Router) Reload(ctx context.Context) error {
	if r.current == nil {
		return nil
	}
	return r.current.Reload(ctx, r.path)
}

func (r *Router) Current() Page {
	return r.current
}

func (r *Router) Path() []string {
	return append([]string(nil), r.path...)
}
