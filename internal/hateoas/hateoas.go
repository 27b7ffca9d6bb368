// Package hateoas wraps API payloads in an envelope of named, absolute links
// resolved from a static table of route templates.
package hateoas

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrUnknownRoute is returned when a relation names a route that is not
	// registered in the route table.
	ErrUnknownRoute = errors.New("unknown route")

	// ErrMissingParam is returned when a route template placeholder has no
	// value in the supplied parameters.
	ErrMissingParam = errors.New("missing route parameter")
)

var placeholder = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Params are the values substituted into a route template. Keys that do not
// match a placeholder are appended as query parameters.
type Params map[string]string

// Route names a registered route and the parameters used to build its URL.
type Route struct {
	Name   string
	Params Params
}

// Relations maps a link relation (self, list, ...) to the route it points at.
type Relations map[string]Route

// Links maps a link relation to an absolute URL.
type Links map[string]string

// Envelope is the canonical single-resource response body.
type Envelope struct {
	Data  any   `json:"data"`
	Links Links `json:"links"`
}

// RouteTable maps route names to path templates such as /api/products/{id}.
// It is immutable once built.
type RouteTable struct {
	templates map[string]string
}

// NewRouteTable copies templates into a new table.
func NewRouteTable(templates map[string]string) RouteTable {
	t := make(map[string]string, len(templates))
	for name, tpl := range templates {
		t[name] = tpl
	}
	return RouteTable{templates: t}
}

// Path expands the named template with params. The result is a path plus an
// optional query string.
func (rt RouteTable) Path(name string, params Params) (string, error) {
	tpl, ok := rt.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}

	used := make(map[string]bool)
	var missing string
	path := placeholder.ReplaceAllStringFunc(tpl, func(m string) string {
		key := m[1 : len(m)-1]
		val, ok := params[key]
		if !ok {
			if missing == "" {
				missing = key
			}
			return m
		}
		used[key] = true
		return url.PathEscape(val)
	})
	if missing != "" {
		return "", fmt.Errorf("%w: %q for route %q", ErrMissingParam, missing, name)
	}

	extra := url.Values{}
	for k, v := range params {
		if !used[k] {
			extra.Set(k, v)
		}
	}
	if len(extra) > 0 {
		path += "?" + extra.Encode()
	}
	return path, nil
}

// Names lists the registered route names in sorted order.
func (rt RouteTable) Names() []string {
	names := make([]string, 0, len(rt.templates))
	for name := range rt.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Linker resolves relations to absolute URLs against a base URL.
type Linker struct {
	routes  RouteTable
	baseURL string
}

// NewLinker creates a Linker. baseURL is scheme://host[:port]; an empty
// baseURL means every request supplies its own through ForRequest.
func NewLinker(routes RouteTable, baseURL string) *Linker {
	return &Linker{routes: routes, baseURL: strings.TrimRight(baseURL, "/")}
}

// ForRequest returns a Linker bound to the base URL the client used to reach
// the server. A configured base URL always wins over the request.
func (l *Linker) ForRequest(r *http.Request) *Linker {
	if l.baseURL != "" {
		return l
	}
	return &Linker{routes: l.routes, baseURL: RequestBaseURL(r)}
}

// BaseURL returns the base every link is resolved against.
func (l *Linker) BaseURL() string {
	return l.baseURL
}

// URL resolves a single route to an absolute URL.
func (l *Linker) URL(route Route) (string, error) {
	path, err := l.routes.Path(route.Name, route.Params)
	if err != nil {
		return "", err
	}
	return l.baseURL + path, nil
}

// AddLinks wraps payload in an Envelope whose links are resolved from
// relations. Any unresolvable relation fails the whole call.
func (l *Linker) AddLinks(payload any, relations Relations) (*Envelope, error) {
	links, err := l.Links(relations)
	if err != nil {
		return nil, err
	}
	return &Envelope{Data: payload, Links: links}, nil
}

// Links resolves every relation.
func (l *Linker) Links(relations Relations) (Links, error) {
	links := make(Links, len(relations))
	for rel, route := range relations {
		u, err := l.URL(route)
		if err != nil {
			return nil, fmt.Errorf("link %q: %w", rel, err)
		}
		links[rel] = u
	}
	return links, nil
}

// WrapItems wraps every item in its own Envelope. relationsFor returns the
// relations of a given item, typically its own self link plus a shared list
// link.
func WrapItems[T any](l *Linker, items []T, relationsFor func(T) Relations) ([]*Envelope, error) {
	out := make([]*Envelope, 0, len(items))
	for _, item := range items {
		env, err := l.AddLinks(item, relationsFor(item))
		if err != nil {
			return nil, err
		}
		out = append(out, env)
	}
	return out, nil
}

// PageLinks builds self/first/last and, where they exist, prev/next links
// for page number page of a list route.
func (l *Linker) PageLinks(name string, params Params, page, totalPages, limit int) (Links, error) {
	at := func(p int) Route {
		merged := make(Params, len(params)+2)
		for k, v := range params {
			merged[k] = v
		}
		merged["page"] = strconv.Itoa(p)
		merged["limit"] = strconv.Itoa(limit)
		return Route{Name: name, Params: merged}
	}

	last := max(totalPages, 1)
	rels := Relations{
		"self":  at(page),
		"first": at(1),
		"last":  at(last),
	}
	if page > 1 {
		rels["prev"] = at(min(page-1, last))
	}
	if page < totalPages {
		rels["next"] = at(page + 1)
	}
	return l.Links(rels)
}

// RequestBaseURL derives scheme://host from the request, honouring
// X-Forwarded-Proto and X-Forwarded-Host set by a trusted proxy.
func RequestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if host == "" {
		host = "localhost"
	}
	return scheme + "://" + host
}
