package routes

import "net/http"

// Group organizes routes under a common prefix. Children inherit the
// accumulated prefix of their parents.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	walk(groups, func(pattern string, route Route) {
		mux.HandleFunc(pattern, route.Handler)
	})
}

// Patterns returns the ServeMux patterns the given groups register, in
// declaration order.
func Patterns(groups ...Group) []string {
	var patterns []string
	walk(groups, func(pattern string, _ Route) {
		patterns = append(patterns, pattern)
	})
	return patterns
}

func walk(groups []Group, visit func(pattern string, route Route)) {
	for _, group := range groups {
		walkGroup("", group, visit)
	}
}

func walkGroup(parentPrefix string, group Group, visit func(string, Route)) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		visit(route.Pattern(fullPrefix), route)
	}
	for _, child := range group.Children {
		walkGroup(fullPrefix, child, visit)
	}
}
