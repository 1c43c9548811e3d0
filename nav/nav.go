// Package nav describes the app's bottom navigation bar.
package nav

import "strings"

type Tab struct {
	Label string
	Path  string
	Icon  string
}

var Tabs = []Tab{
	{Label: "Home", Path: "/", Icon: "⌂"},
	{Label: "Expenses", Path: "/expenses", Icon: "≡"},
	{Label: "Scan", Path: "/upload", Icon: "+"},
	{Label: "Cards", Path: "/cards", Icon: "▭"},
	{Label: "Settings", Path: "/settings", Icon: "⚙"},
}

// Item is a tab as rendered for a given route.
type Item struct {
	Tab
	Active bool
}

// Active returns the tab owning path. "/" only matches itself; other tabs
// also own their sub-routes.
func Active(path string) (Tab, bool) {
	for _, tab := range Tabs {
		if matches(tab.Path, path) {
			return tab, true
		}
	}
	return Tab{}, false
}

// Bar returns every tab with the one owning path marked active.
func Bar(path string) []Item {
	active, _ := Active(path)

	items := make([]Item, 0, len(Tabs))
	for _, tab := range Tabs {
		items = append(items, Item{Tab: tab, Active: tab.Path == active.Path})
	}
	return items
}

func matches(tabPath, path string) bool {
	if tabPath == "/" {
		return path == "/" || path == ""
	}
	return path == tabPath || strings.HasPrefix(path, tabPath+"/")
}
