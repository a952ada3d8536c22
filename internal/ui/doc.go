// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has two views over the same search service and favorites collection:
//  1. [SearchView] : Type a term, browse results, and add the highlighted track to favorites
//  2. [FavoritesView] : Browse stored favorites and remove the highlighted one
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Search and store calls run as [tea.Cmd]s so the interface never blocks on the network or disk.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, tab, x, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
