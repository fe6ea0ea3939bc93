// Package tui implements the interactive dashboard. A Presenter forwards
// orchestrator notifications to a bubbletea program; the model renders the
// phase, a progress bar with its sparkline and, once finished, the outline.
// Enter acknowledges the result and generates again; q quits.
package tui
