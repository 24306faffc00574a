// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"daylist/internal/service"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	// CompletedHeader introduces the completed section of a view.
	CompletedHeader = "completed:"
)

// FormatTask formats a task line for the default view.
// Format: "{N:>4}  {TITLE}\n" (4-wide right-aligned number, two spaces, title).
// Starred tasks carry a trailing " *".
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s%s\n", num, normalizeTitle(task.Title), starMarker(task))
}

// FormatTaskIndented formats a task line inside a single-list section.
// Format: "    {N:>4}  {TITLE}\n" (4 spaces indent + 4-wide number + 2 spaces + title).
func FormatTaskIndented(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "    %4d  %s%s\n", num, normalizeTitle(task.Title), starMarker(task))
}

// FormatTaskWithLetter formats a task line for a named list section.
// The reference combines the list letter and the task number (e.g. "a1").
func FormatTaskWithLetter(w io.Writer, letter rune, num int, task service.Task) {
	ref := fmt.Sprintf("%c%d", letter, num)
	fmt.Fprintf(w, "%4s  %s%s\n", ref, normalizeTitle(task.Title), starMarker(task))
}

// FormatCompletedTask formats a completed task line. Completed tasks have
// no number because they cannot be referenced.
func FormatCompletedTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "   x  %s%s\n", normalizeTitle(task.Title), starMarker(task))
}

// FormatListHeader formats a list section header.
func FormatListHeader(w io.Writer, name string, isDefault bool) {
	display := normalizeListName(name)
	if isDefault {
		display += " [default]"
	}
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, display)
	fmt.Fprintln(w, ListSeparator)
}

// FormatListName formats a list name line for the lists command.
// Named lists are prefixed with their letter; the default view has none.
func FormatListName(w io.Writer, letter rune, list service.TaskList) {
	name := normalizeListName(list.Name)
	if list.IsDefault {
		fmt.Fprintf(w, "   %s [default]\n", name)
		return
	}
	fmt.Fprintf(w, "%c  %s\n", letter, name)
}

// starMarker returns the suffix for important tasks.
func starMarker(task service.Task) string {
	if task.IsImportant {
		return " *"
	}
	return ""
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeListName normalizes a list name for display.
// Empty or whitespace-only names become "(untitled)".
func normalizeListName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
