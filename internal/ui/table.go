package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/vietdv277/cfnperms/pkg/types"
)

const (
	minOperationWidth  = 9
	minPermissionWidth = 10
	maxPermissionWidth = 80
)

type tableRow struct {
	operation  string
	permission string
	style      lipgloss.Style
}

// PrintPermissionTable prints a permission set in a styled box table
func PrintPermissionTable(w io.Writer, set types.PermissionSet) {
	if len(set) == 0 {
		fmt.Fprintln(w, noPermissionsMessage)
		return
	}

	headers := []string{"Operation", "Permission"}

	var rows []tableRow
	for _, entry := range set {
		op := strings.ToUpper(string(entry.Operation))
		if len(entry.Permissions) == 0 {
			rows = append(rows, tableRow{operation: op, permission: "-", style: MutedStyle})
			continue
		}
		for i, perm := range entry.Permissions {
			if i > 0 {
				op = ""
			}
			rows = append(rows, tableRow{operation: op, permission: perm, style: PermissionStyle})
		}
	}

	widths := []int{minOperationWidth, minPermissionWidth}
	for _, r := range rows {
		if sw := runewidth.StringWidth(r.operation); sw > widths[0] {
			widths[0] = sw
		}
		if sw := runewidth.StringWidth(r.permission); sw > widths[1] {
			widths[1] = sw
		}
	}
	if widths[1] > maxPermissionWidth {
		widths[1] = maxPermissionWidth
	}

	var sb strings.Builder

	// Top border
	writeTableBorder(&sb, widths, TopLeft, TopT, TopRight)

	// Header row
	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range headers {
		sb.WriteString(HeaderStyle.Render(" " + padRight(h, widths[i]) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	// Header separator
	writeTableBorder(&sb, widths, LeftT, Cross, RightT)

	// Data rows
	for _, r := range rows {
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(OperationStyle.Render(" " + padRight(r.operation, widths[0]) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(r.style.Render(" " + padRight(r.permission, widths[1]) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
	}

	// Bottom border
	writeTableBorder(&sb, widths, BottomLeft, BottomT, BottomRight)

	fmt.Fprint(w, sb.String())

	printSummary(w, set)
}

func writeTableBorder(sb *strings.Builder, widths []int, left, mid, right string) {
	sb.WriteString(BorderStyle.Render(left))
	for i, w := range widths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
		if i < len(widths)-1 {
			sb.WriteString(BorderStyle.Render(mid))
		}
	}
	sb.WriteString(BorderStyle.Render(right))
	sb.WriteString("\n")
}

func printSummary(w io.Writer, set types.PermissionSet) {
	unique := make(map[string]struct{})
	total := 0
	for _, entry := range set {
		total += len(entry.Permissions)
		for _, p := range entry.Permissions {
			unique[p] = struct{}{}
		}
	}

	summary := fmt.Sprintf("  %d permissions across %d operations", total, len(set))
	if len(unique) != total {
		summary += MutedStyle.Render(fmt.Sprintf(" (%d unique)", len(unique)))
	}

	fmt.Fprintln(w, summary)
}
