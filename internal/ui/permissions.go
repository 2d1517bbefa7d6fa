package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vietdv277/cfnperms/pkg/types"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by WritePermissions
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

const (
	noPermissionsMessage = "No permissions found for the specified criteria."
	noneDefinedMessage   = "No specific permissions defined"
	ruleWidth            = 50
)

// DisplayPermissions prints a permission set as a titled list, one section
// per operation in the set's order
func DisplayPermissions(w io.Writer, set types.PermissionSet) {
	if len(set) == 0 {
		fmt.Fprintln(w, noPermissionsMessage)
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, HeaderStyle.Render("Required Permissions:"))
	fmt.Fprintln(w, MutedStyle.Render(strings.Repeat("-", ruleWidth)))

	for _, entry := range set {
		fmt.Fprintln(w)
		fmt.Fprintln(w, OperationStyle.Render(strings.ToUpper(string(entry.Operation))+" permissions:"))
		if len(entry.Permissions) == 0 {
			fmt.Fprintln(w, "  "+MutedStyle.Render(noneDefinedMessage))
			continue
		}
		for _, perm := range entry.Permissions {
			fmt.Fprintln(w, "  - "+PermissionStyle.Render(perm))
		}
	}
}

// WritePermissions renders a permission set in the requested format
func WritePermissions(w io.Writer, set types.PermissionSet, format string) error {
	switch format {
	case "", FormatText:
		DisplayPermissions(w, set)
	case FormatTable:
		PrintPermissionTable(w, set)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(set); err != nil {
			return fmt.Errorf("failed to encode permissions: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(set); err != nil {
			return fmt.Errorf("failed to encode permissions: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode permissions: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return nil
}
