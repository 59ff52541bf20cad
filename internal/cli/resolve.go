package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolvePackageID resolves a package reference which can be a full UUID,
// a UUID prefix, or the package name (case-insensitive).
func resolvePackageID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("package ID is required")
	}

	rows, err := app.Catalog.ListPackages(ctx)
	if err != nil {
		return "", err
	}

	for _, r := range rows {
		if r.Package.ID == input {
			return r.Package.ID, nil
		}
	}
	for _, r := range rows {
		if strings.EqualFold(r.Package.Name, input) {
			return r.Package.ID, nil
		}
	}

	var matches []string
	for _, r := range rows {
		if strings.HasPrefix(r.Package.ID, input) {
			matches = append(matches, r.Package.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("package not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("package ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
