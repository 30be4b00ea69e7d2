package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/jotter/pkg/core"
)

// resolveID expands a unique id prefix (as printed by list) to a full id.
func resolveID(ctx context.Context, svc *core.Service, prefix string) (string, error) {
	notes, err := svc.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, n := range notes {
		if n.ID == prefix {
			return n.ID, nil
		}
		if strings.HasPrefix(n.ID, prefix) {
			matches = append(matches, n.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", core.ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d notes)", prefix, len(matches))
	}
}
