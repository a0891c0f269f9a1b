package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
)

// ValidateCatalog checks every scene config and every next/restart reference, then
// makes sure the entry scene exists. All problems are reported together.
func ValidateCatalog(catalog ports.SceneCatalog, entry string) error {
	names, err := catalog.ListScenes()
	if err != nil {
		return fmt.Errorf("failed to list scenes: %w", err)
	}

	var errs []error
	for _, name := range names {
		cfg, err := catalog.GetScene(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := cfg.Validate(); err != nil {
			errs = append(errs, err)
		}

		for _, ref := range []struct{ field, target string }{
			{"restart", cfg.RestartScene},
			{"next", cfg.NextScene},
		} {
			if ref.target == "" {
				continue // terminal scene, or a missing restart already reported
			}
			if _, err := catalog.GetScene(ref.target); err != nil {
				errs = append(errs, fmt.Errorf("scene %q: %s -> %q: %w", name, ref.field, ref.target, domain.ErrUnresolvedScene))
			}
		}
	}

	if entry == "" {
		errs = append(errs, domain.ErrNoEntryScene)
	} else if _, err := catalog.GetScene(entry); err != nil {
		errs = append(errs, fmt.Errorf("entry scene %q: %w", entry, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("found %d errors:\n%w", len(errs), errors.Join(errs...))
	}
	return nil
}

// ResolveEntry picks the entry scene: explicit when given, otherwise the single
// scene flagged is_entry.
func ResolveEntry(catalog ports.SceneCatalog, explicit string) (string, error) {
	if explicit != "" {
		if _, err := catalog.GetScene(explicit); err != nil {
			return "", fmt.Errorf("entry scene %q: %w", explicit, err)
		}
		return explicit, nil
	}

	names, err := catalog.ListScenes()
	if err != nil {
		return "", fmt.Errorf("failed to list scenes: %w", err)
	}

	var flagged []string
	for _, name := range names {
		cfg, err := catalog.GetScene(name)
		if err != nil {
			return "", err
		}
		if cfg.IsEntryScene {
			flagged = append(flagged, name)
		}
	}
	sort.Strings(flagged)

	switch len(flagged) {
	case 0:
		return "", fmt.Errorf("%w: no scene is flagged is_entry", domain.ErrNoEntryScene)
	case 1:
		return flagged[0], nil
	}
	return "", fmt.Errorf("%w: ambiguous, flagged scenes: %s", domain.ErrNoEntryScene, strings.Join(flagged, ", "))
}

// Unreachable returns the scenes that cannot be reached from entry through
// next or restart links, sorted by name.
func Unreachable(catalog ports.SceneCatalog, entry string) ([]string, error) {
	names, err := catalog.ListScenes()
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}

	visited := make(map[string]bool)
	queue := []string{entry}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		cfg, err := catalog.GetScene(current)
		if err != nil {
			continue // dangling links are ValidateCatalog's concern
		}
		for _, target := range []string{cfg.NextScene, cfg.RestartScene} {
			if target != "" && !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	var unreachable []string
	for _, name := range names {
		if !visited[name] {
			unreachable = append(unreachable, name)
		}
	}
	sort.Strings(unreachable)
	return unreachable, nil
}
