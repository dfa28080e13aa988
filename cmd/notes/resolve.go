package main

import (
	"fmt"
	"strings"

	"github.com/dimitrije/notes/pkg/dto"
)

// matchWorkspace finds a workspace by id, or by name when exactly one
// workspace has it (case-insensitive).
func matchWorkspace(list []dto.Workspace, ref string) (string, error) {
	var matches []dto.Workspace
	for _, ws := range list {
		if ws.ID == ref {
			return ws.ID, nil
		}
		if strings.EqualFold(ws.Name, ref) {
			matches = append(matches, ws)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no workspace named %q", ref)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("%d workspaces are named %q, use an id", len(matches), ref)
	}
}

// resolveItem finds an item by id, id prefix or name. Names and prefixes must
// be unambiguous.
func resolveItem(all []dto.Item, ref string) (dto.Item, error) {
	var byName, byPrefix []dto.Item
	for _, item := range all {
		if item.ID == ref {
			return item, nil
		}
		if strings.EqualFold(item.Name, ref) {
			byName = append(byName, item)
		}
		if len(ref) >= 4 && strings.HasPrefix(item.ID, ref) {
			byPrefix = append(byPrefix, item)
		}
	}

	for _, matches := range [][]dto.Item{byName, byPrefix} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return dto.Item{}, fmt.Errorf("%q matches %d items, use an id", ref, len(matches))
		}
	}
	return dto.Item{}, fmt.Errorf("no item matches %q", ref)
}

func resolveFolder(all []dto.Item, ref string) (dto.Item, error) {
	item, err := resolveItem(all, ref)
	if err != nil {
		return dto.Item{}, err
	}
	if item.Type != dto.ItemTypeFolder {
		return dto.Item{}, fmt.Errorf("%q is not a folder", item.Name)
	}
	return item, nil
}

func parseSort(raw string) (dto.ItemsSort, error) {
	field, dir, _ := strings.Cut(raw, ":")
	sort := dto.ItemsSort{Field: dto.SortField(field), Direction: dto.SortDirection(dir)}.WithDefaults()
	if err := sort.Validate(); err != nil {
		return dto.ItemsSort{}, fmt.Errorf("invalid sort %q: want name|createdAt|updatedAt[:asc|desc]", raw)
	}
	return sort, nil
}
