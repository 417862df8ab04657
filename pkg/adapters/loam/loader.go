package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/afterglow/pkg/adapters/memory"
	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"
)

// Open initializes a read-only Loam repository at dir and loads its layout.
func Open(ctx context.Context, dir string) (*memory.Catalog, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve layout dir: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return Load(ctx, loam.NewTypedRepository[StateMetadata](repo))
}

// Load reads every document of the repository as a state and builds a catalog.
// The state ID comes from the "id" key, or from the file name without extension.
func Load(ctx context.Context, repo *loam.TypedRepository[StateMetadata]) (*memory.Catalog, error) {
	docs, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	states := make([]*domain.State, 0, len(docs))
	var transitions []*domain.Transition

	for _, doc := range docs {
		meta := doc.Data
		rawID := meta.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		states = append(states, &domain.State{
			ID:    id,
			Label: meta.Label,
			Bounds: domain.Rect{
				X:      meta.X,
				Y:      meta.Y,
				Width:  meta.Width,
				Height: meta.Height,
			},
		})

		outgoing, err := decodeTransitions(id, meta.Transitions)
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", id, err)
		}
		transitions = append(transitions, outgoing...)
	}

	return memory.NewCatalog(states, transitions)
}

// decodeTransitions accepts the string shorthand or the map form for each entry.
func decodeTransitions(source string, raw []any) ([]*domain.Transition, error) {
	result := make([]*domain.Transition, 0, len(raw))
	for _, item := range raw {
		var lt LayoutTransition
		switch v := item.(type) {
		case string:
			lt.To = v
		case map[string]any, map[any]any:
			if err := mapstructure.Decode(v, &lt); err != nil {
				return nil, fmt.Errorf("failed to decode transition: %w", err)
			}
		default:
			return nil, fmt.Errorf("invalid transition definition type: %T", v)
		}

		if lt.To == "" {
			return nil, fmt.Errorf("transition %q missing target", lt.ID)
		}
		target := trimExtension(lt.To)
		id := lt.ID
		if id == "" {
			id = source + "->" + target
		}
		result = append(result, &domain.Transition{
			ID:       id,
			SourceID: source,
			TargetID: target,
			Event:    lt.Event,
		})
	}
	return result, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
