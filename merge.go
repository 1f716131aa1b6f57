package djinject

import (
	"go.uber.org/multierr"
)

// Merge combines modules into one effective module, later modules overriding
// earlier ones. If both sides define a group under the same key the groups
// are merged recursively, so two modules can each contribute part of a group.
// Any other combination is a plain override: a factory replaces a group and a
// group replaces a factory without complaint. Inject applies the same merge
// to its arguments; Merge is exported for callers that want to pre-compose
// module sets.
//
// The inputs are never mutated or aliased into the result.
func Merge(modules ...*Module) *Module {
	merged, _ := mergeAll(false, modules...)
	return merged
}

func mergeAll(strict bool, modules ...*Module) (*Module, error) {
	acc := &Module{entries: make(map[string]any)}
	for _, m := range modules {
		if m == nil {
			continue
		}

		next, err := mergeModules(acc, m, strict, "")
		if err != nil {
			return nil, err
		}

		acc = next
	}

	return acc, nil
}

// mergeModules returns the deep merge of target and source as a fresh module.
// A key keeps the position of its first appearance; keys new to the source
// are appended in source order.
func mergeModules(target, source *Module, strict bool, path string) (*Module, error) {
	out := &Module{
		keys:    make([]string, 0, len(target.keys)+len(source.keys)),
		entries: make(map[string]any, len(target.entries)+len(source.entries)),
		err:     multierr.Append(target.err, source.err),
	}
	out.keys = append(out.keys, target.keys...)
	for key, value := range target.entries {
		out.entries[key] = value
	}

	for _, key := range source.keys {
		sv := source.entries[key]
		tv, exists := out.entries[key]
		if !exists {
			out.keys = append(out.keys, key)
			out.entries[key] = sv
			continue
		}

		tm, targetIsGroup := tv.(*Module)
		sm, sourceIsGroup := sv.(*Module)
		switch {
		case targetIsGroup && sourceIsGroup:
			merged, err := mergeModules(tm, sm, strict, joinPath(path, key))
			if err != nil {
				return nil, err
			}
			out.entries[key] = merged
		case strict && targetIsGroup != sourceIsGroup:
			return nil, MergeConflictError{
				Path:       joinPath(path, key),
				TargetKind: entryKind(tv),
				SourceKind: entryKind(sv),
			}
		default:
			out.entries[key] = sv
		}
	}

	return out, nil
}

func entryKind(entry any) string {
	if _, ok := entry.(*Module); ok {
		return "group"
	}
	return "factory"
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}
