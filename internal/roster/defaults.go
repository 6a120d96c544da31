package roster

import (
    "context"
    "sort"

    "github.com/iliyamo/matchday-rundown/internal/model"
)

// GlobalTemplateName is the reserved segment name under which the
// fallback default-position template is stored.  It must not leak out
// of this package: callers resolve by a segment's literal name and
// the fallback is applied here.
const GlobalTemplateName = "__GLOBAL__"

// TemplateStore is the storage boundary the default resolver reads
// from: all template rows stored under one segment name, in no
// particular order.
type TemplateStore interface {
    ListByName(ctx context.Context, segmentName string) ([]model.DefaultPosition, error)
}

// DefaultResolver resolves the ordered list of expected positions for
// a segment name.  Lookup is a two-step fallback: the exact segment
// name first, then the global template, then an empty list.  An empty
// result is a legitimate outcome, not an error.
type DefaultResolver struct {
    Templates TemplateStore
}

// NewDefaultResolver constructs a DefaultResolver and panics on a nil
// store, matching the constructor convention used by the handlers.
func NewDefaultResolver(templates TemplateStore) *DefaultResolver {
    if templates == nil {
        panic("nil template store passed to NewDefaultResolver")
    }
    return &DefaultResolver{Templates: templates}
}

// Resolve returns the default-position rows for the given segment
// name, ordered by their ord column with position id as the
// deterministic tie-break.
func (r *DefaultResolver) Resolve(ctx context.Context, segmentName string) ([]model.DefaultPosition, error) {
    rows, err := r.Templates.ListByName(ctx, segmentName)
    if err != nil {
        return nil, err
    }
    if len(rows) == 0 {
        rows, err = r.Templates.ListByName(ctx, GlobalTemplateName)
        if err != nil {
            return nil, err
        }
    }
    return OrderTemplate(rows), nil
}

// OrderTemplate sorts template rows by ord ascending, breaking ties
// by position id ascending.  It returns a copy; the input slice is
// never mutated.
func OrderTemplate(rows []model.DefaultPosition) []model.DefaultPosition {
    out := make([]model.DefaultPosition, len(rows))
    copy(out, rows)
    sort.Slice(out, func(i, j int) bool {
        if out[i].Ord != out[j].Ord {
            return out[i].Ord < out[j].Ord
        }
        return out[i].PositionID < out[j].PositionID
    })
    return out
}
