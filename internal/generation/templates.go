package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"slidegen/internal/slide"
	"slidegen/internal/store"
	"slidegen/internal/util/jsonutil"
)

var ErrBadTemplateID = errors.New("generation: invalid template id")

// Templates keeps template slides in a store under store.TemplatesNamespace.
type Templates struct {
	store store.Store
}

func NewTemplates(st store.Store) *Templates {
	return &Templates{store: st}
}

func templatePath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("%w: %q", ErrBadTemplateID, id)
	}
	return id + ".json", nil
}

// Save stores s under id. The slide's own id is left as is.
func (t *Templates) Save(ctx context.Context, id string, s slide.Slide) error {
	path, err := templatePath(id)
	if err != nil {
		return err
	}
	b, err := jsonutil.MarshalNoEscape(s)
	if err != nil {
		return fmt.Errorf("generation: encode template: %w", err)
	}
	return t.store.Put(ctx, store.TemplatesNamespace, path, b)
}

// Load returns the template saved under id, or store.ErrNotFound.
func (t *Templates) Load(ctx context.Context, id string) (slide.Slide, error) {
	path, err := templatePath(id)
	if err != nil {
		return slide.Slide{}, err
	}
	b, err := t.store.Get(ctx, store.TemplatesNamespace, path)
	if err != nil {
		return slide.Slide{}, err
	}
	var s slide.Slide
	if err := json.Unmarshal(b, &s); err != nil {
		return slide.Slide{}, fmt.Errorf("generation: decode template %s: %w", id, err)
	}
	return s, nil
}

// List returns the saved template ids in order.
func (t *Templates) List(ctx context.Context) ([]string, error) {
	paths, err := t.store.List(ctx, store.TemplatesNamespace)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(paths))
	for _, p := range paths {
		if id, ok := strings.CutSuffix(p, ".json"); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
