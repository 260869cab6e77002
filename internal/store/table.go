package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// table adapts a typed Repository to the untyped types.Table interface used
// by GetTable and the CLI. All rules of the repository apply unchanged.
type table[E any, K comparable] struct {
	repo *Repository[E, K]
}

func (t table[E, K]) Name() string { return t.repo.Name() }

// Get parses key and returns a *E.
func (t table[E, K]) Get(ctx context.Context, key string) (any, error) {
	k, err := t.repo.bind.parseKey(key)
	if err != nil {
		return nil, err
	}
	return t.repo.Read(ctx, k)
}

// Set creates the entity when key is empty and updates it otherwise. data
// may be *E, E or a JSON document.
func (t table[E, K]) Set(ctx context.Context, key string, data any) (string, error) {
	e, err := t.entity(data)
	if err != nil {
		return "", err
	}
	if key == "" {
		k, err := t.repo.Create(ctx, e)
		if err != nil {
			return "", err
		}
		return t.repo.bind.formatKey(k), nil
	}
	k, err := t.repo.bind.parseKey(key)
	if err != nil {
		return "", err
	}
	if err := t.repo.Update(ctx, k, e); err != nil {
		return "", err
	}
	return t.repo.bind.formatKey(k), nil
}

func (t table[E, K]) Delete(ctx context.Context, key string) error {
	k, err := t.repo.bind.parseKey(key)
	if err != nil {
		return err
	}
	return t.repo.Delete(ctx, k)
}

// Fetch returns every matching entity as a *E.
func (t table[E, K]) Fetch(ctx context.Context, filter types.Filter) ([]any, error) {
	out := []any{}
	for e, err := range t.repo.List(ctx, filter) {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (t table[E, K]) entity(data any) (*E, error) {
	switch v := data.(type) {
	case *E:
		if v == nil {
			break
		}
		return v, nil
	case E:
		return &v, nil
	case json.RawMessage:
		return decodeEntity[E](v, t.Name())
	case []byte:
		return decodeEntity[E](v, t.Name())
	case string:
		return decodeEntity[E]([]byte(v), t.Name())
	}
	return nil, fmt.Errorf("%w: %s does not accept %T", types.ErrInvalidData, t.Name(), data)
}

func decodeEntity[E any](data []byte, name string) (*E, error) {
	var e E
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", types.ErrInvalidData, name, err)
	}
	return &e, nil
}
