package questiongen

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/abhisek/geoquiz/internal/store"
)

// maxNameSuffix bounds the "-N" suffixes SaveUnique tries.
const maxNameSuffix = 99

// CollectAvoid gathers the statements of the built-in set and every stored
// set, for use as Input.Avoid. repo may be nil.
func CollectAvoid(ctx context.Context, repo store.SetRepo) ([]string, error) {
	var avoid []string
	for _, q := range questionbank.Default().Questions {
		avoid = append(avoid, q.Text)
	}
	if repo == nil {
		return avoid, nil
	}

	infos, err := repo.List(ctx)
	if err != nil {
		return avoid, fmt.Errorf("list sets: %w", err)
	}
	for _, info := range infos {
		set, err := repo.Get(ctx, info.Name)
		if err != nil {
			return avoid, fmt.Errorf("load set %q: %w", info.Name, err)
		}
		for _, q := range set.Questions {
			avoid = append(avoid, q.Text)
		}
	}
	return avoid, nil
}

// SaveUnique stores set, appending "-2", "-3", ... to its name until the
// name is free. set.Name is updated to the name actually used.
func SaveUnique(ctx context.Context, repo store.SetRepo, set *questionbank.Set) error {
	base := set.Name
	for n := 1; n <= maxNameSuffix; n++ {
		if n > 1 {
			set.Name = fmt.Sprintf("%s-%d", base, n)
		}
		err := repo.Save(ctx, set)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrSetExists) {
			set.Name = base
			return err
		}
	}
	set.Name = base
	return fmt.Errorf("%q: no free name after %d tries: %w", base, maxNameSuffix, store.ErrSetExists)
}
