package usecase

import "context"

// ExistsFunc reports whether a candidate tag is already taken on the remote.
type ExistsFunc func(ctx context.Context, tag string) (bool, error)

// FirstFreeSuffix searches counters 1, 2, 3, ... below bound and returns
// the first candidate tag the predicate reports free. The search is
// strictly ascending first-fit: gaps left by deleted tags are reused in
// order and no counter is revisited. found is false when every counter
// below the bound is taken.
func FirstFreeSuffix(
	ctx context.Context,
	candidate func(counter int) string,
	exists ExistsFunc,
	bound int,
) (tag string, found bool, err error) {
	for counter := 1; counter < bound; counter++ {
		name := candidate(counter)
		taken, err := exists(ctx, name)
		if err != nil {
			return "", false, err
		}
		if !taken {
			return name, true, nil
		}
	}
	return "", false, nil
}
