package mapping

import (
	"context"
	"fmt"

	"archie-core-vtex-connector/internal/domain"

	"golang.org/x/sync/errgroup"
)

// lookupConcurrency bounds concurrent variant lookups per request
const lookupConcurrency = 8

// VariantLookup resolves one storefront variant by id
type VariantLookup func(ctx context.Context, variantID int64) (*domain.Variant, error)

// ResolveVariants looks up every id concurrently. The result is indexed like ids
// regardless of completion order; the first failure cancels the remaining lookups.
func ResolveVariants(ctx context.Context, ids []domain.SkuID, lookup VariantLookup) ([]*domain.Variant, error) {
	variants := make([]*domain.Variant, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			variantID, err := id.Int64()
			if err != nil {
				return err
			}
			variant, err := lookup(gctx, variantID)
			if err != nil {
				return fmt.Errorf("failed to resolve variant %s: %w", id, err)
			}
			if variant == nil {
				return fmt.Errorf("%w: %s", domain.ErrVariantNotFound, id)
			}
			variants[i] = variant
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return variants, nil
}
