package gallery

import (
	"context"

	"github.com/reelgrid/reelgrid/internal/appwrite"
	"github.com/reelgrid/reelgrid/internal/reel"
)

// AspectRatios is the fixed ordered set of display aspect tags. Assignment
// cycles through it by collection index, so a given collection order always
// produces the same shapes.
var AspectRatios = []string{"3:4", "1:1", "16:9", "2:3", "4:3", "4:5"}

func aspectFor(index int) string {
	return AspectRatios[index%len(AspectRatios)]
}

// Lanes holds the three display columns of the masonry grid.
type Lanes [3][]reel.Item

// Distribute partitions items into three lanes by collection index. It is a
// pure presentation-time view: the input order is the canonical order, lane
// membership is index mod 3, and running it twice over the same sequence
// yields identical lanes and identical aspect tags. Items that somehow
// arrive without a display aspect get the deterministic index-based one.
func Distribute(items []reel.Item) Lanes {
	var lanes Lanes
	for i, item := range items {
		if item.DisplayAspect == "" {
			item.DisplayAspect = aspectFor(i)
		}
		lane := i % 3
		lanes[lane] = append(lanes[lane], item)
	}
	return lanes
}

// LoadFeatured fetches the items for the carousel. It mirrors the gallery's
// fallback behavior: a failed filtered query retries unfiltered with a
// client-side isFeatured filter.
func LoadFeatured(ctx context.Context, store Store, collectionID string) ([]reel.Item, error) {
	list, err := store.ListDocuments(ctx, collectionID, []string{
		appwrite.QueryEqual("isFeatured", true),
	})
	if err == nil {
		return normalizeList(list), nil
	}

	list, fbErr := store.ListDocuments(ctx, collectionID, nil)
	if fbErr != nil {
		return nil, &FetchError{Err: err}
	}
	items := normalizeList(list)
	featured := items[:0]
	for _, item := range items {
		if item.IsFeatured {
			featured = append(featured, item)
		}
	}
	return featured, nil
}
