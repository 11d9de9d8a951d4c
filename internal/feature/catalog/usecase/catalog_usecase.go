// Package usecase implements the business logic for the catalog feature.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	assistant "artisan_backend/internal/feature/assistant/usecase"
	"artisan_backend/internal/feature/catalog/domain/entity"
)

// maxSuggestedProducts caps the personalized suggestion list.
const maxSuggestedProducts = 4

// ProductRepository abstracts the persistence layer for products.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	ListByArtisan(ctx context.Context, artisanID string) ([]*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
}

// WishlistRepository abstracts the wishlist store.
type WishlistRepository interface {
	Exists(ctx context.Context, artisanID, productID string) (bool, error)
	Add(ctx context.Context, artisanID, productID string) error
	Remove(ctx context.Context, artisanID, productID string) error
	ProductIDs(ctx context.Context, artisanID string) ([]string, error)
}

// SuggestionSourcer is the AI gateway contract for search and product
// suggestions.
type SuggestionSourcer interface {
	SourcedIDs(ctx context.Context, req assistant.SuggestionRequest) ([]string, error)
}

// RecentViewsReader exposes the viewer's browsing history for personalized
// suggestions.
type RecentViewsReader interface {
	RecentlyViewed(ctx context.Context, artisanID string) ([]string, error)
}

// catalogUsecase implements product, search and wishlist logic.
type catalogUsecase struct {
	products ProductRepository
	wishlist WishlistRepository
	sourcer  SuggestionSourcer
	views    RecentViewsReader
	now      func() time.Time
}

// NewCatalogUsecase creates a new catalogUsecase.
func NewCatalogUsecase(products ProductRepository, wishlist WishlistRepository, sourcer SuggestionSourcer, views RecentViewsReader) *catalogUsecase {
	return &catalogUsecase{
		products: products,
		wishlist: wishlist,
		sourcer:  sourcer,
		views:    views,
		now:      time.Now,
	}
}

// CreateProduct assigns a time-derived id ("prod" + unix millis) and
// persists the listing. A same-millisecond collision is retried once with
// a bumped stamp.
func (u *catalogUsecase) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	product.ID = fmt.Sprintf("prod%d", u.now().UnixMilli())
	if err := u.products.Create(ctx, product); err == nil {
		return product, nil
	}
	product.ID = fmt.Sprintf("prod%d", u.now().UnixMilli()+1)
	if err := u.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// UpdateProduct replaces a listing. Only the owning artisan may update it;
// owner and id are taken from the stored row, not the payload.
func (u *catalogUsecase) UpdateProduct(ctx context.Context, requesterID string, product *entity.Product) (*entity.Product, error) {
	stored, err := u.products.FindByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if stored.ArtisanID != requesterID {
		return nil, ErrNotProductOwner
	}
	product.ArtisanID = stored.ArtisanID
	product.CreatedAt = stored.CreatedAt
	if err := u.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a listing. Only the owning artisan may delete it.
func (u *catalogUsecase) DeleteProduct(ctx context.Context, requesterID, productID string) error {
	stored, err := u.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if stored.ArtisanID != requesterID {
		return ErrNotProductOwner
	}
	if err := u.products.Delete(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// FindByID retrieves a single product.
func (u *catalogUsecase) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	return u.products.FindByID(ctx, id)
}

// ListByArtisan retrieves one artisan's listings.
func (u *catalogUsecase) ListByArtisan(ctx context.Context, artisanID string) ([]*entity.Product, error) {
	return u.products.ListByArtisan(ctx, artisanID)
}

// List retrieves the full marketplace catalog.
func (u *catalogUsecase) List(ctx context.Context) ([]*entity.Product, error) {
	return u.products.List(ctx)
}

// Search matches products against a free-form query. The AI gateway ranks
// the full catalog; returned ids are filtered against the store. A gateway
// failure degrades to a substring match over name, category and
// description rather than surfacing an error.
func (u *catalogUsecase) Search(ctx context.Context, query string) ([]*entity.Product, error) {
	all, err := u.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if strings.TrimSpace(query) == "" {
		return all, nil
	}

	byID := make(map[string]*entity.Product, len(all))
	candidates := make([]assistant.Candidate, 0, len(all))
	for _, p := range all {
		byID[p.ID] = p
		candidates = append(candidates, assistant.Candidate{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Price:       p.Price,
			Description: p.Description,
		})
	}

	ids, err := u.sourcer.SourcedIDs(ctx, assistant.SuggestionRequest{
		Kind:       assistant.KindProductSearch,
		Query:      query,
		Candidates: candidates,
	})
	if err == nil {
		matched := make([]*entity.Product, 0, len(ids))
		for _, id := range ids {
			if p, ok := byID[id]; ok {
				matched = append(matched, p)
			}
		}
		if len(matched) > 0 {
			return matched, nil
		}
	}

	return filterProducts(all, query), nil
}

// Suggestions builds a personalized product list for the viewer from their
// recently viewed items. Viewed products and the viewer's own listings are
// excluded from the result. Without history, or when the AI gateway fails,
// it falls back to same-category picks (or the newest listings).
func (u *catalogUsecase) Suggestions(ctx context.Context, viewerID string) ([]*entity.Product, error) {
	all, err := u.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	viewed, err := u.views.RecentlyViewed(ctx, viewerID)
	if err != nil {
		viewed = nil
	}
	viewedSet := make(map[string]bool, len(viewed))
	for _, id := range viewed {
		viewedSet[id] = true
	}

	pool := make([]*entity.Product, 0, len(all))
	byID := make(map[string]*entity.Product, len(all))
	for _, p := range all {
		if p.ArtisanID == viewerID || viewedSet[p.ID] {
			continue
		}
		pool = append(pool, p)
		byID[p.ID] = p
	}
	if len(pool) == 0 {
		return []*entity.Product{}, nil
	}

	if len(viewed) > 0 {
		var viewedNames []string
		for _, id := range viewed {
			if p, err := u.products.FindByID(ctx, id); err == nil {
				viewedNames = append(viewedNames, fmt.Sprintf("%s (%s)", p.Name, p.Category))
			}
		}

		candidates := make([]assistant.Candidate, 0, len(pool))
		for _, p := range pool {
			candidates = append(candidates, assistant.Candidate{
				ID:          p.ID,
				Name:        p.Name,
				Category:    p.Category,
				Price:       p.Price,
				Description: p.Description,
			})
		}
		ids, err := u.sourcer.SourcedIDs(ctx, assistant.SuggestionRequest{
			Kind:       assistant.KindProductSuggestion,
			Query:      strings.Join(viewedNames, ", "),
			Candidates: candidates,
		})
		if err == nil {
			matched := make([]*entity.Product, 0, maxSuggestedProducts)
			for _, id := range ids {
				if p, ok := byID[id]; ok {
					matched = append(matched, p)
					if len(matched) == maxSuggestedProducts {
						break
					}
				}
			}
			if len(matched) > 0 {
				return matched, nil
			}
		}
	}

	return u.fallbackSuggestions(ctx, pool, viewed), nil
}

// fallbackSuggestions prefers the category of the most recent view and
// pads with the rest of the pool.
func (u *catalogUsecase) fallbackSuggestions(ctx context.Context, pool []*entity.Product, viewed []string) []*entity.Product {
	var category string
	if len(viewed) > 0 {
		if p, err := u.products.FindByID(ctx, viewed[0]); err == nil {
			category = p.Category
		}
	}

	out := make([]*entity.Product, 0, maxSuggestedProducts)
	if category != "" {
		for _, p := range pool {
			if p.Category == category {
				out = append(out, p)
				if len(out) == maxSuggestedProducts {
					return out
				}
			}
		}
	}
	for _, p := range pool {
		if category != "" && p.Category == category {
			continue
		}
		out = append(out, p)
		if len(out) == maxSuggestedProducts {
			break
		}
	}
	return out
}

// ToggleWishlist flips the wishlist entry and reports the new state.
func (u *catalogUsecase) ToggleWishlist(ctx context.Context, artisanID, productID string) (bool, error) {
	if _, err := u.products.FindByID(ctx, productID); err != nil {
		return false, err
	}
	exists, err := u.wishlist.Exists(ctx, artisanID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	if exists {
		if err := u.wishlist.Remove(ctx, artisanID, productID); err != nil {
			return false, fmt.Errorf("failed to remove from wishlist: %w", err)
		}
		return false, nil
	}
	if err := u.wishlist.Add(ctx, artisanID, productID); err != nil {
		return false, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return true, nil
}

// Wishlist resolves the artisan's wishlist to products. Entries whose
// product has since been deleted are skipped.
func (u *catalogUsecase) Wishlist(ctx context.Context, artisanID string) ([]*entity.Product, error) {
	ids, err := u.wishlist.ProductIDs(ctx, artisanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		p, err := u.products.FindByID(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// filterProducts is the non-AI fallback match over name, category and
// description.
func filterProducts(products []*entity.Product, query string) []*entity.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]*entity.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}
