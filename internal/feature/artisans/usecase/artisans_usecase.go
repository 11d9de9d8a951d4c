// Package usecase implements the business logic for the artisans feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"artisan_backend/internal/feature/artisans/domain/entity"
	assistant "artisan_backend/internal/feature/assistant/usecase"
)

// Registration defaults for freshly created profiles.
const (
	defaultSpecialty    = "Handcrafted Goods"
	defaultLocation     = "Online"
	defaultExperience   = "New Artisan"
	defaultAvailability = "Accepting Commissions"
	defaultWorkplace    = "Online Studio"
)

var (
	// ErrArtisanNotFound is returned when no profile matches the given id.
	ErrArtisanNotFound = errors.New("artisan not found")

	// ErrNotProfileOwner is returned when an update targets a profile the
	// requester does not own.
	ErrNotProfileOwner = errors.New("profile can only be updated by its owner")

	// ErrSelfFollow is returned when an artisan tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
)

// ArtisanRepository abstracts the persistence layer for artisan profiles.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ArtisanRepository interface {
	// Create persists a new profile. It returns an error if the id is
	// already taken.
	Create(ctx context.Context, profile *entity.ArtisanProfile) error

	// Update replaces a profile wholesale, including its portfolio.
	Update(ctx context.Context, profile *entity.ArtisanProfile) error

	// FindByID retrieves a profile with its portfolio, ordered by position.
	FindByID(ctx context.Context, id string) (*entity.ArtisanProfile, error)

	// List retrieves all profiles.
	List(ctx context.Context) ([]*entity.ArtisanProfile, error)
}

// FollowRepository abstracts the follow-edge store.
type FollowRepository interface {
	// Exists reports whether follower already follows followed.
	Exists(ctx context.Context, followerID, followedID string) (bool, error)

	// Create adds a follow edge.
	Create(ctx context.Context, follow *entity.Follow) error

	// Delete removes a follow edge.
	Delete(ctx context.Context, followerID, followedID string) error

	// Following returns the ids the artisan follows.
	Following(ctx context.Context, followerID string) ([]string, error)

	// Followers returns the ids following the artisan.
	Followers(ctx context.Context, followedID string) ([]string, error)
}

// SuggestionSourcer is the AI gateway contract used for connection
// recommendations.
type SuggestionSourcer interface {
	SourcedIDs(ctx context.Context, req assistant.SuggestionRequest) ([]string, error)
}

// artisansUsecase implements profile, portfolio and connection logic.
type artisansUsecase struct {
	artisans ArtisanRepository
	follows  FollowRepository
	sourcer  SuggestionSourcer
	now      func() time.Time
}

// NewArtisansUsecase creates a new artisansUsecase.
func NewArtisansUsecase(artisans ArtisanRepository, follows FollowRepository, sourcer SuggestionSourcer) *artisansUsecase {
	return &artisansUsecase{
		artisans: artisans,
		follows:  follows,
		sourcer:  sourcer,
		now:      time.Now,
	}
}

// CreateRegistered creates a profile with registration defaults for a new
// user. Profile ids are time-derived ("user" + unix millis); a collision
// under rapid successive registration is retried once with a bumped stamp.
func (u *artisansUsecase) CreateRegistered(ctx context.Context, name string) (*entity.ArtisanProfile, error) {
	seed := strings.Fields(name)
	avatarSeed := "new"
	if len(seed) > 0 {
		avatarSeed = strings.ToLower(seed[0])
	}

	profile := &entity.ArtisanProfile{
		ID:           fmt.Sprintf("user%d", u.now().UnixMilli()),
		Name:         name,
		Specialty:    defaultSpecialty,
		AvatarURL:    fmt.Sprintf("https://picsum.photos/seed/%s/100/100", avatarSeed),
		Location:     defaultLocation,
		Experience:   defaultExperience,
		Availability: defaultAvailability,
		Workplace:    defaultWorkplace,
	}

	if err := u.artisans.Create(ctx, profile); err == nil {
		return profile, nil
	}
	// One retry with a bumped stamp covers same-millisecond registration.
	profile.ID = fmt.Sprintf("user%d", u.now().UnixMilli()+1)
	if err := u.artisans.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile replaces the requester's profile wholesale. Only the owner
// may update a profile; the portfolio order follows the slice order.
func (u *artisansUsecase) UpdateProfile(ctx context.Context, requesterID string, profile *entity.ArtisanProfile) (*entity.ArtisanProfile, error) {
	if profile.ID != requesterID {
		return nil, ErrNotProfileOwner
	}
	if _, err := u.artisans.FindByID(ctx, profile.ID); err != nil {
		return nil, err
	}

	for i := range profile.Portfolio {
		profile.Portfolio[i].ArtisanID = profile.ID
		profile.Portfolio[i].Position = i
		if profile.Portfolio[i].ID == "" {
			profile.Portfolio[i].ID = fmt.Sprintf("p%d-%d", u.now().UnixMilli(), i)
		}
	}

	if err := u.artisans.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// FindByID retrieves a single profile.
func (u *artisansUsecase) FindByID(ctx context.Context, id string) (*entity.ArtisanProfile, error) {
	return u.artisans.FindByID(ctx, id)
}

// List retrieves all profiles.
func (u *artisansUsecase) List(ctx context.Context) ([]*entity.ArtisanProfile, error) {
	return u.artisans.List(ctx)
}

// ToggleFollow flips the follow edge and reports the new state.
// Toggling twice returns to the original state.
func (u *artisansUsecase) ToggleFollow(ctx context.Context, followerID, followedID string) (bool, error) {
	if followerID == followedID {
		return false, ErrSelfFollow
	}
	if _, err := u.artisans.FindByID(ctx, followedID); err != nil {
		return false, err
	}

	exists, err := u.follows.Exists(ctx, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	if exists {
		if err := u.follows.Delete(ctx, followerID, followedID); err != nil {
			return false, fmt.Errorf("failed to unfollow: %w", err)
		}
		return false, nil
	}
	if err := u.follows.Create(ctx, &entity.Follow{FollowerID: followerID, FollowedID: followedID}); err != nil {
		return false, fmt.Errorf("failed to follow: %w", err)
	}
	return true, nil
}

// Following returns the ids the artisan follows.
func (u *artisansUsecase) Following(ctx context.Context, artisanID string) ([]string, error) {
	return u.follows.Following(ctx, artisanID)
}

// Followers returns the ids following the artisan.
func (u *artisansUsecase) Followers(ctx context.Context, artisanID string) ([]string, error) {
	return u.follows.Followers(ctx, artisanID)
}

// RecommendConnections finds collaboration matches for the requester. The
// AI gateway picks from every other profile; returned ids are filtered
// against the store. A gateway failure degrades to a substring filter over
// name, specialty and location rather than surfacing an error.
func (u *artisansUsecase) RecommendConnections(ctx context.Context, requesterID, query string) ([]*entity.ArtisanProfile, error) {
	requester, err := u.artisans.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	all, err := u.artisans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list artisans: %w", err)
	}

	others := make([]*entity.ArtisanProfile, 0, len(all))
	byID := make(map[string]*entity.ArtisanProfile, len(all))
	for _, a := range all {
		if a.ID == requesterID {
			continue
		}
		others = append(others, a)
		byID[a.ID] = a
	}

	candidates := make([]assistant.Candidate, 0, len(others))
	for _, a := range others {
		candidates = append(candidates, assistant.Candidate{
			ID:         a.ID,
			Name:       a.Name,
			Specialty:  a.Specialty,
			Location:   a.Location,
			Experience: a.Experience,
		})
	}

	ids, err := u.sourcer.SourcedIDs(ctx, assistant.SuggestionRequest{
		Kind:               assistant.KindConnectionRecommendation,
		Query:              query,
		RequesterName:      requester.Name,
		RequesterSpecialty: requester.Specialty,
		Candidates:         candidates,
	})
	if err == nil {
		matched := make([]*entity.ArtisanProfile, 0, len(ids))
		for _, id := range ids {
			if a, ok := byID[id]; ok {
				matched = append(matched, a)
			}
		}
		if len(matched) > 0 {
			return matched, nil
		}
	}

	// AI gateway unavailable or returned nothing usable: plain filter.
	return filterArtisans(others, query), nil
}

// filterArtisans is the non-AI fallback match over name, specialty and
// location.
func filterArtisans(artisans []*entity.ArtisanProfile, query string) []*entity.ArtisanProfile {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return artisans
	}
	var out []*entity.ArtisanProfile
	for _, a := range artisans {
		if strings.Contains(strings.ToLower(a.Name), q) ||
			strings.Contains(strings.ToLower(a.Specialty), q) ||
			strings.Contains(strings.ToLower(a.Location), q) {
			out = append(out, a)
		}
	}
	return out
}
