package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/model"
)

var (
	// canonicalIDRe matches YouTube's stable channel identifier format.
	canonicalIDRe = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)
	// handleRe matches display handles, with or without the @ prefix.
	handleRe = regexp.MustCompile(`^@?[A-Za-z0-9._-]{3,30}$`)
)

// HandleDirectory resolves a display handle to its canonical channel ID.
// The directory is the one resolver step that needs a network round trip.
type HandleDirectory interface {
	ResolveHandle(ctx context.Context, handle string) (string, error)
}

// ResolverService normalizes an arbitrary user string (URL, @handle, or
// bare identifier) into a canonical channel identity.
type ResolverService struct {
	directory HandleDirectory
}

func NewResolverService(directory HandleDirectory) *ResolverService {
	return &ResolverService{directory: directory}
}

// Resolve classifies the query by shape. URLs recurse on their channel
// path segment; strings in canonical ID format pass a format check and
// skip the directory entirely (ID format wins over handle lookup since it
// avoids the network); everything else goes through the handle directory.
func (s *ResolverService) Resolve(ctx context.Context, query string) (*model.ResolvedChannel, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.ErrInvalidQuery
	}

	if strings.Contains(query, "/") {
		segment, err := channelSegment(query)
		if err != nil {
			return nil, err
		}
		return s.Resolve(ctx, segment)
	}

	if canonicalIDRe.MatchString(query) {
		return &model.ResolvedChannel{ID: query}, nil
	}

	handle := strings.TrimPrefix(query, "@")
	if !handleRe.MatchString(handle) {
		return nil, fmt.Errorf("%w: %q is not a channel URL, handle, or ID", model.ErrInvalidQuery, query)
	}

	id, err := s.directory.ResolveHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	return &model.ResolvedChannel{ID: id, Handle: "@" + handle}, nil
}

// channelSegment extracts the handle or identifier segment from a channel
// URL. Supported path shapes: /channel/<id>, /c/<name>, /user/<name>,
// /@<handle>, and a bare vanity segment as a fallback.
func channelSegment(raw string) (string, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidQuery, err)
	}

	parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	for i, p := range parts {
		switch p {
		case "channel", "c", "user":
			if i+1 < len(parts) {
				return parts[i+1], nil
			}
		default:
			if strings.HasPrefix(p, "@") {
				return p, nil
			}
		}
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "", fmt.Errorf("%w: no channel segment in %q", model.ErrInvalidQuery, raw)
}

// CachedDirectory wraps a HandleDirectory with the Redis resolve cache so
// repeated handle lookups skip the channel-page fetch.
type CachedDirectory struct {
	next  HandleDirectory
	cache *CacheService
}

func NewCachedDirectory(next HandleDirectory, cache *CacheService) *CachedDirectory {
	return &CachedDirectory{next: next, cache: cache}
}

func (d *CachedDirectory) ResolveHandle(ctx context.Context, handle string) (string, error) {
	if d.cache != nil {
		id, err := d.cache.GetResolved(ctx, handle)
		if err != nil {
			log.Printf("cache: resolve get error: %v", err)
		} else if id != "" {
			return id, nil
		}
	}

	id, err := d.next.ResolveHandle(ctx, handle)
	if err != nil {
		return "", err
	}

	if d.cache != nil {
		if err := d.cache.SetResolved(ctx, handle, id); err != nil {
			log.Printf("cache: resolve set error: %v", err)
		}
	}
	return id, nil
}
