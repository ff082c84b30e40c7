package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

const (
	// MaxQueryLen bounds the raw channel query; the longest legitimate
	// input is a full channel URL well under this.
	MaxQueryLen = 200
	// MaxChannelIDLen covers the canonical UC... identifier.
	MaxChannelIDLen = 24
)

var (
	// channelIDRe matches YouTube channel IDs: UC prefix plus 22 ID-safe characters.
	channelIDRe = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)
	// queryRe rejects control characters; everything printable is allowed
	// since URLs, handles, and IDs all pass through here.
	queryRe = regexp.MustCompile(`^[^\x00-\x1f\x7f]+$`)
)

// ErrorResponse returns the flat error shape the web client consumes.
func ErrorResponse(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// ValidateQuery checks that a raw channel query is present and sane.
// Returns the trimmed query, or an error message for the caller to surface.
func ValidateQuery(q string) (string, string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", "Provide a YouTube channel URL, handle, or ID"
	}
	if len(q) > MaxQueryLen {
		return "", "Query must be at most 200 characters"
	}
	if !queryRe.MatchString(q) {
		return "", "Query contains invalid characters"
	}
	return q, ""
}

// ValidateChannelID checks that a channel ID is in canonical format.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 24 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId must look like UC followed by 22 characters"
	}
	return id, ""
}
