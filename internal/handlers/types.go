package handlers

import (
	"time"

	"github.com/serroba/url-shorter/internal/model"
)

// CreateShortURLRequest is the body for shortening one URL.
type CreateShortURLRequest struct {
	Body struct {
		OriginalURL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" format:"uri" json:"original_url"`
	}
}

// CreateShortURLResponse returns the stored record. The generated value is
// whatever the configured generator produced.
type CreateShortURLResponse struct {
	Body model.ShortedURL
}

// BulkShortenItem is one entry of a batch shorten request.
type BulkShortenItem struct {
	OriginalURL string `doc:"The URL to shorten" format:"uri" json:"original_url"`
}

// BulkShortenRequest is the body for shortening a batch of URLs.
type BulkShortenRequest struct {
	Body []BulkShortenItem
}

// BulkShortenResult pairs a created record's id with its short value.
type BulkShortenResult struct {
	ShortID  int64  `json:"short_id"`
	ShortURL string `json:"short_url"`
}

// BulkShortenResponse lists results in input order.
type BulkShortenResponse struct {
	Body []BulkShortenResult
}

// RedirectRequest addresses a short URL by id.
type RedirectRequest struct {
	ID int64 `doc:"Short URL id" path:"id"`
}

// RedirectResponse answers with a temporary redirect to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}

// DeleteShortURLRequest addresses a short URL by id.
type DeleteShortURLRequest struct {
	ID int64 `doc:"Short URL id" path:"id"`
}

// URLStatusRequest asks for a URL's usage count, or its paginated history
// when full_info is set.
type URLStatusRequest struct {
	ID        int64 `doc:"Short URL id" path:"id"`
	FullInfo  bool  `doc:"Return the event list instead of a count" query:"full_info"`
	Offset    int   `doc:"History page offset" minimum:"0" query:"offset"`
	MaxResult int   `default:"10" doc:"History page size" minimum:"1" query:"max_result"`
}

// URLStatusResponse carries either the bare count or the event page.
type URLStatusResponse struct {
	Body struct {
		Count *int64                 `json:"count,omitempty"`
		Uses  []model.ShortedURLInfo `json:"uses,omitempty"`
	}
}

// AddBlacklistRequest bans a host, optionally until a point in time.
type AddBlacklistRequest struct {
	Body struct {
		Host  string     `doc:"Client IP address" example:"203.0.113.7" format:"ipv4" json:"host"`
		Until *time.Time `doc:"Expiry; absent means indefinite" json:"until,omitempty"`
	}
}

// AddBlacklistResponse returns the stored entry.
type AddBlacklistResponse struct {
	Body model.BlacklistedClient
}

// ListBlacklistRequest pages through the blacklist.
type ListBlacklistRequest struct {
	Offset    int `doc:"Page offset" minimum:"0" query:"offset"`
	MaxResult int `default:"100" doc:"Page size" minimum:"1" query:"max_result"`
}

// ListBlacklistResponse lists a page of blacklist entries.
type ListBlacklistResponse struct {
	Body []model.BlacklistedClient
}

// RemoveBlacklistRequest addresses a blacklist entry by id.
type RemoveBlacklistRequest struct {
	ID int64 `doc:"Blacklist entry id" path:"id"`
}

// PingResponse reports backing store liveness. Always 200; the message
// carries the degradation.
type PingResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}
