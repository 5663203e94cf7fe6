package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the whole HTTP surface. Static paths are listed
// before the catch-all /{id} routes; the router gives them priority.
func RegisterRoutes(api huma.API, urls *ShortURLHandler, blacklist *BlacklistHandler, ping *PingHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Summary:     "Check store liveness",
		Description: "Always answers 200; the message reports the database time or its unavailability.",
		Tags:        []string{"Service"},
	}, ping.Ping)

	huma.Register(api, huma.Operation{
		OperationID: "add-blacklist-entry",
		Method:      http.MethodPost,
		Path:        "/blacklist",
		Summary:     "Blacklist a host",
		Tags:        []string{"Blacklist"},
	}, blacklist.Add)

	huma.Register(api, huma.Operation{
		OperationID: "list-blacklist",
		Method:      http.MethodGet,
		Path:        "/blacklist",
		Summary:     "List blacklisted hosts",
		Tags:        []string{"Blacklist"},
	}, blacklist.List)

	huma.Register(api, huma.Operation{
		OperationID:   "remove-blacklist-entry",
		Method:        http.MethodDelete,
		Path:          "/blacklist/{id}",
		Summary:       "Remove a blacklist entry",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusBadRequest},
		Tags:          []string{"Blacklist"},
	}, blacklist.Remove)

	huma.Register(api, huma.Operation{
		OperationID: "bulk-shorten",
		Method:      http.MethodPost,
		Path:        "/shorten",
		Summary:     "Shorten a batch of URLs",
		Description: "Persists the whole batch atomically; any constraint violation aborts it.",
		Errors:      []int{http.StatusBadRequest},
		Tags:        []string{"URLs"},
	}, urls.BulkShorten)

	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url",
		Method:        http.MethodPost,
		Path:          "/",
		Summary:       "Shorten one URL",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
		Tags:          []string{"URLs"},
	}, urls.Create)

	huma.Register(api, huma.Operation{
		OperationID:   "redirect-short-url",
		Method:        http.MethodGet,
		Path:          "/{id}",
		Summary:       "Redirect to the original URL",
		Description:   "Records a usage event and answers 307 with the original URL in Location.",
		DefaultStatus: http.StatusTemporaryRedirect,
		Errors:        []int{http.StatusBadRequest, http.StatusGone},
		Tags:          []string{"URLs"},
	}, urls.Redirect)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-short-url",
		Method:        http.MethodDelete,
		Path:          "/{id}",
		Summary:       "Soft-delete a short URL",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusBadRequest},
		Tags:          []string{"URLs"},
	}, urls.Delete)

	huma.Register(api, huma.Operation{
		OperationID: "short-url-status",
		Method:      http.MethodGet,
		Path:        "/{id}/status",
		Summary:     "Usage count or history",
		Tags:        []string{"URLs"},
	}, urls.Status)
}
