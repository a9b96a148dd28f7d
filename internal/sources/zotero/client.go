// Package zotero reads collections, items and creators from the Zotero web API.
package zotero

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/citecheck/internal/transport"
	"github.com/agentstation/citecheck/pkg/constants"
	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/logging"
)

// Library types accepted by the API.
const (
	LibraryUser  = "user"
	LibraryGroup = "group"
)

// Config identifies the library to read.
type Config struct {
	LibraryID   string
	LibraryType string
	APIKey      string
	// Collection optionally scopes scans to one collection and its descendants.
	Collection string
	// BaseURL overrides the API root; used by tests.
	BaseURL string
}

// Client is a read-only Zotero API client.
type Client struct {
	transport  *transport.Client
	baseURL    string
	prefix     string
	collection string
}

// NewClient validates cfg and creates a client. Extra transport options are
// applied after the Zotero defaults.
func NewClient(cfg Config, opts ...transport.Option) (*Client, error) {
	if strings.TrimSpace(cfg.LibraryID) == "" {
		return nil, errors.NewValidationError("zotero_library_id", cfg.LibraryID, "library id is required")
	}

	libType := strings.ToLower(strings.TrimSpace(cfg.LibraryType))
	if libType == "" {
		libType = constants.DefaultLibraryType
	}
	if libType != LibraryUser && libType != LibraryGroup {
		return nil, errors.NewValidationError("zotero_library_type", cfg.LibraryType, "must be user or group")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.ZoteroAPIURL
	}

	base := []transport.Option{
		transport.WithAuth(&transport.HeaderAuth{Header: constants.ZoteroKeyHeader}, cfg.APIKey),
		transport.WithHeader("Zotero-API-Version", constants.ZoteroAPIVersion),
	}

	return &Client{
		transport:  transport.New("zotero", append(base, opts...)...),
		baseURL:    baseURL,
		prefix:     fmt.Sprintf("/%ss/%s", libType, url.PathEscape(strings.TrimSpace(cfg.LibraryID))),
		collection: strings.TrimSpace(cfg.Collection),
	}, nil
}

// Collection fetches a single collection by key.
func (c *Client) Collection(ctx context.Context, key string) (Collection, error) {
	var col Collection
	if _, err := c.transport.GetJSON(ctx, c.endpoint("/collections/"+url.PathEscape(key), nil), &col); err != nil {
		var apiErr *errors.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return Collection{}, errors.NewNotFoundError("collection", key)
		}
		return Collection{}, errors.WrapResource("fetch", "collection", key, err)
	}
	return col, nil
}

// Collections lists every collection in the library.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	return list[Collection](ctx, c, "/collections")
}

// Subcollections lists the direct children of a collection.
func (c *Client) Subcollections(ctx context.Context, key string) ([]Collection, error) {
	return list[Collection](ctx, c, "/collections/"+url.PathEscape(key)+"/collections")
}

// Descendants lists all collections below key, depth first.
func (c *Client) Descendants(ctx context.Context, key string) ([]Collection, error) {
	children, err := c.Subcollections(ctx, key)
	if err != nil {
		return nil, err
	}

	var all []Collection
	for _, child := range children {
		all = append(all, child)
		below, err := c.Descendants(ctx, child.Key)
		if err != nil {
			return nil, err
		}
		all = append(all, below...)
	}
	return all, nil
}

// CollectionItemsTop lists the top-level items of a collection.
func (c *Client) CollectionItemsTop(ctx context.Context, key string) ([]Item, error) {
	return list[Item](ctx, c, "/collections/"+url.PathEscape(key)+"/items/top")
}

// ItemsTop lists the top-level items of the whole library.
func (c *Client) ItemsTop(ctx context.Context) ([]Item, error) {
	return list[Item](ctx, c, "/items/top")
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + c.prefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// list follows start/limit pagination until Total-Results entries have been
// read or a short page is returned.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	logger := logging.FromContext(ctx)

	var all []T
	for start := 0; ; {
		query := url.Values{}
		query.Set("start", strconv.Itoa(start))
		query.Set("limit", strconv.Itoa(constants.ZoteroPageSize))

		var page []T
		header, err := c.transport.GetJSON(ctx, c.endpoint(path, query), &page)
		if err != nil {
			return nil, errors.WrapResource("fetch", "page", path, err)
		}
		all = append(all, page...)
		start += len(page)

		logger.Debug().
			Str("path", path).
			Int("count", len(page)).
			Int("start", start).
			Msg("Fetched page")

		total, err := strconv.Atoi(header.Get("Total-Results"))
		if err != nil {
			if len(page) < constants.ZoteroPageSize {
				break
			}
			continue
		}
		if len(page) == 0 || start >= total {
			break
		}
	}
	return all, nil
}
