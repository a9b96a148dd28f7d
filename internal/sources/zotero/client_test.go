package zotero

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/citecheck/internal/transport"
	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/logging"
	"github.com/agentstation/citecheck/pkg/records"
)

func collection(key, name string) Collection {
	return Collection{Key: key, Data: CollectionData{Key: key, Name: name}}
}

func item(key string, cols []string, creators ...Creator) Item {
	return Item{Key: key, Data: ItemData{Key: key, ItemType: "journalArticle", Creators: creators, Collections: cols}}
}

func person(first, last string) Creator {
	return Creator{CreatorType: "author", FirstName: first, LastName: last}
}

// newLibrary serves a fixed set of paths under /groups/42.
func newLibrary(t *testing.T, routes map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("Zotero-API-Key"))
		assert.Equal(t, "3", r.Header.Get("Zotero-API-Version"))

		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("Not found"))
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server, collection string) *Client {
	t.Helper()
	client, err := NewClient(Config{
		LibraryID:   "42",
		LibraryType: "group",
		APIKey:      "key",
		Collection:  collection,
		BaseURL:     server.URL,
	}, transport.WithRateLimit(0, 0), transport.WithRetry(1, time.Millisecond))
	require.NoError(t, err)
	return client
}

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		prefix  string
	}{
		{name: "group default", cfg: Config{LibraryID: "42"}, prefix: "/groups/42"},
		{name: "user library", cfg: Config{LibraryID: "7", LibraryType: "User"}, prefix: "/users/7"},
		{name: "missing id", cfg: Config{LibraryType: "user"}, wantErr: true},
		{name: "bad type", cfg: Config{LibraryID: "7", LibraryType: "team"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.prefix, client.prefix)
			assert.Equal(t, "https://api.zotero.org", client.baseURL)
		})
	}
}

func TestScanCollectionIncludesDescendants(t *testing.T) {
	server := newLibrary(t, map[string]any{
		"/groups/42/collections/ROOT":             collection("ROOT", "Conference"),
		"/groups/42/collections/ROOT/collections": []Collection{collection("KIDA", "2019")},
		"/groups/42/collections/KIDA/collections": []Collection{collection("GRAND", "Keynotes")},
		"/groups/42/collections/GRAND/collections": []Collection{},
		"/groups/42/collections/ROOT/items/top": []Item{
			item("I1", nil, person("Jane", "Goodall")),
		},
		"/groups/42/collections/KIDA/items/top": []Item{
			item("I2", nil, person("E. O.", "Wilson"), person("Jane", "Goodall")),
		},
		"/groups/42/collections/GRAND/items/top": []Item{
			item("I3", nil, Creator{CreatorType: "author", Name: "Rachel Carson"}, Creator{CreatorType: "editor"}),
		},
	})

	authors, err := newTestClient(t, server, "ROOT").Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []records.Author{
		{FirstName: "Jane", LastName: "Goodall", FullName: "Jane Goodall", Collections: []string{"Conference", "2019"}},
		{FirstName: "E. O.", LastName: "Wilson", FullName: "E. O. Wilson", Collections: []string{"2019"}},
		{FirstName: "Rachel", LastName: "Carson", FullName: "Rachel Carson", Collections: []string{"Keynotes"}},
	}, authors)
}

func TestScanLibraryMapsCollectionKeys(t *testing.T) {
	server := newLibrary(t, map[string]any{
		"/groups/42/collections": []Collection{
			collection("A", "Primates"),
			collection("B", "Ants"),
		},
		"/groups/42/items/top": []Item{
			item("I1", []string{"A", "MISSING"}, person("Jane", "Goodall")),
			item("I2", []string{"B"}, person("E. O.", "Wilson")),
			item("I3", nil, person("Jane", "Goodall")),
		},
	})

	authors, err := newTestClient(t, server, "").Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, authors, 2)
	assert.Equal(t, []string{"Primates"}, authors[0].Collections)
	assert.Equal(t, []string{"Ants"}, authors[1].Collections)
}

func TestScanUnknownCollection(t *testing.T) {
	server := newLibrary(t, map[string]any{})

	_, err := newTestClient(t, server, "NOPE").Scan(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestListFollowsPagination(t *testing.T) {
	var starts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := r.URL.Query().Get("start")
		starts = append(starts, start)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		w.Header().Set("Total-Results", "3")
		switch start {
		case "0":
			_ = json.NewEncoder(w).Encode([]Item{item("I1", nil), item("I2", nil)})
		default:
			_ = json.NewEncoder(w).Encode([]Item{item("I3", nil)})
		}
	}))
	defer server.Close()

	logger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logger.Logger)

	items, err := newTestClient(t, server, "").ItemsTop(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, []string{"0", "2"}, starts)
	logger.AssertContains(t, "Fetched page")
}

func TestCreatorToAuthor(t *testing.T) {
	tests := []struct {
		name    string
		creator Creator
		want    records.Author
		ok      bool
	}{
		{
			name:    "two field",
			creator: person(" Jane ", "Goodall"),
			want:    records.Author{FirstName: "Jane", LastName: "Goodall", FullName: "Jane Goodall"},
			ok:      true,
		},
		{
			name:    "last name only",
			creator: person("", "Plato"),
			want:    records.Author{LastName: "Plato", FullName: "Plato"},
			ok:      true,
		},
		{
			name:    "single field",
			creator: Creator{Name: "Ecological Society"},
			want:    records.Author{FirstName: "Ecological", LastName: "Society", FullName: "Ecological Society"},
			ok:      true,
		},
		{
			name:    "single word institution",
			creator: Creator{Name: "UNESCO"},
			want:    records.Author{FirstName: "UNESCO", FullName: "UNESCO"},
			ok:      true,
		},
		{name: "empty", creator: Creator{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := creatorToAuthor(tt.creator)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
