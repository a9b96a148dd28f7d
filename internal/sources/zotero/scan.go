package zotero

import (
	"context"
	"strings"

	"github.com/agentstation/citecheck/pkg/logging"
	"github.com/agentstation/citecheck/pkg/names"
	"github.com/agentstation/citecheck/pkg/records"
)

// Scan returns every creator of the library's top-level items, deduplicated
// by full name with the names of the collections they appear in attached.
// With a configured collection only that collection and its descendants are
// read; otherwise the whole library is read.
func (c *Client) Scan(ctx context.Context) ([]records.Author, error) {
	var (
		authors []records.Author
		err     error
	)
	if c.collection != "" {
		authors, err = c.scanCollection(ctx, c.collection)
	} else {
		authors, err = c.scanLibrary(ctx)
	}
	if err != nil {
		return nil, err
	}

	merged := records.MergeAuthors(authors)
	logging.FromContext(ctx).Info().
		Int("creators", len(authors)).
		Int("authors", len(merged)).
		Msg("Zotero scan complete")
	return merged, nil
}

func (c *Client) scanCollection(ctx context.Context, key string) ([]records.Author, error) {
	root, err := c.Collection(ctx, key)
	if err != nil {
		return nil, err
	}
	descendants, err := c.Descendants(ctx, key)
	if err != nil {
		return nil, err
	}

	var authors []records.Author
	for _, col := range append([]Collection{root}, descendants...) {
		colCtx := logging.WithCollection(ctx, col.Name())
		items, err := c.CollectionItemsTop(colCtx, col.Key)
		if err != nil {
			return nil, err
		}
		logging.FromContext(colCtx).Debug().Int("items", len(items)).Msg("Scanned collection")

		for _, item := range items {
			authors = append(authors, creatorsToAuthors(item.Data.Creators, col.Name())...)
		}
	}
	return authors, nil
}

func (c *Client) scanLibrary(ctx context.Context) ([]records.Author, error) {
	collections, err := c.Collections(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(collections))
	for _, col := range collections {
		labels[col.Key] = col.Name()
	}

	items, err := c.ItemsTop(ctx)
	if err != nil {
		return nil, err
	}

	var authors []records.Author
	for _, item := range items {
		var cols []string
		for _, key := range item.Data.Collections {
			if name, ok := labels[key]; ok {
				cols = append(cols, name)
			}
		}
		authors = append(authors, creatorsToAuthors(item.Data.Creators, cols...)...)
	}
	return authors, nil
}

func creatorsToAuthors(creators []Creator, collections ...string) []records.Author {
	authors := make([]records.Author, 0, len(creators))
	for _, cr := range creators {
		a, ok := creatorToAuthor(cr)
		if !ok {
			continue
		}
		a.Collections = append([]string(nil), collections...)
		authors = append(authors, a)
	}
	return authors
}

func creatorToAuthor(cr Creator) (records.Author, bool) {
	if name := strings.TrimSpace(cr.Name); name != "" {
		first, last := names.FirstLast(name)
		return records.Author{FirstName: first, LastName: last, FullName: name}, true
	}

	first := strings.TrimSpace(cr.FirstName)
	last := strings.TrimSpace(cr.LastName)
	full := strings.TrimSpace(first + " " + last)
	if full == "" {
		return records.Author{}, false
	}
	return records.Author{FirstName: first, LastName: last, FullName: full}, true
}
