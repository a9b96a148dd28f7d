package zotero

// Collection is a Zotero collection as returned by the collections endpoints.
type Collection struct {
	Key  string         `json:"key"`
	Data CollectionData `json:"data"`
}

// CollectionData holds the editable fields of a collection.
type CollectionData struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Name returns the display name of the collection.
func (c Collection) Name() string {
	return c.Data.Name
}

// Item is a Zotero library item.
type Item struct {
	Key  string   `json:"key"`
	Data ItemData `json:"data"`
}

// ItemData holds the fields of an item used for author extraction.
type ItemData struct {
	Key         string    `json:"key"`
	ItemType    string    `json:"itemType"`
	Title       string    `json:"title,omitempty"`
	Creators    []Creator `json:"creators,omitempty"`
	Collections []string  `json:"collections,omitempty"`
}

// Creator is one entry of an item's creators list. Two-field creators carry
// FirstName and LastName; single-field creators carry Name.
type Creator struct {
	CreatorType string `json:"creatorType"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Name        string `json:"name,omitempty"`
}
