package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"mockbook/models"

	"github.com/spf13/afero"
)

// snapshot is the on-disk JSON shape of the whole store: each collection is
// an object keyed by stringified document id, matching the document layout
// the API serves.
type snapshot struct {
	Users     map[string]*models.User     `json:"users"`
	Feeds     map[string]*models.Feed     `json:"feeds"`
	FeedItems map[string]*models.FeedItem `json:"feedItems"`
}

// Save writes the full store contents as JSON to path on the given
// filesystem. Best effort development persistence; there is no durability
// guarantee.
func (s *Store) Save(fs afero.Fs, path string) error {
	snap := snapshot{
		Users:     make(map[string]*models.User),
		Feeds:     make(map[string]*models.Feed),
		FeedItems: make(map[string]*models.FeedItem),
	}
	for id, u := range s.Users.All() {
		snap.Users[strconv.Itoa(id)] = u
	}
	for id, f := range s.Feeds.All() {
		snap.Feeds[strconv.Itoa(id)] = f
	}
	for id, i := range s.FeedItems.All() {
		snap.FeedItems[strconv.Itoa(id)] = i
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return afero.WriteFile(fs, path, data, 0o644)
}

// Load replaces the store contents with the snapshot at path.
func (s *Store) Load(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("unmarshal snapshot: %w", err)
	}

	d := &Data{}
	for key, u := range snap.Users {
		if err := checkSnapshotID(key, u); err != nil {
			return err
		}
		d.Users = append(d.Users, u)
	}
	for key, f := range snap.Feeds {
		if err := checkSnapshotID(key, f); err != nil {
			return err
		}
		d.Feeds = append(d.Feeds, f)
	}
	for key, i := range snap.FeedItems {
		if err := checkSnapshotID(key, i); err != nil {
			return err
		}
		d.FeedItems = append(d.FeedItems, i)
	}
	sort.Slice(d.Users, func(a, b int) bool { return d.Users[a].ID < d.Users[b].ID })
	sort.Slice(d.Feeds, func(a, b int) bool { return d.Feeds[a].ID < d.Feeds[b].ID })
	sort.Slice(d.FeedItems, func(a, b int) bool { return d.FeedItems[a].ID < d.FeedItems[b].ID })

	s.Reset(d)
	return nil
}

// checkSnapshotID verifies that a snapshot map key matches the document's
// own id field.
func checkSnapshotID(key string, doc Document) error {
	id, err := strconv.Atoi(key)
	if err != nil {
		return fmt.Errorf("snapshot key %q is not a document id", key)
	}
	if id != doc.DocID() {
		return fmt.Errorf("snapshot key %d does not match document id %d", id, doc.DocID())
	}
	return nil
}
