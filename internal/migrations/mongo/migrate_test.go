package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func findCollection(t *testing.T, name string) Collection {
	t.Helper()
	for _, c := range Collections() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("collection %s is not migrated", name)
	return Collection{}
}

func TestCollections_AllHaveValidators(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Collections() {
		if seen[c.Name] {
			t.Errorf("collection %s listed twice", c.Name)
		}
		seen[c.Name] = true
		if _, ok := c.Validator["$jsonSchema"]; !ok {
			t.Errorf("collection %s has no $jsonSchema validator", c.Name)
		}
		if len(c.Indexes) == 0 {
			t.Errorf("collection %s has no indexes", c.Name)
		}
	}
}

func TestCollections_UniqueIndexes(t *testing.T) {
	tests := []struct {
		collection string
		keys       bson.D
	}{
		{"Guides", bson.D{{Key: "user_id", Value: 1}}},
		{"Reviews", bson.D{{Key: "author_id", Value: 1}, {Key: "target_type", Value: 1}, {Key: "target_id", Value: 1}}},
		{"Notifications", bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			c := findCollection(t, tt.collection)
			for _, idx := range c.Indexes {
				keys, ok := idx.Keys.(bson.D)
				if !ok || len(keys) != len(tt.keys) {
					continue
				}
				match := true
				for i := range keys {
					if keys[i].Key != tt.keys[i].Key {
						match = false
					}
				}
				if match {
					if idx.Options == nil || idx.Options.Unique == nil || !*idx.Options.Unique {
						t.Errorf("index %v on %s is not unique", tt.keys, tt.collection)
					}
					return
				}
			}
			t.Errorf("no index %v on %s", tt.keys, tt.collection)
		})
	}
}

func TestCollections_SlotLocksExpire(t *testing.T) {
	c := findCollection(t, "Slot_locks")
	opts := c.Indexes[0].Options
	if opts == nil || opts.ExpireAfterSeconds == nil || *opts.ExpireAfterSeconds != 0 {
		t.Fatal("expected TTL index on expires_at")
	}
}
