package items

import (
	"errors"
)

// ErrNoItem is returned by Store.Item when no record has the given id.
var ErrNoItem = errors.New("no item, bad item id")

// A Store holds item records. The production implementation is backed by
// DynamoDB; a memory implementation exists for testing. All calls are
// single-attempt synchronous remote operations; callers surface failures
// immediately rather than retrying.
type Store interface {
	// Insert saves a new record. Item ids are random and server assigned,
	// so no duplicate check is made.
	Insert(item *Item) error

	// Item fetches one record by id, or ErrNoItem.
	Item(id string) (*Item, error)

	// Delete removes a record. Deleting an id that does not exist is not
	// an error.
	Delete(id string) error

	// All returns every record, following pagination to exhaustion.
	// Intended for the admin listing only.
	All() ([]*Item, error)

	// Public returns the reduced projection of all public records, ordered
	// by creation time via the secondary index, paginated to exhaustion.
	Public() ([]*PublicItem, error)
}
