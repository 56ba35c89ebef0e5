/*

Package items holds the domain logic for hidden item records: the record
type and its visibility rules, validation of creation requests, decoding of
submitted image payloads, the read-authorization decision, and the item
store implementations.

An item is created once and never updated. Private items carry a random
secret key which gates all reads; public items carry a category and appear
in the public map listing. The two are mutually exclusive, driven by the
visibility attribute.

The item's photo lives in a separate blob store (see the store package) and
is referenced by URL. The create path writes the blob strictly before the
record, and removes the blob (best effort) if the record write fails, so an
item never points at a missing image and orphan blobs are not accumulated
on the happy path.

*/
package items
