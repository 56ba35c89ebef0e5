package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	raven "github.com/getsentry/raven-go"
	"github.com/julienschmidt/httprouter"

	"github.com/troveapp/trove/items"
	"github.com/troveapp/trove/store"
)

// createResponse is the body returned by a successful creation. The secret
// fields are only present for private items.
type createResponse struct {
	ItemID        string `json:"item_id"`
	SecretKey     string `json:"secret_key,omitempty"`
	SecretURLPath string `json:"secret_url_path,omitempty"`
}

// CreateItemHandler handles requests to POST /items.
//
// The sequence is deliberate: validate, decode the image, upload the blob,
// then persist the record. A blob upload failure leaves nothing behind. A
// record persist failure triggers one best-effort delete of the blob just
// uploaded, and the persist failure is what the caller sees either way.
func (s *RESTServer) CreateItemHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req items.CreateRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req)
	if err != nil {
		writeError(w, 400, "Invalid JSON body")
		return
	}

	params, err := req.Validate()
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}

	contentType, data, err := items.DecodeImage(params.Image)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}

	id := items.NewID()
	key := id + items.ImageExtension(contentType)
	item := &items.Item{
		ID:          id,
		Visibility:  params.Visibility.String(),
		Category:    params.Category,
		Title:       params.Title,
		Description: params.Description,
		Latitude:    params.Latitude,
		Longitude:   params.Longitude,
		ImageURL:    s.imageURL(key),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if params.Visibility == items.VisibilityPrivate {
		item.SecretKey = items.NewSecretKey()
	}

	err = s.Blobs.Put(key, contentType, data)
	if err != nil {
		// nothing persisted yet, nothing to clean up
		writeError(w, 500, "Could not store image")
		return
	}

	err = s.Items.Insert(item)
	if err != nil {
		// compensate: a single attempt to remove the blob we just
		// uploaded. Its outcome does not change what we report.
		if derr := s.Blobs.Delete(key); derr != nil {
			log.Println("orphan blob cleanup failed:", key, derr)
			raven.CaptureError(derr, map[string]string{"Key": key})
		}
		writeError(w, 500, "Could not save item")
		return
	}

	resp := createResponse{ItemID: id}
	if item.SecretKey != "" {
		resp.SecretKey = item.SecretKey
		resp.SecretURLPath = "/items/" + id + "?key=" + url.QueryEscape(item.SecretKey)
	}
	writeJSON(w, 200, resp)
}

const maxRequestBody = 16 << 20 // images arrive base64-encoded in the body

// ItemHandler handles requests to GET /items/:id. Private items require the
// matching secret key in the "key" query parameter; a matching "admin_key"
// bypasses the visibility check entirely.
func (s *RESTServer) ItemHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		writeError(w, 400, "Missing item ID")
		return
	}

	item, err := s.Items.Item(id)
	if err == items.ErrNoItem {
		writeError(w, 404, "Item not found")
		return
	}
	if err != nil {
		writeError(w, 500, "Internal server error")
		return
	}

	q := r.URL.Query()
	admin := s.adminKeyValid(q.Get("admin_key"))
	switch err = items.Authorize(item, q.Get("key"), admin); err {
	case nil:
		writeJSON(w, 200, item.View())
	case items.ErrKeyRequired:
		writeError(w, 401, "Secret key is required")
	default:
		writeError(w, 403, "Invalid secret key")
	}
}

// DeleteItemHandler handles requests to DELETE /items/:id. Deletion is
// idempotent and tolerates either side already being gone: the photo delete
// is best effort, and a missing record is not an error.
func (s *RESTServer) DeleteItemHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		writeError(w, 400, "Missing item ID")
		return
	}

	item, err := s.Items.Item(id)
	if err != nil && err != items.ErrNoItem {
		// keep going; the record delete below may still succeed
		log.Println("delete: loading item", id, err)
	}
	if item != nil {
		if key := blobKeyFromURL(item.ImageURL); key != "" {
			if derr := s.Blobs.Delete(key); derr != nil {
				log.Println("delete: removing blob", key, derr)
			}
		}
	}

	err = s.Items.Delete(id)
	if err != nil {
		writeError(w, 500, "Could not delete item")
		return
	}
	writeJSON(w, 200, map[string]string{"message": "Item " + id + " deleted"})
}

// PublicItemsHandler handles requests to GET /public/items. No
// authorization is needed; the projection itself has no sensitive fields.
func (s *RESTServer) PublicItemsHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	list, err := s.Items.Public()
	if err != nil {
		writeError(w, 500, "Could not list public items")
		return
	}
	if list == nil {
		list = []*items.PublicItem{}
	}
	writeJSON(w, 200, map[string]interface{}{"items": list})
}

// AdminItemsHandler handles requests to GET /admin/items. The full table is
// returned, with every secret key stripped.
func (s *RESTServer) AdminItemsHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	adminKey := r.URL.Query().Get("admin_key")
	if adminKey == "" {
		writeError(w, 401, "Admin key is required")
		return
	}
	if !s.adminKeyValid(adminKey) {
		writeError(w, 403, "Invalid admin key")
		return
	}

	all, err := s.Items.All()
	if err != nil {
		writeError(w, 500, "Could not list items")
		return
	}
	views := make([]*items.Item, 0, len(all))
	for _, item := range all {
		views = append(views, item.View())
	}
	writeJSON(w, 200, map[string]interface{}{"items": views})
}

// ImageHandler handles requests to GET /images/:key by streaming the photo
// blob. In production a CDN usually fronts the bucket instead; this route
// keeps the file and memory stores usable end to end.
func (s *RESTServer) ImageHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := ps.ByName("key")
	rc, contentType, err := s.Blobs.Open(key)
	if err == store.ErrNotExist || err == store.ErrKeyContainsSlash {
		writeError(w, 404, "No such image")
		return
	}
	if err != nil {
		writeError(w, 500, "Could not read image")
		return
	}
	defer rc.Close()
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	io.Copy(w, rc)
}

// adminKeyValid reports whether the supplied credential matches the
// configured admin key. Always false when no admin key is configured.
func (s *RESTServer) adminKeyValid(supplied string) bool {
	return items.KeyMatches(supplied, s.AdminKey)
}

// imageURL forms the externally resolvable locator for a photo key.
func (s *RESTServer) imageURL(key string) string {
	base := s.ImageBaseURL
	if base == "" {
		base = "/images"
	}
	return strings.TrimSuffix(base, "/") + "/" + key
}

// blobKeyFromURL recovers the photo key from a stored image_url. Keys never
// contain a slash, so the last path segment is the whole key.
func blobKeyFromURL(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	u, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	key := path.Base(u.Path)
	if key == "." || key == "/" {
		return ""
	}
	return key
}
