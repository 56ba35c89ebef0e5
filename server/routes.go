package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/facebookgo/httpdown"
	raven "github.com/getsentry/raven-go"
	"github.com/julienschmidt/httprouter"

	"github.com/troveapp/trove/items"
	"github.com/troveapp/trove/store"
)

// Version is the version string reported by the welcome route. It is set at
// build time.
var Version = "devel"

// RESTServer holds the configuration for a trove REST API server.
//
// Set all the public fields and then call Run. Run will listen on the given
// port and handle requests. Do not change any fields after calling Run.
//
// Each request resolves against the injected Items and Blobs collaborators;
// there is no other shared mutable state between requests.
type RESTServer struct {
	// Port number to listen on. Defaults to 14100.
	PortNumber string

	// Items is the item record store. Run will panic if Items is nil.
	Items items.Store

	// Blobs holds the item photos. Run will panic if Blobs is nil.
	Blobs store.Store

	// AdminKey is the shared credential granting elevated read access.
	// If empty, no admin key is accepted anywhere.
	AdminKey string

	// ImageBaseURL is prepended to blob keys to form each item's
	// image_url, e.g. a CDN distribution in front of the photo bucket.
	// If empty, URLs point at this server's own /images/ route.
	ImageBaseURL string

	server httpdown.Server // used to close our listening socket
}

// Run starts the server. It blocks listening for and handling http
// requests.
func (s *RESTServer) Run() error {
	log.Println("==========")
	log.Printf("Starting Trove Server version %s", Version)

	if s.Items == nil {
		panic("No item store given. Items is nil.")
	}
	if s.Blobs == nil {
		panic("No blob store given. Blobs is nil.")
	}
	if s.AdminKey == "" {
		log.Println("No AdminKey given. Admin routes are disabled.")
	}
	if s.PortNumber == "" {
		s.PortNumber = "14100"
	}
	log.Println("Listening on", s.PortNumber)

	var err error
	h := httpdown.HTTP{}
	s.server, err = h.ListenAndServe(&http.Server{
		Addr:    ":" + s.PortNumber,
		Handler: s.Handler(),
	})
	if err != nil {
		log.Println(err)
		return err
	}
	return s.server.Wait()
}

// Stop will stop the server and return when all the outstanding requests
// have finished and the socket is closed.
func (s *RESTServer) Stop() error {
	return s.server.Stop()
}

// Handler returns the http.Handler serving this server's routes. It is
// exposed so tests and embedders can mount the API without opening a
// listening socket.
func (s *RESTServer) Handler() http.Handler {
	var routes = []struct {
		method  string
		route   string
		handler httprouter.Handle
	}{
		{"POST", "/items", s.CreateItemHandler},
		{"GET", "/items/:id", s.ItemHandler},
		{"DELETE", "/items/:id", s.DeleteItemHandler},
		{"GET", "/public/items", s.PublicItemsHandler},
		{"GET", "/admin/items", s.AdminItemsHandler},
		{"GET", "/images/:key", s.ImageHandler},
		{"GET", "/", WelcomeHandler},
	}

	r := httprouter.New()
	for _, route := range routes {
		r.Handle(route.method,
			route.route,
			logWrapper(corsWrapper(recoverWrapper(route.handler))))
	}
	// CORS preflight for browser clients
	r.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// WelcomeHandler handles requests to GET /
func WelcomeHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	fmt.Fprintf(w, "Trove (%s)\n", Version)
}

// General route handlers and convenience functions

// writeJSON sends val as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, val interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(val)
	if err != nil {
		// too late to change the status; at least leave a trace
		log.Println("writeJSON:", err)
		raven.CaptureError(err, nil)
	}
}

// writeError sends a structured error body. Messages passed here are shown
// to the caller, so internal detail belongs in the log, not in message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// corsWrapper adds the permissive cross-origin header every response
// carries. Tighten the origin in a real deployment.
func corsWrapper(handler httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		handler(w, r, ps)
	}
}

// recoverWrapper converts a panicking handler into a generic 500 so no
// internal detail leaks to the caller.
func recoverWrapper(handler httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		defer func() {
			if err := recover(); err != nil {
				log.Println("panic:", r.Method, r.URL, err)
				writeError(w, 500, "Internal server error")
			}
		}()
		handler(w, r, ps)
	}
}

// logWrapper takes a handler and returns a handler which does the same
// thing, after first logging the request URL.
func logWrapper(handler httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		log.Println(r.Method, r.URL)
		handler(w, r, ps)
	}
}
