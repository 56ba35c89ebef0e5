// Package clientapi speaks to a trove server over its REST interface. It is
// used by the tctl command line tool.
package clientapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/antonholmquist/jason"
)

// Exported errors
var (
	ErrNotFound      = errors.New("Item Not Found in Trove")
	ErrNotAuthorized = errors.New("Secret Key Required")
	ErrForbidden     = errors.New("Access Denied")
	ErrBadRequest    = errors.New("Bad Request")
	ErrServerError   = errors.New("Server Error")
)

// A Connection represents a connection with a trove service.
// It can be shared between multiple goroutines.
type Connection struct {
	// The trove server this connection is to, e.g. "http://localhost:14100"
	HostURL string

	// AdminKey, if set, is sent on requests that accept one.
	AdminKey string

	client *http.Client
}

// Item returns one item record. The key is the item's secret key, and may
// be empty for public items or when the connection has an admin key.
func (c *Connection) Item(id, key string) (*jason.Object, error) {
	q := url.Values{}
	if key != "" {
		q.Set("key", key)
	}
	if c.AdminKey != "" {
		q.Set("admin_key", c.AdminKey)
	}
	path := "/items/" + id
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.doJasonGet(path)
}

// PublicItems returns the reduced records in the public listing.
func (c *Connection) PublicItems() ([]*jason.Object, error) {
	v, err := c.doJasonGet("/public/items")
	if err != nil {
		return nil, err
	}
	return v.GetObjectArray("items")
}

// AdminItems returns every record on the server. The connection's AdminKey
// must be set.
func (c *Connection) AdminItems() ([]*jason.Object, error) {
	v, err := c.doJasonGet("/admin/items?admin_key=" + url.QueryEscape(c.AdminKey))
	if err != nil {
		return nil, err
	}
	return v.GetObjectArray("items")
}

// Create submits a new item. The fields map is serialized as the request
// body; see the server's POST /items contract.
func (c *Connection) Create(fields map[string]interface{}) (*jason.Object, error) {
	buf, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest("POST", c.HostURL+"/items", bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, statusError(resp.StatusCode)
	}
	return jason.NewObjectFromReader(resp.Body)
}

// Delete removes an item and its photo.
func (c *Connection) Delete(id string) error {
	req, err := http.NewRequest("DELETE", c.HostURL+"/items/"+id, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		return statusError(resp.StatusCode)
	}
	return nil
}

// do performs an http request using our client with a timeout. The timeout
// is arbitrary, and is just there so we don't hang indefinitely should the
// server never close the connection.
func (c *Connection) do(req *http.Request) (*http.Response, error) {
	if c.client == nil {
		c.client = &http.Client{
			Timeout: 5 * time.Minute, // arbitrary
		}
	}
	return c.client.Do(req)
}

func (c *Connection) doJasonGet(path string) (*jason.Object, error) {
	req, err := http.NewRequest("GET", c.HostURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, statusError(resp.StatusCode)
	}
	return jason.NewObjectFromReader(resp.Body)
}

func statusError(code int) error {
	switch code {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrNotAuthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 500:
		return ErrServerError
	}
	return fmt.Errorf("Received status %d from Trove", code)
}
