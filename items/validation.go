package items

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// A CreateRequest is the decoded body of an item creation call. The
// coordinates are kept raw since clients send them as either JSON numbers
// or numeric strings; Validate settles them into float64s.
type CreateRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Latitude    json.RawMessage `json:"latitude"`
	Longitude   json.RawMessage `json:"longitude"`
	Image       string          `json:"image"`
	Visibility  string          `json:"visibility"`
	Category    string          `json:"category"`
}

// CreateParams is the normalized output of validation, ready for the create
// workflow.
type CreateParams struct {
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Image       string
	Visibility  Visibility
	Category    string // empty unless Visibility is public
}

var (
	// ErrInvalidVisibility means the visibility was given but is neither
	// PUBLIC nor PRIVATE.
	ErrInvalidVisibility = errors.New("visibility must be PUBLIC or PRIVATE")

	// ErrMissingCategory means a public item was submitted without a category.
	ErrMissingCategory = errors.New("category is required for public items")

	// ErrInvalidCoordinate means a latitude or longitude did not parse as a
	// decimal number.
	ErrInvalidCoordinate = errors.New("latitude and longitude must be decimal numbers")

	// ErrCoordinateRange means a coordinate parsed but is outside the valid
	// range (latitude [-90,90], longitude [-180,180]).
	ErrCoordinateRange = errors.New("coordinate out of range")
)

// A MissingFieldError names a required creation field that was absent or
// empty.
type MissingFieldError string

func (e MissingFieldError) Error() string {
	return "missing required field: " + string(e)
}

// Validate checks a creation request and returns the normalized parameters.
// Checks run in a fixed order and the first failure wins: field presence,
// then visibility, then category, then coordinate syntax and range.
func (req *CreateRequest) Validate() (CreateParams, error) {
	var p CreateParams

	required := []struct {
		name  string
		empty bool
	}{
		{"title", req.Title == ""},
		{"description", req.Description == ""},
		{"latitude", rawEmpty(req.Latitude)},
		{"longitude", rawEmpty(req.Longitude)},
		{"image", req.Image == ""},
	}
	for _, f := range required {
		if f.empty {
			return p, MissingFieldError(f.name)
		}
	}

	vis := ParseVisibility(req.Visibility)
	if vis == VisibilityUnknown {
		return p, ErrInvalidVisibility
	}

	if vis == VisibilityPublic && strings.TrimSpace(req.Category) == "" {
		return p, ErrMissingCategory
	}

	lat, err := parseCoordinate(req.Latitude)
	if err != nil {
		return p, err
	}
	lon, err := parseCoordinate(req.Longitude)
	if err != nil {
		return p, err
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return p, ErrCoordinateRange
	}

	p = CreateParams{
		Title:       req.Title,
		Description: req.Description,
		Latitude:    lat,
		Longitude:   lon,
		Image:       req.Image,
		Visibility:  vis,
	}
	if vis == VisibilityPublic {
		p.Category = req.Category
	}
	return p, nil
}

// rawEmpty reports whether a raw JSON field is missing, null, or an empty
// string.
func rawEmpty(raw json.RawMessage) bool {
	s := string(bytes.TrimSpace(raw))
	return s == "" || s == "null" || s == `""`
}

// parseCoordinate accepts a JSON number or a string holding one.
func parseCoordinate(raw json.RawMessage) (float64, error) {
	s := string(bytes.TrimSpace(raw))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidCoordinate
	}
	// ParseFloat accepts "NaN" and "Inf", which are not decimal numbers
	// and cannot be stored in a JSON document.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidCoordinate
	}
	return v, nil
}
