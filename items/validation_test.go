package items

import (
	"encoding/json"
	"testing"
)

func TestParseVisibility(t *testing.T) {
	var table = []struct {
		input  string
		output Visibility
	}{
		{"", VisibilityPrivate},
		{"PRIVATE", VisibilityPrivate},
		{"private", VisibilityPrivate},
		{"Public", VisibilityPublic},
		{"PUBLIC", VisibilityPublic},
		{"hidden", VisibilityUnknown},
		{"PUBLIC ", VisibilityUnknown},
	}

	for _, row := range table {
		result := ParseVisibility(row.input)
		if result != row.output {
			t.Errorf("For %q received %v, expected %v", row.input, result, row.output)
		}
	}
}

func TestValidate(t *testing.T) {
	var table = []struct {
		name string
		body string
		err  error
	}{
		{"ok private", `{"title":"t","description":"d","latitude":1,"longitude":2,"image":"AA=="}`, nil},
		{"ok public", `{"title":"t","description":"d","latitude":1,"longitude":2,"image":"AA==","visibility":"public","category":"art"}`, nil},
		{"string coords", `{"title":"t","description":"d","latitude":"45.0","longitude":"-120.5","image":"AA=="}`, nil},
		{"no title", `{"description":"d","latitude":1,"longitude":2,"image":"AA=="}`, MissingFieldError("title")},
		{"empty title", `{"title":"","description":"d","latitude":1,"longitude":2,"image":"AA=="}`, MissingFieldError("title")},
		{"no description", `{"title":"t","latitude":1,"longitude":2,"image":"AA=="}`, MissingFieldError("description")},
		{"no latitude", `{"title":"t","description":"d","longitude":2,"image":"AA=="}`, MissingFieldError("latitude")},
		{"null latitude", `{"title":"t","description":"d","latitude":null,"longitude":2,"image":"AA=="}`, MissingFieldError("latitude")},
		{"no longitude", `{"title":"t","description":"d","latitude":1,"image":"AA=="}`, MissingFieldError("longitude")},
		{"no image", `{"title":"t","description":"d","latitude":1,"longitude":2}`, MissingFieldError("image")},
		{"bad visibility", `{"title":"t","description":"d","latitude":1,"longitude":2,"image":"AA==","visibility":"secret"}`, ErrInvalidVisibility},
		{"public no category", `{"title":"t","description":"d","latitude":1,"longitude":2,"image":"AA==","visibility":"PUBLIC"}`, ErrMissingCategory},
		{"public blank category", `{"title":"t","description":"d","latitude":1,"longitude":2,"image":"AA==","visibility":"PUBLIC","category":"  "}`, ErrMissingCategory},
		{"coordinate not number", `{"title":"t","description":"d","latitude":"north","longitude":2,"image":"AA=="}`, ErrInvalidCoordinate},
		{"NaN latitude", `{"title":"t","description":"d","latitude":"NaN","longitude":0,"image":"AA=="}`, ErrInvalidCoordinate},
		{"infinite latitude", `{"title":"t","description":"d","latitude":"Inf","longitude":0,"image":"AA=="}`, ErrInvalidCoordinate},
		{"negative infinite longitude", `{"title":"t","description":"d","latitude":0,"longitude":"-Inf","image":"AA=="}`, ErrInvalidCoordinate},
		{"latitude too big", `{"title":"t","description":"d","latitude":91,"longitude":0,"image":"AA=="}`, ErrCoordinateRange},
		{"latitude too small", `{"title":"t","description":"d","latitude":-90.5,"longitude":0,"image":"AA=="}`, ErrCoordinateRange},
		{"longitude too big", `{"title":"t","description":"d","latitude":0,"longitude":180.1,"image":"AA=="}`, ErrCoordinateRange},
		{"longitude too small", `{"title":"t","description":"d","latitude":0,"longitude":-181,"image":"AA=="}`, ErrCoordinateRange},
	}

	for _, row := range table {
		var req CreateRequest
		err := json.Unmarshal([]byte(row.body), &req)
		if err != nil {
			t.Fatal(row.name, err)
		}
		_, err = req.Validate()
		if err != row.err {
			t.Errorf("%s: received %v, expected %v", row.name, err, row.err)
		}
	}
}

func TestValidateOrder(t *testing.T) {
	// many problems at once: the missing field must win over the bad
	// visibility and the out of range coordinate
	body := `{"description":"d","latitude":99,"longitude":0,"image":"AA==","visibility":"wrong"}`
	var req CreateRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatal(err)
	}
	_, err := req.Validate()
	if err != MissingFieldError("title") {
		t.Errorf("received %v, expected %v", err, MissingFieldError("title"))
	}
}

func TestValidateNormalization(t *testing.T) {
	// string and numeric coordinates must come out the same
	bodies := []string{
		`{"title":"t","description":"d","latitude":"45.0","longitude":"9.25","image":"AA=="}`,
		`{"title":"t","description":"d","latitude":45.0,"longitude":9.25,"image":"AA=="}`,
	}
	var got []CreateParams
	for _, body := range bodies {
		var req CreateRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatal(err)
		}
		p, err := req.Validate()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, p)
	}
	if got[0].Latitude != got[1].Latitude || got[0].Longitude != got[1].Longitude {
		t.Errorf("string and numeric coordinates disagree: %v vs %v", got[0], got[1])
	}
	if got[0].Latitude != 45.0 || got[0].Longitude != 9.25 {
		t.Errorf("received (%v,%v), expected (45,9.25)", got[0].Latitude, got[0].Longitude)
	}
	if got[0].Visibility != VisibilityPrivate {
		t.Errorf("received visibility %v, expected private", got[0].Visibility)
	}
	if got[0].Category != "" {
		t.Errorf("private item has category %q", got[0].Category)
	}
}
