package main

// The tctl tool is a small command line client for a trove server. It is
// mostly useful for poking at a development server and for admin chores.

import (
	"encoding/base64"
	"flag"
	"fmt"
	"io/ioutil"
	"mime"
	"os"
	"path/filepath"

	"github.com/antonholmquist/jason"

	"github.com/troveapp/trove/clientapi"
)

var (
	server   = flag.String("server", "http://localhost:14100", "Trove server to use")
	key      = flag.String("key", "", "secret key for reading a private item")
	adminKey = flag.String("admin", "", "admin key")

	usage = `
tctl <flags> <command> <arguments>

Possible commands:

    get <item id>
    public
    ls
    create <title> <description> <latitude> <longitude> <image file> [category]
    rm <item id>

"ls" needs -admin. "create" makes a public item when a category is given,
and a private one otherwise.
`
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		fmt.Println(usage)
		return
	}

	conn := &clientapi.Connection{HostURL: *server, AdminKey: *adminKey}

	var err error
	switch args[0] {
	case "get":
		if len(args) != 2 {
			fmt.Println("Usage: tctl <flags> get <item id>")
			return
		}
		err = doGet(conn, args[1])
	case "public":
		err = doPublic(conn)
	case "ls":
		err = doList(conn)
	case "create":
		if len(args) < 6 || len(args) > 7 {
			fmt.Println("Usage: tctl <flags> create <title> <description> <lat> <lon> <image file> [category]")
			return
		}
		err = doCreate(conn, args[1:])
	case "rm":
		if len(args) != 2 {
			fmt.Println("Usage: tctl <flags> rm <item id>")
			return
		}
		err = conn.Delete(args[1])
	default:
		fmt.Println(usage)
		return
	}
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func doGet(conn *clientapi.Connection, id string) error {
	v, err := conn.Item(id, *key)
	if err != nil {
		return err
	}
	printItem(v)
	return nil
}

func doPublic(conn *clientapi.Connection) error {
	list, err := conn.PublicItems()
	if err != nil {
		return err
	}
	for _, v := range list {
		printItem(v)
	}
	return nil
}

func doList(conn *clientapi.Connection) error {
	list, err := conn.AdminItems()
	if err != nil {
		return err
	}
	for _, v := range list {
		printItem(v)
	}
	return nil
}

func doCreate(conn *clientapi.Connection, args []string) error {
	image, err := imageDataURI(args[4])
	if err != nil {
		return err
	}
	fields := map[string]interface{}{
		"title":       args[0],
		"description": args[1],
		"latitude":    args[2],
		"longitude":   args[3],
		"image":       image,
	}
	if len(args) == 6 {
		fields["visibility"] = "PUBLIC"
		fields["category"] = args[5]
	}
	v, err := conn.Create(fields)
	if err != nil {
		return err
	}
	id, _ := v.GetString("item_id")
	fmt.Println("item_id:", id)
	if secret, err := v.GetString("secret_key"); err == nil {
		fmt.Println("secret_key:", secret)
		path, _ := v.GetString("secret_url_path")
		fmt.Println("share:", *server+path)
	}
	return nil
}

// imageDataURI reads a file and encodes it the way the create endpoint
// expects, guessing the media type from the file extension.
func imageDataURI(fname string) (string, error) {
	data, err := ioutil.ReadFile(fname)
	if err != nil {
		return "", err
	}
	contentType := mime.TypeByExtension(filepath.Ext(fname))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," +
		base64.StdEncoding.EncodeToString(data), nil
}

func printItem(v *jason.Object) {
	id, _ := v.GetString("item_id")
	title, _ := v.GetString("title")
	lat, _ := v.GetFloat64("latitude")
	lon, _ := v.GetFloat64("longitude")
	fmt.Printf("%s  (%g, %g)  %s", id, lat, lon, title)
	if category, err := v.GetString("category"); err == nil {
		fmt.Printf("  [%s]", category)
	}
	fmt.Println()
}
