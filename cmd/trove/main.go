package main

import (
	"flag"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	raven "github.com/getsentry/raven-go"

	"github.com/troveapp/trove/items"
	"github.com/troveapp/trove/server"
)

// Config holds the server configuration. Values come from the TOML file
// given by -config, with environment variables overriding the file.
type Config struct {
	Port         string
	AdminKey     string
	ItemTable    string // DynamoDB table; empty means in-memory (dev only)
	ImageStore   string // blob store location, e.g. "s3:/bucket/photos"
	ImageBaseURL string // CDN base for image URLs; empty serves from /images
	SentryDSN    string
	AWSRegion    string
	Dev          bool
}

func main() {
	var configFile = flag.String("config", "", "path to TOML configuration file")
	var dev = flag.Bool("dev", false, "run with in-memory stores and no required config")
	flag.Parse()

	var config Config
	if *configFile != "" {
		_, err := toml.DecodeFile(*configFile, &config)
		if err != nil {
			log.Fatalln("Error reading configuration:", err)
		}
	}
	config.Dev = config.Dev || *dev
	fromEnv(&config)

	if config.SentryDSN != "" {
		if err := raven.SetDSN(config.SentryDSN); err != nil {
			log.Fatalln("Error configuring Sentry:", err)
		}
	}

	// missing required configuration is fatal here, never per-request
	if !config.Dev {
		switch {
		case config.AdminKey == "":
			log.Fatalln("AdminKey (ADMIN_KEY) is required")
		case config.ItemTable == "":
			log.Fatalln("ItemTable (DYNAMODB_TABLE) is required")
		case config.ImageStore == "":
			log.Fatalln("ImageStore (IMAGES_STORE) is required")
		}
	}

	var itemstore items.Store
	if config.ItemTable == "" {
		log.Println("Using in-memory item store")
		itemstore = items.NewMemory()
	} else {
		log.Println("Using DynamoDB table", config.ItemTable)
		itemstore = items.NewDynamoStore(config.ItemTable, awsSession(config.AWSRegion))
	}

	blobstore := parselocation(config.ImageStore)
	if blobstore == nil {
		log.Fatalln("Cannot understand ImageStore location", config.ImageStore)
	}

	s := server.RESTServer{
		PortNumber:   config.Port,
		Items:        itemstore,
		Blobs:        blobstore,
		AdminKey:     config.AdminKey,
		ImageBaseURL: config.ImageBaseURL,
	}
	err := s.Run()
	if err != nil {
		log.Fatalln(err)
	}
}

// fromEnv overlays environment variables onto the config. The names match
// the ones the deployment wiring sets.
func fromEnv(config *Config) {
	setifset := func(target *string, name string) {
		if v := os.Getenv(name); v != "" {
			*target = v
		}
	}
	setifset(&config.Port, "PORT")
	setifset(&config.AdminKey, "ADMIN_KEY")
	setifset(&config.ItemTable, "DYNAMODB_TABLE")
	setifset(&config.ImageStore, "IMAGES_STORE")
	setifset(&config.ImageBaseURL, "IMAGE_BASE_URL")
	setifset(&config.SentryDSN, "SENTRY_DSN")
	setifset(&config.AWSRegion, "AWS_REGION")
}

func awsSession(region string) *session.Session {
	conf := &aws.Config{}
	if region != "" {
		conf.Region = aws.String(region)
	}
	return session.New(conf)
}
