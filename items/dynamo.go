package items

import (
	"log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	raven "github.com/getsentry/raven-go"
	"github.com/pkg/errors"
)

// PublicIndex is the name of the secondary index on (visibility, created_at)
// used by the public listing. It must match the index defined on the table.
const PublicIndex = "visibility-created_at-index"

// A DynamoStore keeps item records in a DynamoDB table keyed by item_id,
// with the PublicIndex secondary index. Do not change Table concurrently
// with calls using the structure.
type DynamoStore struct {
	svc   *dynamodb.DynamoDB
	Table string
}

var _ Store = &DynamoStore{}

// NewDynamoStore creates a store using the given table. The credentials and
// region in the session are used for all accesses.
func NewDynamoStore(table string, awsSession *session.Session) *DynamoStore {
	return &DynamoStore{
		svc:   dynamodb.New(awsSession),
		Table: table,
	}
}

// Insert saves the record. It does not guard against overwriting: ids are
// random and server assigned, so collisions are not checked for.
func (s *DynamoStore) Insert(item *Item) error {
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		return errors.Wrap(err, "marshaling item")
	}
	_, err = s.svc.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.Table),
		Item:      av,
	})
	if err != nil {
		log.Println("Dynamo Insert:", s.Table, item.ID, err)
		raven.CaptureError(err, map[string]string{"Table": s.Table, "ItemID": item.ID})
		return errors.Wrap(err, "saving item record")
	}
	return nil
}

// Item fetches one record, or ErrNoItem if the id is unknown.
func (s *DynamoStore) Item(id string) (*Item, error) {
	out, err := s.svc.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(s.Table),
		Key:       itemKey(id),
	})
	if err != nil {
		log.Println("Dynamo Item:", s.Table, id, err)
		raven.CaptureError(err, map[string]string{"Table": s.Table, "ItemID": id})
		return nil, errors.Wrap(err, "loading item record")
	}
	if len(out.Item) == 0 {
		return nil, ErrNoItem
	}
	result := new(Item)
	err = dynamodbattribute.UnmarshalMap(out.Item, result)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling item")
	}
	return result, nil
}

// Delete removes the record. It is not an error to delete an id that does
// not exist.
func (s *DynamoStore) Delete(id string) error {
	_, err := s.svc.DeleteItem(&dynamodb.DeleteItemInput{
		TableName: aws.String(s.Table),
		Key:       itemKey(id),
	})
	if err != nil {
		log.Println("Dynamo Delete:", s.Table, id, err)
		raven.CaptureError(err, map[string]string{"Table": s.Table, "ItemID": id})
		return errors.Wrap(err, "deleting item record")
	}
	return nil
}

// All scans the whole table, following pagination until no continuation key
// remains. There is no page cap; the table is expected to stay small enough
// for the admin listing to walk within one request.
func (s *DynamoStore) All() ([]*Item, error) {
	var result []*Item
	var uerr error
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.Table),
	}
	err := s.svc.ScanPages(input,
		func(page *dynamodb.ScanOutput, lastpage bool) bool {
			for _, av := range page.Items {
				item := new(Item)
				uerr = dynamodbattribute.UnmarshalMap(av, item)
				if uerr != nil {
					return false
				}
				result = append(result, item)
			}
			return !lastpage
		})
	if err == nil {
		err = uerr
	}
	if err != nil {
		log.Println("Dynamo All:", s.Table, err)
		raven.CaptureError(err, map[string]string{"Table": s.Table})
		return nil, errors.Wrap(err, "scanning item table")
	}
	return result, nil
}

// Public queries the secondary index for PUBLIC records ordered by creation
// time, projecting only the map-display attributes. The secret key is not
// part of the projection, so nothing needs stripping afterwards.
func (s *DynamoStore) Public() ([]*PublicItem, error) {
	var result []*PublicItem
	var uerr error
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Table),
		IndexName:              aws.String(PublicIndex),
		KeyConditionExpression: aws.String("#vis = :vis"),
		ProjectionExpression:   aws.String("item_id, #title, latitude, longitude, category"),
		ExpressionAttributeNames: map[string]*string{
			"#vis":   aws.String("visibility"),
			"#title": aws.String("title"), // reserved word in DynamoDB expressions
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":vis": {S: aws.String(VisibilityPublic.String())},
		},
	}
	err := s.svc.QueryPages(input,
		func(page *dynamodb.QueryOutput, lastpage bool) bool {
			for _, av := range page.Items {
				item := new(PublicItem)
				uerr = dynamodbattribute.UnmarshalMap(av, item)
				if uerr != nil {
					return false
				}
				result = append(result, item)
			}
			return !lastpage
		})
	if err == nil {
		err = uerr
	}
	if err != nil {
		log.Println("Dynamo Public:", s.Table, err)
		raven.CaptureError(err, map[string]string{"Table": s.Table, "Index": PublicIndex})
		return nil, errors.Wrap(err, "querying public items")
	}
	return result, nil
}

func itemKey(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"item_id": {S: aws.String(id)},
	}
}
