package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/Akashx1550/TrendMart-backend/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoProductRepository.
type DynamoAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// DynamoProductRepository stores products in a table keyed by the numeric
// `id` and allocates ids from a counters table keyed by `name`.
type DynamoProductRepository struct {
	client        DynamoAPI
	table         string
	countersTable string
	mode          IDMode
}

func NewDynamoProductRepository(client DynamoAPI, table, countersTable string, mode IDMode) *DynamoProductRepository {
	if mode == "" {
		mode = IDModeSequence
	}
	return &DynamoProductRepository{
		client:        client,
		table:         table,
		countersTable: countersTable,
		mode:          mode,
	}
}

func (d *DynamoProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return d.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(d.table)})
}

func (d *DynamoProductRepository) FindByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return d.scan(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(d.table),
		FilterExpression:         aws.String("#c = :c"),
		ExpressionAttributeNames: map[string]string{"#c": "category"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: category},
		},
	})
}

// scan reads every page and orders the result by id, which is insertion
// order for allocated ids.
func (d *DynamoProductRepository) scan(ctx context.Context, input *dynamodb.ScanInput) ([]models.Product, error) {
	products := []models.Product{}
	paginator := dynamodb.NewScanPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan page failed: %w", err)
		}
		var batch []models.Product
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
		products = append(products, batch...)
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (d *DynamoProductRepository) Create(ctx context.Context, product *models.Product) error {
	item, err := attributevalue.MarshalMap(product)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var exists *types.ConditionalCheckFailedException
		if errors.As(err, &exists) {
			return ErrDuplicateProductID
		}
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

func (d *DynamoProductRepository) DeleteByID(ctx context.Context, id int64) (*models.Product, error) {
	out, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(d.table),
		Key:          productKey(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb DeleteItem failed: %w", err)
	}
	if len(out.Attributes) == 0 {
		return nil, nil
	}
	var deleted models.Product
	if err := attributevalue.UnmarshalMap(out.Attributes, &deleted); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return &deleted, nil
}

func (d *DynamoProductRepository) NextID(ctx context.Context) (int64, error) {
	if d.mode == IDModeLegacy {
		products, err := d.FindAll(ctx)
		if err != nil {
			return 0, err
		}
		if len(products) == 0 {
			return 1, nil
		}
		return products[len(products)-1].ID + 1, nil
	}

	out, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(d.countersTable),
		Key:              counterKey(),
		UpdateExpression: aws.String("ADD seq :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("allocate product id: %w", err)
	}
	var seq int64
	if err := attributevalue.Unmarshal(out.Attributes["seq"], &seq); err != nil {
		return 0, fmt.Errorf("unmarshal sequence: %w", err)
	}
	return seq, nil
}

func (d *DynamoProductRepository) SyncSequence(ctx context.Context) error {
	if d.mode == IDModeLegacy {
		return nil
	}

	products, err := d.FindAll(ctx)
	if err != nil {
		return err
	}
	var maxID int64
	if len(products) > 0 {
		maxID = products[len(products)-1].ID
	}

	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(d.countersTable),
		Key:                 counterKey(),
		UpdateExpression:    aws.String("SET seq = :max"),
		ConditionExpression: aws.String("attribute_not_exists(seq) OR seq < :max"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":max": &types.AttributeValueMemberN{Value: strconv.FormatInt(maxID, 10)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil
		}
		return fmt.Errorf("sync product id sequence: %w", err)
	}
	return nil
}

func productKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
}

func counterKey() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"name": &types.AttributeValueMemberS{Value: productSequenceKey},
	}
}
