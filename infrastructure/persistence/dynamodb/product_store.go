package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	productKey = "id"
	stockKey   = "product_id"
)

// API is the subset of the DynamoDB client the store uses.
type API interface {
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Tables names the two catalog tables.
type Tables struct {
	Products string
	Stocks   string
}

// ProductStore implements ports.ProductStore on two DynamoDB tables: one
// keyed by product id and one keyed by the product id of the stock entry.
type ProductStore struct {
	client API
	tables Tables
	logger *zap.Logger
}

// NewProductStore creates a new ProductStore
func NewProductStore(client API, tables Tables, logger *zap.Logger) *ProductStore {
	return &ProductStore{
		client: client,
		tables: tables,
		logger: logger,
	}
}

// CreateWithStock writes the product and its stock entry in one transaction.
// Each put is guarded by the absence of its key so an existing product or
// stock entry cancels the whole transaction.
func (s *ProductStore) CreateWithStock(ctx context.Context, p product.Product, count int) error {
	productItem, err := attributevalue.MarshalMap(p)
	if err != nil {
		return apperrors.NewBackendError("marshal product", err)
	}
	stockItem, err := attributevalue.MarshalMap(product.StockEntry{ProductID: p.ID, Count: count})
	if err != nil {
		return apperrors.NewBackendError("marshal stock", err)
	}

	productPut, err := guardedPut(s.tables.Products, productKey, productItem)
	if err != nil {
		return apperrors.NewBackendError("build product condition", err)
	}
	stockPut, err := guardedPut(s.tables.Stocks, stockKey, stockItem)
	if err != nil {
		return apperrors.NewBackendError("build stock condition", err)
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: productPut},
			{Put: stockPut},
		},
	})
	if err != nil {
		return classifyWriteError(p.ID, err)
	}

	s.logger.Debug("Product and stock written",
		zap.String("product_id", p.ID),
		zap.Int("count", count),
	)
	return nil
}

func guardedPut(table, key string, item map[string]types.AttributeValue) (*types.Put, error) {
	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name(key))).
		Build()
	if err != nil {
		return nil, err
	}
	return &types.Put{
		TableName:                aws.String(table),
		Item:                     item,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	}, nil
}

// classifyWriteError separates key collisions from every other failure. A
// cancellation caused by anything but a failed condition (throttling, a
// concurrent transaction on the same item) is not a conflict. The AWS error
// code, when there is one, is kept on the result.
func classifyWriteError(id string, err error) error {
	var code string
	var ae smithy.APIError
	if errors.As(err, &ae) {
		code = ae.ErrorCode()
	}

	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		if len(tce.CancellationReasons) == 0 {
			return apperrors.NewConflictError(fmt.Sprintf("product %s already exists", id), err).WithCode(code)
		}
		for _, reason := range tce.CancellationReasons {
			if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
				return apperrors.NewConflictError(fmt.Sprintf("product %s already exists", id), err).WithCode(code)
			}
		}
		return apperrors.NewBackendError("transact write", err).WithCode(code)
	}

	if code == "ConditionalCheckFailedException" {
		return apperrors.NewConflictError(fmt.Sprintf("product %s already exists", id), err).WithCode(code)
	}
	return apperrors.NewBackendError("transact write", err).WithCode(code)
}

// GetProduct reads the product and its stock entry concurrently.
func (s *ProductStore) GetProduct(ctx context.Context, id string) (product.Product, error) {
	var (
		p     product.Product
		found bool
		stock *product.StockEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := s.client.GetItem(gctx, &dynamodb.GetItemInput{
			TableName: aws.String(s.tables.Products),
			Key:       stringKey(productKey, id),
		})
		if err != nil {
			return apperrors.NewBackendError("get product", err)
		}
		if len(out.Item) == 0 {
			return nil
		}
		if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
			return apperrors.NewBackendError("unmarshal product", err)
		}
		found = true
		return nil
	})
	g.Go(func() error {
		out, err := s.client.GetItem(gctx, &dynamodb.GetItemInput{
			TableName: aws.String(s.tables.Stocks),
			Key:       stringKey(stockKey, id),
		})
		if err != nil {
			return apperrors.NewBackendError("get stock", err)
		}
		if len(out.Item) == 0 {
			return nil
		}
		var entry product.StockEntry
		if err := attributevalue.UnmarshalMap(out.Item, &entry); err != nil {
			return apperrors.NewBackendError("unmarshal stock", err)
		}
		stock = &entry
		return nil
	})
	if err := g.Wait(); err != nil {
		return product.Product{}, err
	}

	if !found {
		return product.Product{}, apperrors.NewNotFoundError("product")
	}
	return product.WithStock(p, stock), nil
}

// ListProducts scans both tables in parallel and joins them by product id.
// Products without a stock entry read as zero stock.
func (s *ProductStore) ListProducts(ctx context.Context) ([]product.Product, error) {
	var (
		products []product.Product
		stocks   []product.StockEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = scanAll[product.Product](gctx, s.client, s.tables.Products)
		return err
	})
	g.Go(func() error {
		var err error
		stocks, err = scanAll[product.StockEntry](gctx, s.client, s.tables.Stocks)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]*product.StockEntry, len(stocks))
	for i := range stocks {
		byID[stocks[i].ProductID] = &stocks[i]
	}

	joined := make([]product.Product, 0, len(products))
	for _, p := range products {
		joined = append(joined, product.WithStock(p, byID[p.ID]))
	}

	s.logger.Debug("Listed products",
		zap.Int("products", len(products)),
		zap.Int("stocks", len(stocks)),
	)
	return joined, nil
}

func scanAll[T any](ctx context.Context, client dynamodb.ScanAPIClient, table string) ([]T, error) {
	var items []T
	paginator := dynamodb.NewScanPaginator(client, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewBackendError("scan "+table, err)
		}
		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, apperrors.NewBackendError("unmarshal "+table, err)
		}
		items = append(items, batch...)
	}
	return items, nil
}

func stringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}
