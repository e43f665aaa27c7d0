package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/go-trip-booking/internal/domain"
)

// TripRepository persists trip snapshots in the trips table, keyed by trip_id.
type TripRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewTripRepository(client *dynamodb.Client, tableName string) *TripRepository {
	return &TripRepository{client: client, tableName: tableName}
}

func (r *TripRepository) FindByID(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("trip_id", id.String()),
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("get trip %s: %w", id, err)
	}
	if out.Item == nil {
		return domain.Trip{}, domain.ErrNotFound
	}
	var snap domain.TripSnapshot
	if err := attributevalue.UnmarshalMap(out.Item, &snap); err != nil {
		return domain.Trip{}, fmt.Errorf("unmarshal trip %s: %w", id, err)
	}
	return domain.TripFromSnapshot(snap)
}

func (r *TripRepository) FindAll(ctx context.Context) ([]domain.Trip, error) {
	var trips []domain.Trip
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan trips: %w", err)
		}
		var snaps []domain.TripSnapshot
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &snaps); err != nil {
			return nil, fmt.Errorf("unmarshal trips: %w", err)
		}
		for _, snap := range snaps {
			t, err := domain.TripFromSnapshot(snap)
			if err != nil {
				return nil, err
			}
			trips = append(trips, t)
		}
	}
	return trips, nil
}

func (r *TripRepository) Save(ctx context.Context, t domain.Trip) error {
	item, err := attributevalue.MarshalMap(t.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal trip %s: %w", t.ID(), err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put trip %s: %w", t.ID(), err)
	}
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, id domain.TripID) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("trip_id", id.String()),
	}); err != nil {
		return fmt.Errorf("delete trip %s: %w", id, err)
	}
	return nil
}

func (r *TripRepository) Exists(ctx context.Context, id domain.TripID) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(r.tableName),
		Key:                  strKey("trip_id", id.String()),
		ProjectionExpression: aws.String("trip_id"),
	})
	if err != nil {
		return false, fmt.Errorf("check trip %s: %w", id, err)
	}
	return out.Item != nil, nil
}
