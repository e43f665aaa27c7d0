package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/go-trip-booking/internal/domain"
)

// sessionItem is the session wire form: the domain fields plus an epoch copy
// of the expiry that the table's TTL setting evicts on.
type sessionItem struct {
	SessionID    string    `dynamodbav:"session_id"`
	Token        string    `dynamodbav:"token"`
	UserID       string    `dynamodbav:"user_id"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
	ExpiresAt    time.Time `dynamodbav:"expires_at"`
	ExpiresEpoch int64     `dynamodbav:"expires_epoch"`
}

// SessionRepository persists sessions in the sessions table, keyed by token
// with a user_id GSI backing DeleteByUser.
type SessionRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewSessionRepository(client *dynamodb.Client, tableName string) *SessionRepository {
	return &SessionRepository{client: client, tableName: tableName}
}

func (r *SessionRepository) Put(ctx context.Context, s domain.Session) error {
	item, err := attributevalue.MarshalMap(sessionItem{
		SessionID:    s.ID,
		Token:        s.Token,
		UserID:       s.UserID,
		CreatedAt:    s.CreatedAt,
		ExpiresAt:    s.ExpiresAt,
		ExpiresEpoch: s.ExpiresAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", s.ID, err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put session %s: %w", s.ID, err)
	}
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (domain.Session, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("token", token),
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	if out.Item == nil {
		return domain.Session{}, domain.ErrNotFound
	}
	var item sessionItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return domain.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return domain.Session{
		ID:        item.SessionID,
		Token:     item.Token,
		UserID:    item.UserID,
		CreatedAt: item.CreatedAt,
		ExpiresAt: item.ExpiresAt,
	}, nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("token", token),
	}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteByUser(ctx context.Context, userID domain.UserID) error {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-index"),
		KeyConditionExpression:    aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": &types.AttributeValueMemberS{Value: userID.String()}},
	})
	if err != nil {
		return fmt.Errorf("query user sessions: %w", err)
	}
	for _, item := range out.Items {
		token, ok := item["token"].(*types.AttributeValueMemberS)
		if !ok {
			continue
		}
		if err := r.DeleteByToken(ctx, token.Value); err != nil {
			return err
		}
	}
	return nil
}
