package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/ushadow-io/feed-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostQuery describes one filtered feed page request.
type PostQuery struct {
	Platform models.PlatformType
	Interest string // empty means no interest filter
	ShowSeen bool   // false restricts the page to unseen posts
	Skip     int64
	Limit    int64
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	FindPage(ctx context.Context, q PostQuery) ([]models.Post, int64, error)
	GetByPostID(ctx context.Context, postID string) (*models.Post, error)
	MarkSeen(ctx context.Context, postID string) error
	SetBookmarked(ctx context.Context, postID string, bookmarked bool) error
	UpsertByExternalID(ctx context.Context, post *models.Post) (bool, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

func (q PostQuery) filter() bson.M {
	filter := bson.M{"platform_type": q.Platform}
	if !q.ShowSeen {
		filter["seen"] = false
	}
	if q.Interest != "" {
		filter["interest_tags"] = q.Interest
	}
	return filter
}

// FindPage retrieves one page of posts matching the query plus the total
// count of matches. Posts are sorted by timestamp descending; this ordering
// is authoritative, consumers never re-sort a page.
func (r *MongoPostRepository) FindPage(ctx context.Context, q PostQuery) ([]models.Post, int64, error) {
	filter := q.filter()

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip(q.Skip).
		SetLimit(q.Limit).
		SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByPostID retrieves a single post by its public post ID
func (r *MongoPostRepository) GetByPostID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"post_id": postID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post not found")
		}
		return nil, err
	}
	return &post, nil
}

// MarkSeen flags a post as seen
func (r *MongoPostRepository) MarkSeen(ctx context.Context, postID string) error {
	update := bson.M{"$set": bson.M{"seen": true, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"post_id": postID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post not found")
	}
	return nil
}

// SetBookmarked sets a post's bookmark flag. The operation is idempotent so a
// replayed request cannot double-flip the flag.
func (r *MongoPostRepository) SetBookmarked(ctx context.Context, postID string, bookmarked bool) error {
	update := bson.M{"$set": bson.M{"bookmarked": bookmarked, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"post_id": postID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post not found")
	}
	return nil
}

// UpsertByExternalID inserts the post unless a post with the same platform
// and external ID already exists. Existing documents keep their seen and
// bookmarked flags. Returns true when the post was newly inserted.
func (r *MongoPostRepository) UpsertByExternalID(ctx context.Context, post *models.Post) (bool, error) {
	now := time.Now()
	filter := bson.M{
		"platform_type": post.PlatformType,
		"external_id":   post.ExternalID,
	}
	update := bson.M{
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"post_id":       post.PostID,
			"external_id":   post.ExternalID,
			"source_id":     post.SourceID,
			"platform_type": post.PlatformType,
			"author":        post.Author,
			"title":         post.Title,
			"content":       post.Content,
			"url":           post.URL,
			"thumbnail_url": post.ThumbnailURL,
			"timestamp":     post.Timestamp,
			"seen":          false,
			"bookmarked":    false,
			"interest_tags": post.InterestTags,
			"created_at":    now,
		},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}
