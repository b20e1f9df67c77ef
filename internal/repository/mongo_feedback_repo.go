package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reviewdesk/internal/model"
)

type feedbackDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Rating            int                `bson:"rating"`
	Review            string             `bson:"review"`
	AIResponse        string             `bson:"aiResponse"`
	Summary           string             `bson:"summary"`
	RecommendedAction string             `bson:"recommendedAction"`
	Category          string             `bson:"category,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
}

type mongoFeedbackRepo struct {
	collection *mongo.Collection
}

// NewMongoFeedbackRepo creates a MongoDB-backed feedback store
func NewMongoFeedbackRepo(db *mongo.Database) FeedbackRepo {
	return &mongoFeedbackRepo{
		collection: db.Collection("feedback"),
	}
}

func (r *mongoFeedbackRepo) Append(ctx context.Context, record *model.FeedbackRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	doc := feedbackDoc{
		Rating:            record.Rating,
		Review:            record.ReviewText,
		AIResponse:        record.UserReply,
		Summary:           record.Summary,
		RecommendedAction: record.RecommendedAction,
		Category:          record.Category,
		CreatedAt:         record.CreatedAt,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid.Hex()
	}
	return nil
}

func (r *mongoFeedbackRepo) ListAll(ctx context.Context) ([]model.FeedbackRecord, error) {
	// ObjectIDs grow with insertion, so _id breaks createdAt ties
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []feedbackDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]model.FeedbackRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, model.FeedbackRecord{
			ID:                d.ID.Hex(),
			Rating:            d.Rating,
			ReviewText:        d.Review,
			UserReply:         d.AIResponse,
			Summary:           d.Summary,
			RecommendedAction: d.RecommendedAction,
			Category:          d.Category,
			CreatedAt:         d.CreatedAt,
		})
	}
	return records, nil
}
