package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/VitaminP8/socialgraph/internal/comment"
	"github.com/VitaminP8/socialgraph/models"
)

type CommentMongoStorage struct {
	coll *mongo.Collection
}

func NewCommentMongoStorage(coll *mongo.Collection) *CommentMongoStorage {
	return &CommentMongoStorage{coll: coll}
}

func (s *CommentMongoStorage) GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var c models.Comment
	err := s.coll.FindOne(ctx, byID(id)).Decode(&c)
	if err != nil {
		return nil, fmt.Errorf("could not get comment: %w", translateError(err))
	}
	return &c, nil
}

func (s *CommentMongoStorage) GetComments(ctx context.Context, ids []primitive.ObjectID) ([]*models.Comment, error) {
	if len(ids) == 0 {
		return []*models.Comment{}, nil
	}
	return s.find(ctx, byIDs(ids))
}

func (s *CommentMongoStorage) ListComments(ctx context.Context) ([]*models.Comment, error) {
	return s.find(ctx, bson.M{})
}

func (s *CommentMongoStorage) find(ctx context.Context, filter bson.M) ([]*models.Comment, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	comments := []*models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("could not decode comments: %w", err)
	}
	return comments, nil
}

func (s *CommentMongoStorage) InsertComment(ctx context.Context, c *models.Comment) (primitive.ObjectID, error) {
	doc := c.Clone()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	_, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("could not create comment: %w", translateError(err))
	}
	return doc.ID, nil
}

func (s *CommentMongoStorage) UpdateComment(ctx context.Context, id primitive.ObjectID, upd comment.Update) (bool, error) {
	set := bson.M{}
	if upd.Text != nil {
		set["text"] = *upd.Text
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}
	if upd.Post != nil {
		set["post"] = *upd.Post
	}

	if len(set) == 0 {
		return existence(ctx, s.coll, id)
	}

	res, err := s.coll.UpdateOne(ctx, byID(id), bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("could not update comment: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *CommentMongoStorage) DeleteComment(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return false, fmt.Errorf("could not delete comment: %w", err)
	}
	return res.DeletedCount > 0, nil
}
