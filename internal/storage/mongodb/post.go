package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/VitaminP8/socialgraph/internal/post"
	"github.com/VitaminP8/socialgraph/models"
)

type PostMongoStorage struct {
	coll *mongo.Collection
}

func NewPostMongoStorage(coll *mongo.Collection) *PostMongoStorage {
	return &PostMongoStorage{coll: coll}
}

func normalizePost(p *models.Post) *models.Post {
	p.Comments = nonNil(p.Comments)
	p.Likes = nonNil(p.Likes)
	return p
}

func (s *PostMongoStorage) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	err := s.coll.FindOne(ctx, byID(id)).Decode(&p)
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", translateError(err))
	}
	return normalizePost(&p), nil
}

func (s *PostMongoStorage) GetPosts(ctx context.Context, ids []primitive.ObjectID) ([]*models.Post, error) {
	if len(ids) == 0 {
		return []*models.Post{}, nil
	}
	return s.find(ctx, byIDs(ids))
}

func (s *PostMongoStorage) FindPostByContent(ctx context.Context, content string) (*models.Post, error) {
	var p models.Post
	err := s.coll.FindOne(ctx, bson.M{"content": content}).Decode(&p)
	if err != nil {
		return nil, fmt.Errorf("could not find post by content: %w", translateError(err))
	}
	return normalizePost(&p), nil
}

func (s *PostMongoStorage) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.find(ctx, bson.M{})
}

func (s *PostMongoStorage) find(ctx context.Context, filter bson.M) ([]*models.Post, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	posts := []*models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("could not decode posts: %w", err)
	}
	for _, p := range posts {
		normalizePost(p)
	}
	return posts, nil
}

func (s *PostMongoStorage) InsertPost(ctx context.Context, p *models.Post) (primitive.ObjectID, error) {
	doc := normalizePost(p.Clone())
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	_, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("could not create post: %w", translateError(err))
	}
	return doc.ID, nil
}

func (s *PostMongoStorage) UpdatePost(ctx context.Context, id primitive.ObjectID, upd post.Update) (bool, error) {
	set := bson.M{}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}
	if upd.Comments != nil {
		set["comments"] = upd.Comments
	}
	if upd.Likes != nil {
		set["likes"] = upd.Likes
	}

	if len(set) == 0 {
		return existence(ctx, s.coll, id)
	}

	res, err := s.coll.UpdateOne(ctx, byID(id), bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("could not update post: %w", translateError(err))
	}
	return res.MatchedCount > 0, nil
}

func (s *PostMongoStorage) DeletePost(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return false, fmt.Errorf("could not delete post: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *PostMongoStorage) DeletePosts(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res, err := s.coll.DeleteMany(ctx, byIDs(ids))
	if err != nil {
		return 0, fmt.Errorf("could not delete posts: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *PostMongoStorage) AddLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, byID(id), bson.M{"$addToSet": bson.M{"likes": userID}})
	if err != nil {
		return false, fmt.Errorf("could not add like: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *PostMongoStorage) RemoveLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, byID(id), bson.M{"$pull": bson.M{"likes": userID}})
	if err != nil {
		return false, fmt.Errorf("could not remove like: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *PostMongoStorage) PullComment(ctx context.Context, id, commentID primitive.ObjectID) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, byID(id), bson.M{"$pull": bson.M{"comments": commentID}})
	if err != nil {
		return false, fmt.Errorf("could not pull comment from post: %w", err)
	}
	return res.MatchedCount > 0, nil
}
