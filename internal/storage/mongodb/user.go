package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/VitaminP8/socialgraph/internal/user"
	"github.com/VitaminP8/socialgraph/models"
)

type UserMongoStorage struct {
	coll *mongo.Collection
}

func NewUserMongoStorage(coll *mongo.Collection) *UserMongoStorage {
	return &UserMongoStorage{coll: coll}
}

func normalizeUser(u *models.User) *models.User {
	u.Posts = nonNil(u.Posts)
	u.Comments = nonNil(u.Comments)
	u.LikedPosts = nonNil(u.LikedPosts)
	return u
}

func (s *UserMongoStorage) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, byID(id)).Decode(&u)
	if err != nil {
		return nil, fmt.Errorf("could not get user %s: %w", id.Hex(), translateError(err))
	}
	return normalizeUser(&u), nil
}

func (s *UserMongoStorage) GetUsers(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	return s.find(ctx, byIDs(ids))
}

func (s *UserMongoStorage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		return nil, fmt.Errorf("could not find user by email: %w", translateError(err))
	}
	return normalizeUser(&u), nil
}

func (s *UserMongoStorage) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.find(ctx, bson.M{})
}

func (s *UserMongoStorage) find(ctx context.Context, filter bson.M) ([]*models.User, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("could not get users: %w", err)
	}

	users := []*models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("could not decode users: %w", err)
	}
	for _, u := range users {
		normalizeUser(u)
	}
	return users, nil
}

func (s *UserMongoStorage) InsertUser(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	doc := normalizeUser(u.Clone())
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	_, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("could not create user: %w", translateError(err))
	}
	return doc.ID, nil
}

func (s *UserMongoStorage) UpdateUser(ctx context.Context, id primitive.ObjectID, upd user.Update) (bool, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.Posts != nil {
		set["posts"] = upd.Posts
	}
	if upd.Comments != nil {
		set["comments"] = upd.Comments
	}
	if upd.LikedPosts != nil {
		set["likedPosts"] = upd.LikedPosts
	}

	if len(set) == 0 {
		return existence(ctx, s.coll, id)
	}

	res, err := s.coll.UpdateOne(ctx, byID(id), bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("could not update user: %w", translateError(err))
	}
	return res.MatchedCount > 0, nil
}

func (s *UserMongoStorage) DeleteUser(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return false, fmt.Errorf("could not delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *UserMongoStorage) PullComment(ctx context.Context, id, commentID primitive.ObjectID) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, byID(id), bson.M{"$pull": bson.M{"comments": commentID}})
	if err != nil {
		return false, fmt.Errorf("could not pull comment from user: %w", err)
	}
	return res.MatchedCount > 0, nil
}
