package graph

import (
	"context"

	"github.com/VitaminP8/socialgraph/internal/mutation"
	"github.com/VitaminP8/socialgraph/models"
)

// Users is the resolver for the users field.
func (r *queryResolver) Users(ctx context.Context) ([]*models.User, error) {
	return r.Queries.ListUsers(ctx)
}

// User is the resolver for the user field.
func (r *queryResolver) User(ctx context.Context, id string) (*models.User, error) {
	return r.Queries.GetUser(ctx, id)
}

// Posts is the resolver for the posts field.
func (r *queryResolver) Posts(ctx context.Context) ([]*models.Post, error) {
	return r.Queries.ListPosts(ctx)
}

// Post is the resolver for the post field.
func (r *queryResolver) Post(ctx context.Context, id string) (*models.Post, error) {
	return r.Queries.GetPost(ctx, id)
}

// Comments is the resolver for the comments field.
func (r *queryResolver) Comments(ctx context.Context) ([]*models.Comment, error) {
	return r.Queries.ListComments(ctx)
}

// Comment is the resolver for the comment field.
func (r *queryResolver) Comment(ctx context.Context, id string) (*models.Comment, error) {
	return r.Queries.GetComment(ctx, id)
}

// CreateUser is the resolver for the createUser field.
func (r *mutationResolver) CreateUser(ctx context.Context, input mutation.CreateUserInput) (*models.User, error) {
	return r.Mutations.CreateUser(ctx, input)
}

// UpdateUser is the resolver for the updateUser field.
func (r *mutationResolver) UpdateUser(ctx context.Context, id string, input mutation.UpdateUserInput) (*models.User, error) {
	return r.Mutations.UpdateUser(ctx, id, input)
}

// DeleteUser is the resolver for the deleteUser field.
func (r *mutationResolver) DeleteUser(ctx context.Context, id string) (bool, error) {
	return r.Mutations.DeleteUser(ctx, id)
}

// CreatePost is the resolver for the createPost field.
func (r *mutationResolver) CreatePost(ctx context.Context, input mutation.CreatePostInput) (*models.Post, error) {
	return r.Mutations.CreatePost(ctx, input)
}

// UpdatePost is the resolver for the updatePost field.
func (r *mutationResolver) UpdatePost(ctx context.Context, id string, input mutation.UpdatePostInput) (*models.Post, error) {
	return r.Mutations.UpdatePost(ctx, id, input)
}

// DeletePost is the resolver for the deletePost field.
func (r *mutationResolver) DeletePost(ctx context.Context, id string) (bool, error) {
	return r.Mutations.DeletePost(ctx, id)
}

// AddLikeToPost is the resolver for the addLikeToPost field.
func (r *mutationResolver) AddLikeToPost(ctx context.Context, postID string, userID string) (*models.Post, error) {
	return r.Mutations.AddLikeToPost(ctx, postID, userID)
}

// RemoveLikeFromPost is the resolver for the removeLikeFromPost field.
func (r *mutationResolver) RemoveLikeFromPost(ctx context.Context, postID string, userID string) (*models.Post, error) {
	return r.Mutations.RemoveLikeFromPost(ctx, postID, userID)
}

// CreateComment is the resolver for the createComment field.
func (r *mutationResolver) CreateComment(ctx context.Context, input mutation.CreateCommentInput) (*models.Comment, error) {
	return r.Mutations.CreateComment(ctx, input)
}

// UpdateComment is the resolver for the updateComment field.
func (r *mutationResolver) UpdateComment(ctx context.Context, id string, input mutation.UpdateCommentInput) (*models.Comment, error) {
	return r.Mutations.UpdateComment(ctx, id, input)
}

// DeleteComment is the resolver for the deleteComment field.
func (r *mutationResolver) DeleteComment(ctx context.Context, id string) (bool, error) {
	return r.Mutations.DeleteComment(ctx, id)
}

// Posts is the resolver for the posts field.
func (r *userResolver) Posts(ctx context.Context, obj *models.User) ([]*models.Post, error) {
	return r.References.Users().Posts(ctx, obj)
}

// Comments is the resolver for the comments field.
func (r *userResolver) Comments(ctx context.Context, obj *models.User) ([]*models.Comment, error) {
	return r.References.Users().Comments(ctx, obj)
}

// LikedPosts is the resolver for the likedPosts field.
func (r *userResolver) LikedPosts(ctx context.Context, obj *models.User) ([]*models.Post, error) {
	return r.References.Users().LikedPosts(ctx, obj)
}

// Author is the resolver for the author field.
func (r *postResolver) Author(ctx context.Context, obj *models.Post) (*models.User, error) {
	return r.References.Posts().Author(ctx, obj)
}

// Comments is the resolver for the comments field.
func (r *postResolver) Comments(ctx context.Context, obj *models.Post) ([]*models.Comment, error) {
	return r.References.Posts().Comments(ctx, obj)
}

// Likes is the resolver for the likes field.
func (r *postResolver) Likes(ctx context.Context, obj *models.Post) ([]*models.User, error) {
	return r.References.Posts().Likes(ctx, obj)
}

// Author is the resolver for the author field.
func (r *commentResolver) Author(ctx context.Context, obj *models.Comment) (*models.User, error) {
	return r.References.Comments().Author(ctx, obj)
}

// Post is the resolver for the post field.
func (r *commentResolver) Post(ctx context.Context, obj *models.Comment) (*models.Post, error) {
	return r.References.Comments().Post(ctx, obj)
}

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

// User returns UserResolver implementation.
func (r *Resolver) User() UserResolver { return &userResolver{r} }

// Post returns PostResolver implementation.
func (r *Resolver) Post() PostResolver { return &postResolver{r} }

// Comment returns CommentResolver implementation.
func (r *Resolver) Comment() CommentResolver { return &commentResolver{r} }

type queryResolver struct{ *Resolver }
type mutationResolver struct{ *Resolver }
type userResolver struct{ *Resolver }
type postResolver struct{ *Resolver }
type commentResolver struct{ *Resolver }
