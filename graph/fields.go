package graph

import (
	"context"
	"fmt"

	"github.com/99designs/gqlgen/graphql"

	"github.com/VitaminP8/socialgraph/models"
)

// resolve вызывает резолвер поля typeName.f для родительского объекта obj
func (ex *execution) resolve(ctx context.Context, typeName string, f graphql.CollectedField, obj interface{}) (interface{}, error) {
	args := f.ArgumentMap(ex.op.Variables)

	switch typeName {
	case "Query":
		return ex.resolveQuery(ctx, f.Name, args)
	case "Mutation":
		return ex.resolveMutation(ctx, f.Name, args)
	case "User":
		return ex.resolveUser(ctx, f.Name, obj.(*models.User))
	case "Post":
		return ex.resolvePost(ctx, f.Name, obj.(*models.Post))
	case "Comment":
		return ex.resolveComment(ctx, f.Name, obj.(*models.Comment))
	}
	return nil, fmt.Errorf("unknown type %s", typeName)
}

func (ex *execution) resolveQuery(ctx context.Context, field string, args map[string]interface{}) (interface{}, error) {
	r := ex.root.Query()
	switch field {
	case "users":
		return r.Users(ctx)
	case "posts":
		return r.Posts(ctx)
	case "comments":
		return r.Comments(ctx)
	}

	id, err := argID(args, "id")
	if err != nil {
		return nil, err
	}
	switch field {
	case "user":
		return r.User(ctx, id)
	case "post":
		return r.Post(ctx, id)
	case "comment":
		return r.Comment(ctx, id)
	}
	return nil, fmt.Errorf("unknown field Query.%s", field)
}

func (ex *execution) resolveMutation(ctx context.Context, field string, args map[string]interface{}) (interface{}, error) {
	r := ex.root.Mutation()
	switch field {
	case "createUser":
		in, err := unmarshalCreateUserInput(args["input"])
		if err != nil {
			return nil, err
		}
		return r.CreateUser(ctx, in)
	case "createPost":
		in, err := unmarshalCreatePostInput(args["input"])
		if err != nil {
			return nil, err
		}
		return r.CreatePost(ctx, in)
	case "createComment":
		in, err := unmarshalCreateCommentInput(args["input"])
		if err != nil {
			return nil, err
		}
		return r.CreateComment(ctx, in)
	case "addLikeToPost", "removeLikeFromPost":
		postID, err := argID(args, "postId")
		if err != nil {
			return nil, err
		}
		userID, err := argID(args, "userId")
		if err != nil {
			return nil, err
		}
		if field == "addLikeToPost" {
			return r.AddLikeToPost(ctx, postID, userID)
		}
		return r.RemoveLikeFromPost(ctx, postID, userID)
	}

	// остальные мутации принимают id
	id, err := argID(args, "id")
	if err != nil {
		return nil, err
	}
	switch field {
	case "updateUser":
		in, err := unmarshalUpdateUserInput(args["input"])
		if err != nil {
			return nil, err
		}
		return r.UpdateUser(ctx, id, in)
	case "deleteUser":
		return r.DeleteUser(ctx, id)
	case "updatePost":
		in, err := unmarshalUpdatePostInput(args["input"])
		if err != nil {
			return nil, err
		}
		return r.UpdatePost(ctx, id, in)
	case "deletePost":
		return r.DeletePost(ctx, id)
	case "updateComment":
		in, err := unmarshalUpdateCommentInput(args["input"])
		if err != nil {
			return nil, err
		}
		return r.UpdateComment(ctx, id, in)
	case "deleteComment":
		return r.DeleteComment(ctx, id)
	}
	return nil, fmt.Errorf("unknown field Mutation.%s", field)
}

func (ex *execution) resolveUser(ctx context.Context, field string, obj *models.User) (interface{}, error) {
	switch field {
	case "id":
		return obj.ID.Hex(), nil
	case "name":
		return obj.Name, nil
	case "email":
		return obj.Email, nil
	case "posts":
		return ex.root.User().Posts(ctx, obj)
	case "comments":
		return ex.root.User().Comments(ctx, obj)
	case "likedPosts":
		return ex.root.User().LikedPosts(ctx, obj)
	}
	return nil, fmt.Errorf("unknown field User.%s", field)
}

func (ex *execution) resolvePost(ctx context.Context, field string, obj *models.Post) (interface{}, error) {
	switch field {
	case "id":
		return obj.ID.Hex(), nil
	case "content":
		return obj.Content, nil
	case "author":
		return ex.root.Post().Author(ctx, obj)
	case "comments":
		return ex.root.Post().Comments(ctx, obj)
	case "likes":
		return ex.root.Post().Likes(ctx, obj)
	}
	return nil, fmt.Errorf("unknown field Post.%s", field)
}

func (ex *execution) resolveComment(ctx context.Context, field string, obj *models.Comment) (interface{}, error) {
	switch field {
	case "id":
		return obj.ID.Hex(), nil
	case "text":
		return obj.Text, nil
	case "author":
		return ex.root.Comment().Author(ctx, obj)
	case "post":
		return ex.root.Comment().Post(ctx, obj)
	}
	return nil, fmt.Errorf("unknown field Comment.%s", field)
}
