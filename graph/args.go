package graph

import (
	"fmt"

	"github.com/99designs/gqlgen/graphql"

	"github.com/VitaminP8/socialgraph/internal/mutation"
)

func argID(args map[string]interface{}, name string) (string, error) {
	id, err := graphql.UnmarshalID(args[name])
	if err != nil {
		return "", fmt.Errorf("argument %s: %w", name, err)
	}
	return id, nil
}

func inputObject(v interface{}) (map[string]interface{}, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("input must be an object, got %T", v)
	}
	return m, nil
}

func fieldString(m map[string]interface{}, name string) (string, error) {
	s, err := graphql.UnmarshalString(m[name])
	if err != nil {
		return "", fmt.Errorf("input.%s: %w", name, err)
	}
	return s, nil
}

func fieldID(m map[string]interface{}, name string) (string, error) {
	s, err := graphql.UnmarshalID(m[name])
	if err != nil {
		return "", fmt.Errorf("input.%s: %w", name, err)
	}
	return s, nil
}

// optionalString: отсутствующее поле и явный null дают nil
func optionalString(m map[string]interface{}, name string, unmarshal func(interface{}) (string, error)) (*string, error) {
	v, ok := m[name]
	if !ok || v == nil {
		return nil, nil
	}
	s, err := unmarshal(v)
	if err != nil {
		return nil, fmt.Errorf("input.%s: %w", name, err)
	}
	return &s, nil
}

// idList: nil - поле не передано (или null), пустой срез - передан []
func idList(m map[string]interface{}, name string) ([]string, error) {
	v, ok := m[name]
	if !ok || v == nil {
		return nil, nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		// одиночное значение приводится к списку из одного элемента
		raw = []interface{}{v}
	}
	ids := make([]string, 0, len(raw))
	for i, item := range raw {
		id, err := graphql.UnmarshalID(item)
		if err != nil {
			return nil, fmt.Errorf("input.%s[%d]: %w", name, i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func unmarshalCreateUserInput(v interface{}) (in mutation.CreateUserInput, err error) {
	m, err := inputObject(v)
	if err != nil {
		return in, err
	}
	if in.Name, err = fieldString(m, "name"); err != nil {
		return in, err
	}
	if in.Email, err = fieldString(m, "email"); err != nil {
		return in, err
	}
	if in.Password, err = fieldString(m, "password"); err != nil {
		return in, err
	}
	if in.Posts, err = idList(m, "posts"); err != nil {
		return in, err
	}
	if in.Comments, err = idList(m, "comments"); err != nil {
		return in, err
	}
	in.LikedPosts, err = idList(m, "likedPosts")
	return in, err
}

func unmarshalUpdateUserInput(v interface{}) (in mutation.UpdateUserInput, err error) {
	m, err := inputObject(v)
	if err != nil {
		return in, err
	}
	if in.Name, err = optionalString(m, "name", graphql.UnmarshalString); err != nil {
		return in, err
	}
	if in.Email, err = optionalString(m, "email", graphql.UnmarshalString); err != nil {
		return in, err
	}
	if in.Password, err = optionalString(m, "password", graphql.UnmarshalString); err != nil {
		return in, err
	}
	if in.Posts, err = idList(m, "posts"); err != nil {
		return in, err
	}
	if in.Comments, err = idList(m, "comments"); err != nil {
		return in, err
	}
	in.LikedPosts, err = idList(m, "likedPosts")
	return in, err
}

func unmarshalCreatePostInput(v interface{}) (in mutation.CreatePostInput, err error) {
	m, err := inputObject(v)
	if err != nil {
		return in, err
	}
	if in.Content, err = fieldString(m, "content"); err != nil {
		return in, err
	}
	if in.Author, err = fieldID(m, "author"); err != nil {
		return in, err
	}
	if in.Comments, err = idList(m, "comments"); err != nil {
		return in, err
	}
	in.Likes, err = idList(m, "likes")
	return in, err
}

func unmarshalUpdatePostInput(v interface{}) (in mutation.UpdatePostInput, err error) {
	m, err := inputObject(v)
	if err != nil {
		return in, err
	}
	if in.Content, err = fieldString(m, "content"); err != nil {
		return in, err
	}
	if in.Author, err = optionalString(m, "author", graphql.UnmarshalID); err != nil {
		return in, err
	}
	if in.Comments, err = idList(m, "comments"); err != nil {
		return in, err
	}
	in.Likes, err = idList(m, "likes")
	return in, err
}

func unmarshalCreateCommentInput(v interface{}) (in mutation.CreateCommentInput, err error) {
	m, err := inputObject(v)
	if err != nil {
		return in, err
	}
	if in.Text, err = fieldString(m, "text"); err != nil {
		return in, err
	}
	if in.Author, err = fieldID(m, "author"); err != nil {
		return in, err
	}
	in.Post, err = fieldID(m, "post")
	return in, err
}

func unmarshalUpdateCommentInput(v interface{}) (in mutation.UpdateCommentInput, err error) {
	m, err := inputObject(v)
	if err != nil {
		return in, err
	}
	if in.Text, err = optionalString(m, "text", graphql.UnmarshalString); err != nil {
		return in, err
	}
	if in.Author, err = optionalString(m, "author", graphql.UnmarshalID); err != nil {
		return in, err
	}
	in.Post, err = optionalString(m, "post", graphql.UnmarshalID)
	return in, err
}
