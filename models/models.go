package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/apperror"
)

// Связи между сущностями хранятся как списки идентификаторов (денормализованно), а не как join'ы
type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name       string               `bson:"name" json:"name"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"` // хэш, открытый пароль не хранится
	Posts      []primitive.ObjectID `bson:"posts" json:"posts"`
	Comments   []primitive.ObjectID `bson:"comments" json:"comments"`
	LikedPosts []primitive.ObjectID `bson:"likedPosts" json:"likedPosts"`
}

type Post struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Content  string               `bson:"content" json:"content"`
	Author   primitive.ObjectID   `bson:"author" json:"author"`
	Comments []primitive.ObjectID `bson:"comments" json:"comments"`
	Likes    []primitive.ObjectID `bson:"likes" json:"likes"`
}

type Comment struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text   string             `bson:"text" json:"text"`
	Author primitive.ObjectID `bson:"author" json:"author"`
	Post   primitive.ObjectID `bson:"post" json:"post"`
}

// ParseID проверяет формат идентификатора (24 hex-символа) до любого обращения к хранилищу
func ParseID(entity, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.InvalidID(entity, id)
	}
	return oid, nil
}

// ParseIDs разбирает список идентификаторов; nil на входе дает пустой (не nil) список
func ParseIDs(entity string, ids []string) ([]primitive.ObjectID, error) {
	result := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := ParseID(entity, id)
		if err != nil {
			return nil, err
		}
		result = append(result, oid)
	}
	return result, nil
}

// Clone возвращает копию, не разделяющую списки с оригиналом
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Posts = cloneIDs(u.Posts)
	c.Comments = cloneIDs(u.Comments)
	c.LikedPosts = cloneIDs(u.LikedPosts)
	return &c
}

func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Comments = cloneIDs(p.Comments)
	c.Likes = cloneIDs(p.Likes)
	return &c
}

func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func cloneIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(ids))
	copy(out, ids)
	return out
}

// ContainsID - проверка членства для списков-множеств (likes)
func ContainsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// UniqueIDs убирает повторы, сохраняя порядок первых вхождений
func UniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// WithoutID возвращает новый список без id
func WithoutID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
