package postgres

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/models"
)

// idList хранит список ObjectID как JSON-массив hex-строк
type idList []primitive.ObjectID

func (l idList) Value() (driver.Value, error) {
	hexes := make([]string, 0, len(l))
	for _, id := range l {
		hexes = append(hexes, id.Hex())
	}
	b, err := json.Marshal(hexes)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *idList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = idList{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported id list type %T", src)
	}

	var hexes []string
	if err := json.Unmarshal(data, &hexes); err != nil {
		return fmt.Errorf("could not decode id list: %w", err)
	}

	ids := make(idList, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return fmt.Errorf("could not decode id %q: %w", h, err)
		}
		ids = append(ids, id)
	}
	*l = ids
	return nil
}

type userRow struct {
	ID         string `gorm:"primary_key;type:varchar(24)"`
	Name       string
	Email      string `gorm:"unique_index"`
	Password   string
	Posts      idList `gorm:"type:text"`
	Comments   idList `gorm:"type:text"`
	LikedPosts idList `gorm:"type:text"`
}

func (userRow) TableName() string { return "users" }

type postRow struct {
	ID       string `gorm:"primary_key;type:varchar(24)"`
	Content  string `gorm:"type:text;unique_index"`
	Author   string `gorm:"type:varchar(24)"`
	Comments idList `gorm:"type:text"`
	Likes    idList `gorm:"type:text"`
}

func (postRow) TableName() string { return "posts" }

type commentRow struct {
	ID     string `gorm:"primary_key;type:varchar(24)"`
	Text   string `gorm:"type:text"`
	Author string `gorm:"type:varchar(24)"`
	Post   string `gorm:"type:varchar(24)"`
}

func (commentRow) TableName() string { return "comments" }

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

// parseRef разбирает ссылку из строки; пустая или битая ссылка дает NilObjectID (висячая ссылка)
func parseRef(s string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

func refHex(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

func nonNil(l []primitive.ObjectID) idList {
	if l == nil {
		return idList{}
	}
	return idList(l)
}

func (r *userRow) toModel() *models.User {
	return &models.User{
		ID:         parseRef(r.ID),
		Name:       r.Name,
		Email:      r.Email,
		Password:   r.Password,
		Posts:      nonNil(r.Posts),
		Comments:   nonNil(r.Comments),
		LikedPosts: nonNil(r.LikedPosts),
	}
}

func userRowFromModel(u *models.User) *userRow {
	return &userRow{
		ID:         u.ID.Hex(),
		Name:       u.Name,
		Email:      u.Email,
		Password:   u.Password,
		Posts:      nonNil(u.Posts),
		Comments:   nonNil(u.Comments),
		LikedPosts: nonNil(u.LikedPosts),
	}
}

func (r *postRow) toModel() *models.Post {
	return &models.Post{
		ID:       parseRef(r.ID),
		Content:  r.Content,
		Author:   parseRef(r.Author),
		Comments: nonNil(r.Comments),
		Likes:    nonNil(r.Likes),
	}
}

func postRowFromModel(p *models.Post) *postRow {
	return &postRow{
		ID:       p.ID.Hex(),
		Content:  p.Content,
		Author:   refHex(p.Author),
		Comments: nonNil(p.Comments),
		Likes:    nonNil(p.Likes),
	}
}

func (r *commentRow) toModel() *models.Comment {
	return &models.Comment{
		ID:     parseRef(r.ID),
		Text:   r.Text,
		Author: parseRef(r.Author),
		Post:   parseRef(r.Post),
	}
}

func commentRowFromModel(c *models.Comment) *commentRow {
	return &commentRow{
		ID:     c.ID.Hex(),
		Text:   c.Text,
		Author: refHex(c.Author),
		Post:   refHex(c.Post),
	}
}
