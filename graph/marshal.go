package graph

import (
	"fmt"
	"io"

	"github.com/99designs/gqlgen/graphql"

	"github.com/VitaminP8/socialgraph/models"
)

type objectField struct {
	key   string
	value graphql.Marshaler
}

// orderedObject пишет поля в порядке выборки
type orderedObject []objectField

func (o orderedObject) MarshalGQL(w io.Writer) {
	io.WriteString(w, "{")
	for i, f := range o {
		if i > 0 {
			io.WriteString(w, ",")
		}
		graphql.MarshalString(f.key).MarshalGQL(w)
		io.WriteString(w, ":")
		f.value.MarshalGQL(w)
	}
	io.WriteString(w, "}")
}

type orderedList []graphql.Marshaler

func (l orderedList) MarshalGQL(w io.Writer) {
	io.WriteString(w, "[")
	for i, v := range l {
		if i > 0 {
			io.WriteString(w, ",")
		}
		v.MarshalGQL(w)
	}
	io.WriteString(w, "]")
}

func marshalScalar(name string, value interface{}) (graphql.Marshaler, error) {
	switch name {
	case "ID":
		if s, ok := value.(string); ok {
			return graphql.MarshalID(s), nil
		}
	case "String":
		if s, ok := value.(string); ok {
			return graphql.MarshalString(s), nil
		}
	case "Boolean":
		if b, ok := value.(bool); ok {
			return graphql.MarshalBoolean(b), nil
		}
	case "Int":
		if n, ok := value.(int); ok {
			return graphql.MarshalInt(n), nil
		}
	}
	return nil, fmt.Errorf("cannot marshal %T as %s", value, name)
}

// isNil: типизированный nil-указатель в interface{} тоже считается null
func isNil(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return true
	case *models.User:
		return v == nil
	case *models.Post:
		return v == nil
	case *models.Comment:
		return v == nil
	}
	// nil-срез - пустой список, а не null
	return false
}

func listItems(v interface{}) ([]interface{}, bool) {
	var out []interface{}
	switch v := v.(type) {
	case []*models.User:
		out = make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i]
		}
	case []*models.Post:
		out = make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i]
		}
	case []*models.Comment:
		out = make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i]
		}
	case []interface{}:
		out = v
	default:
		return nil, false
	}
	return out, true
}
