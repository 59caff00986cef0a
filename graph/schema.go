package graph

import (
	_ "embed"
	"sync"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphqls
var schemaSource string

var (
	schemaOnce   sync.Once
	parsedSchema *ast.Schema
)

// Schema возвращает разобранную схему (разбирается один раз)
func Schema() *ast.Schema {
	schemaOnce.Do(func() {
		parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSource, BuiltIn: false})
	})
	return parsedSchema
}
