package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"sync"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"golang.org/x/sync/errgroup"

	"github.com/VitaminP8/socialgraph/internal/reqctx"
)

const defaultConcurrency = 16

var _ graphql.ExecutableSchema = (*Executor)(nil)

// Executor выполняет операции над схемой, вызывая резолверы.
// Поля одного объекта разрешаются параллельно, корневые поля мутации - последовательно.
type Executor struct {
	schema      *ast.Schema
	root        ResolverRoot
	logger      *slog.Logger
	concurrency int
}

func NewExecutor(root ResolverRoot, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		schema:      Schema(),
		root:        root,
		logger:      logger,
		concurrency: defaultConcurrency,
	}
}

// SetConcurrency ограничивает число одновременно разрешаемых полей одного объекта
func (e *Executor) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	e.concurrency = n
}

// Schema, Complexity и Exec делают Executor исполняемой схемой для gqlgen handler:
// разбор, валидация и переменные остаются на стороне gqlgen.

func (e *Executor) Schema() *ast.Schema {
	return e.schema
}

// Complexity: каждое поле стоит 1 плюс стоимость вложенной выборки
func (e *Executor) Complexity(_ context.Context, _, _ string, childComplexity int, _ map[string]any) (int, bool) {
	return childComplexity + 1, true
}

func (e *Executor) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	return graphql.OneShot(e.run(ctx, opCtx))
}

// run выполняет разобранную и провалидированную операцию
func (e *Executor) run(ctx context.Context, opCtx *graphql.OperationContext) *graphql.Response {
	ex := &execution{Executor: e, op: opCtx}

	rootType := "Query"
	serial := false
	if opCtx.Operation.Operation == ast.Mutation {
		rootType = "Mutation"
		serial = true
	}

	data := ex.executeObject(ctx, opCtx.Operation.SelectionSet, rootType, nil, nil, serial)

	var buf bytes.Buffer
	if data == nil {
		buf.WriteString("null")
	} else {
		data.MarshalGQL(&buf)
	}

	return &graphql.Response{
		Data:   json.RawMessage(buf.Bytes()),
		Errors: ex.sortedErrors(),
	}
}

// execution - состояние одного запроса
type execution struct {
	*Executor
	op *graphql.OperationContext

	mu     sync.Mutex
	errors gqlerror.List
}

// executeObject возвращает nil, если объект пришлось обнулить (null в non-null поле)
func (ex *execution) executeObject(ctx context.Context, sel ast.SelectionSet, typeName string, obj interface{}, path ast.Path, serial bool) graphql.Marshaler {
	fields := graphql.CollectFields(ex.op, sel, []string{typeName})
	results := make([]graphql.Marshaler, len(fields))
	nonNull := make([]bool, len(fields))

	run := func(i int) {
		f := fields[i]
		fieldPath := extend(path, ast.PathName(f.Alias))
		results[i], nonNull[i] = ex.executeField(ctx, typeName, f, obj, fieldPath)
	}

	if serial || len(fields) < 2 {
		for i := range fields {
			run(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(ex.concurrency)
		for i := range fields {
			i := i
			g.Go(func() error {
				run(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	out := make(orderedObject, 0, len(fields))
	for i, f := range fields {
		if results[i] == nil {
			if nonNull[i] {
				return nil
			}
			results[i] = graphql.Null
		}
		out = append(out, objectField{key: f.Alias, value: results[i]})
	}
	return out
}

// executeField возвращает значение (nil - null) и признак non-null типа поля
func (ex *execution) executeField(ctx context.Context, typeName string, f graphql.CollectedField, obj interface{}, path ast.Path) (m graphql.Marshaler, nonNull bool) {
	if f.Name == "__typename" {
		return graphql.MarshalString(typeName), true
	}
	if f.Name == "__schema" || f.Name == "__type" {
		ex.addError(ctx, path, f.Field, gqlerror.Errorf("introspection is not supported"))
		return nil, false
	}

	def := ex.schema.Types[typeName].Fields.ForName(f.Name)
	if def == nil {
		ex.addError(ctx, path, f.Field, fmt.Errorf("unknown field %s.%s", typeName, f.Name))
		return nil, false
	}
	nonNull = def.Type.NonNull

	defer func() {
		if r := recover(); r != nil {
			reqctx.Logger(ctx, ex.logger).Error("resolver panic",
				"field", typeName+"."+f.Name, "panic", r, "stack", string(debug.Stack()))
			ex.addError(ctx, path, f.Field, fmt.Errorf("panic in resolver: %v", r))
			m = nil
		}
	}()

	value, err := ex.resolve(ctx, typeName, f, obj)
	if err != nil {
		ex.addError(ctx, path, f.Field, err)
		return nil, nonNull
	}
	return ex.completeValue(ctx, def.Type, f, value, path), nonNull
}

// completeValue сериализует значение резолвера по типу поля; nil - null
func (ex *execution) completeValue(ctx context.Context, t *ast.Type, f graphql.CollectedField, value interface{}, path ast.Path) graphql.Marshaler {
	if isNil(value) {
		if t.NonNull {
			ex.addError(ctx, path, f.Field, gqlerror.Errorf("the requested element is null which the schema does not allow"))
		}
		return nil
	}

	if t.Elem != nil {
		items, ok := listItems(value)
		if !ok {
			ex.addError(ctx, path, f.Field, fmt.Errorf("expected a list for %s, got %T", f.Name, value))
			return nil
		}
		return ex.completeList(ctx, t.Elem, f, items, path)
	}

	def := ex.schema.Types[t.NamedType]
	switch def.Kind {
	case ast.Scalar:
		m, err := marshalScalar(t.NamedType, value)
		if err != nil {
			ex.addError(ctx, path, f.Field, err)
			return nil
		}
		return m
	case ast.Object:
		return ex.executeObject(ctx, f.Selections, t.NamedType, value, path, false)
	}

	ex.addError(ctx, path, f.Field, fmt.Errorf("unsupported output type %s", t.NamedType))
	return nil
}

// completeList: элементы-объекты разрешаются параллельно; null в non-null элементе обнуляет весь список
func (ex *execution) completeList(ctx context.Context, elem *ast.Type, f graphql.CollectedField, items []interface{}, path ast.Path) graphql.Marshaler {
	out := make(orderedList, len(items))

	var g errgroup.Group
	g.SetLimit(ex.concurrency)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			out[i] = ex.completeValue(ctx, elem, f, item, extend(path, ast.PathIndex(i)))
			return nil
		})
	}
	_ = g.Wait()

	for i := range out {
		if out[i] == nil {
			if elem.NonNull {
				return nil
			}
			out[i] = graphql.Null
		}
	}
	return out
}

func (ex *execution) addError(ctx context.Context, path ast.Path, field *ast.Field, err error) {
	gerr := toGQLError(ctx, ex.logger, err)
	gerr.Path = path
	if field != nil && field.Position != nil {
		gerr.Locations = []gqlerror.Location{{Line: field.Position.Line, Column: field.Position.Column}}
	}

	ex.mu.Lock()
	ex.errors = append(ex.errors, gerr)
	ex.mu.Unlock()
}

// sortedErrors - порядок ошибок не зависит от порядка завершения горутин
func (ex *execution) sortedErrors() gqlerror.List {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	if len(ex.errors) == 0 {
		return nil
	}
	sort.SliceStable(ex.errors, func(i, j int) bool {
		return ex.errors[i].Path.String() < ex.errors[j].Path.String()
	})
	return ex.errors
}

func extend(path ast.Path, el ast.PathElement) ast.Path {
	p := make(ast.Path, len(path)+1)
	copy(p, path)
	p[len(path)] = el
	return p
}
