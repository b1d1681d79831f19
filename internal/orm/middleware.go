package orm

import (
	"context"
	"time"

	"github.com/eleven-am/listkeeper/internal/logger"
)

// OperationType represents different types of database operations
type OperationType string

const (
	OpCreate OperationType = "create"
	OpUpdate OperationType = "update"
	OpDelete OperationType = "delete"
	OpFind   OperationType = "find"
	OpCount  OperationType = "count"
)

// MiddlewareContext contains information passed to middleware
type MiddlewareContext struct {
	Operation    OperationType
	TableName    string
	QueryBuilder interface{} // squirrel.SelectBuilder, squirrel.UpdateBuilder, etc.
	Query        string
	Args         []interface{}
	RowsAffected int64
	StartTime    time.Time
	Context      context.Context
}

// QueryMiddlewareFunc represents middleware that can modify queries
type QueryMiddlewareFunc func(ctx *MiddlewareContext) error

// QueryMiddleware represents middleware that can see and modify query builders
type QueryMiddleware func(next QueryMiddlewareFunc) QueryMiddlewareFunc

type middlewareManager struct {
	middleware []QueryMiddleware
}

func (mm *middlewareManager) add(middleware QueryMiddleware) {
	mm.middleware = append(mm.middleware, middleware)
}

func (mm *middlewareManager) execute(ctx *MiddlewareContext, finalFunc QueryMiddlewareFunc) error {
	handler := finalFunc

	for i := len(mm.middleware) - 1; i >= 0; i-- {
		handler = mm.middleware[i](handler)
	}

	return handler(ctx)
}

func (r *Repository[T]) executeQueryMiddleware(op OperationType, ctx context.Context, queryBuilder interface{}, finalFunc QueryMiddlewareFunc) error {
	middlewareCtx := &MiddlewareContext{
		Operation:    op,
		TableName:    r.metadata.TableName,
		QueryBuilder: queryBuilder,
		Context:      ctx,
		StartTime:    time.Now(),
	}

	if r.middlewareManager == nil {
		return finalFunc(middlewareCtx)
	}

	return r.middlewareManager.execute(middlewareCtx, finalFunc)
}

// AddMiddleware appends a middleware; the first one added runs outermost.
func (r *Repository[T]) AddMiddleware(middleware QueryMiddleware) {
	if r.middlewareManager == nil {
		r.middlewareManager = &middlewareManager{}
	}
	r.middlewareManager.add(middleware)
}

// LoggingMiddleware records every statement at debug level and failures at
// warn level.
func LoggingMiddleware(log logger.Logger) QueryMiddleware {
	return func(next QueryMiddlewareFunc) QueryMiddlewareFunc {
		return func(ctx *MiddlewareContext) error {
			err := next(ctx)

			entry := log.WithFields(map[string]interface{}{
				"op":          string(ctx.Operation),
				"table":       ctx.TableName,
				"sql":         ctx.Query,
				"duration_ms": time.Since(ctx.StartTime).Milliseconds(),
				"rows":        ctx.RowsAffected,
			})
			if err != nil {
				entry.WithError(err).Warn("statement failed")
				return err
			}
			entry.Debug("statement executed")
			return nil
		}
	}
}
