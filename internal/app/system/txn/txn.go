// Package txn runs multi-collection write sequences atomically when the
// MongoDB deployment supports transactions, and as plain ordered writes
// when it does not (standalone servers reject sessions/transactions).
//
// The board and task delete cascades use this: comments, then tasks,
// then the parent document, all inside one callback.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WithTransaction executes fn inside a MongoDB transaction. If the
// deployment does not support transactions, it falls back to running fn
// directly; the callback must order its writes so the fallback cannot
// orphan children (delete leaves before parents).
func WithTransaction(ctx context.Context, client *mongo.Client, log *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Warn("transactions unsupported by deployment; running writes without a transaction")
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Warn("transactions unsupported by deployment; running writes without a transaction")
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether the error indicates the deployment
// cannot run transactions (standalone server, old wire version).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		// IllegalOperation (20), CommandNotSupported-family codes seen
		// from standalone servers and DocumentDB.
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "illegal operation") {
		return true
	}
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") || strings.Contains(msg, "session") || strings.Contains(msg, "not supported")) {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
