// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureBoards(ctx, db); err != nil {
		problems = append(problems, "boards: "+err.Error())
	}
	if err := ensureTasks(ctx, db); err != nil {
		problems = append(problems, "tasks: "+err.Error())
	}
	if err := ensureComments(ctx, db); err != nil {
		problems = append(problems, "comments: "+err.Error())
	}
	if err := ensureAuthTokens(ctx, db); err != nil {
		problems = append(problems, "auth_tokens: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Duplicate-email rejection at registration relies on this index.
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("uniq_users_email_ci").SetUnique(true),
		},
	})
	return err
}

func ensureBoards(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("boards").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_boards_owner"),
		},
		{
			// Multikey index over the member-id set for ListForUser.
			Keys:    bson.D{{Key: "member_ids", Value: 1}},
			Options: options.Index().SetName("idx_boards_members"),
		},
	})
	return err
}

func ensureTasks(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("tasks").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "board_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_tasks_board"),
		},
		{
			Keys:    bson.D{{Key: "assignee_id", Value: 1}},
			Options: options.Index().SetName("idx_tasks_assignee").SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "reviewer_id", Value: 1}},
			Options: options.Index().SetName("idx_tasks_reviewer").SetSparse(true),
		},
		{
			// Board summary counts filter on status/priority per board.
			Keys:    bson.D{{Key: "board_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_tasks_board_status"),
		},
		{
			Keys:    bson.D{{Key: "board_id", Value: 1}, {Key: "priority", Value: 1}},
			Options: options.Index().SetName("idx_tasks_board_priority"),
		},
	})
	return err
}

func ensureComments(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("comments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "task_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_comments_task"),
		},
	})
	return err
}

func ensureAuthTokens(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("auth_tokens").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("uniq_auth_tokens_token").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_auth_tokens_user"),
		},
		{
			// Mongo reaps expired tokens; UserIDForToken also checks
			// expiry so the reaper lag is not a security window.
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ttl_auth_tokens").SetExpireAfterSeconds(0),
		},
	})
	return err
}
