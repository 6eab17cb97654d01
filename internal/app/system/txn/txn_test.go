package txn

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("network reset"), false},
		{"command error code 20", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member"}, true},
		{"command error code 51", mongo.CommandError{Code: 51, Message: "Illegal operation"}, true},
		{"command error code 263", mongo.CommandError{Code: 263, Message: "Cannot run in a multi-document transaction"}, true},
		{"unrelated command error", mongo.CommandError{Code: 100, Message: "write concern error"}, false},
		{"standalone message", errors.New("transaction failed because this is not a replica set member"), true},
		{"sessions unsupported message", errors.New("session operations are not supported on this server"), true},
		{"transaction alone", errors.New("transaction failed"), false},
		{"illegal operation message", errors.New("illegal operation during transaction"), true},
		{"mixed case", errors.New("TRANSACTION FAILED on REPLICA SET"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
