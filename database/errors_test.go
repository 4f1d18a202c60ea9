package database

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestTranslate(t *testing.T) {
	if translate(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	if !errors.Is(translate(fmt.Errorf("find: %w", mongo.ErrNoDocuments)), ErrNotFound) {
		t.Fatalf("no documents should map to ErrNotFound")
	}

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "dup"}}}
	if !errors.Is(translate(dup), ErrDuplicate) {
		t.Fatalf("write exception 11000 should map to ErrDuplicate")
	}
	if !IsDuplicateKey(errors.New("E11000 duplicate key error collection: users index: email_1")) {
		t.Fatalf("server message not recognised")
	}

	other := errors.New("connection reset")
	if translate(other) != other {
		t.Fatalf("unrelated errors pass through")
	}
	if IsDuplicateKey(mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 121}}}) {
		t.Fatalf("validation failure is not a duplicate")
	}
}
