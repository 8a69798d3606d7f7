package mongo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dvloznov/polarix/internal/store"
)

func TestTranslate(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: duplicateKeyCode, Message: "E11000"}}}
	other := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no documents", mongo.ErrNoDocuments, store.ErrNotFound},
		{"duplicate key", dup, store.ErrDuplicate},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate("op", tt.err)
			if tt.want == nil {
				if got != nil {
					t.Errorf("translate() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("translate() = %v, want wrapping %v", got, tt.want)
			}
		})
	}
}

func TestInsertManyCount(t *testing.T) {
	dupBatch := mongo.BulkWriteException{WriteErrors: []mongo.BulkWriteError{
		{WriteError: mongo.WriteError{Index: 1, Code: duplicateKeyCode}},
		{WriteError: mongo.WriteError{Index: 3, Code: duplicateKeyCode}},
	}}
	mixedBatch := mongo.BulkWriteException{WriteErrors: []mongo.BulkWriteError{
		{WriteError: mongo.WriteError{Index: 0, Code: duplicateKeyCode}},
		{WriteError: mongo.WriteError{Index: 2, Code: 121}},
	}}

	tests := []struct {
		name    string
		err     error
		want    int
		wantDup bool
		wantErr bool
	}{
		{"all inserted", nil, 5, false, false},
		{"duplicates only", dupBatch, 3, true, true},
		{"non-duplicate write error", mixedBatch, 3, false, true},
		{"transport error", errors.New("timeout"), 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := insertManyCount("op", 5, tt.err)
			if got != tt.want {
				t.Errorf("count = %d, want %d", got, tt.want)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, store.ErrDuplicate) != tt.wantDup {
				t.Errorf("errors.Is(err, ErrDuplicate) = %v, want %v", !tt.wantDup, tt.wantDup)
			}
		})
	}
}

func TestIndexes_UniqueConstraints(t *testing.T) {
	unique := map[string]bool{}
	for _, spec := range Indexes() {
		if spec.Unique {
			unique[spec.Collection+"."+spec.Name] = true
		}
	}

	for _, want := range []string{
		"users.uniq_username",
		"users.uniq_email",
		"profiles.uniq_email",
		"categories.uniq_owner_name",
		"accounts.uniq_owner_name",
		"sections.uniq_owner_section",
	} {
		if !unique[want] {
			t.Errorf("missing unique index %s", want)
		}
	}
}
