/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identitystore

import (
	"context"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/storage/mongodb"
)

const (
	collectionName             = "identities"
	mongoDBDocumentIDFieldName = "_id"
	seqFieldName               = "_seq"
)

// Store keeps one MongoDB document per identity. Documents carry the identity's JSON fields, so
// timestamps are stored as ISO-8601 strings.
type Store struct {
	mongoClient *mongodb.Client
}

// NewStore creates Store.
func NewStore(mongoClient *mongodb.Client) *Store {
	return &Store{mongoClient: mongoClient}
}

// Save clears the collection, then inserts every identity. Nothing is rolled back when the insert fails.
func (s *Store) Save(ctx context.Context, identities []*identity.Identity) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}

	docs := make([]interface{}, 0, len(identities))

	for i, ident := range identities {
		if ident == nil {
			continue
		}

		doc, err := toDocument(ident)
		if err != nil {
			return err
		}

		doc[mongoDBDocumentIDFieldName] = ident.ID
		doc[seqFieldName] = i

		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil
	}

	ctxWithTimeout, cancel := s.mongoClient.ContextWithTimeout(ctx)
	defer cancel()

	if _, err := s.collection().InsertMany(ctxWithTimeout, docs); err != nil {
		return backendErr("save", fmt.Errorf("insert identities: %w", err))
	}

	return nil
}

func (s *Store) Load(ctx context.Context) ([]*identity.Identity, error) {
	ctxWithTimeout, cancel := s.mongoClient.ContextWithTimeout(ctx)
	defer cancel()

	cursor, err := s.collection().Find(ctxWithTimeout, bson.D{},
		mongooptions.Find().SetSort(bson.D{{Key: seqFieldName, Value: 1}}))
	if err != nil {
		return nil, backendErr("load", fmt.Errorf("find identities: %w", err))
	}

	var docs []map[string]interface{}

	if err = cursor.All(ctxWithTimeout, &docs); err != nil {
		return nil, backendErr("load", fmt.Errorf("decode identities: %w", err))
	}

	identities := make([]*identity.Identity, 0, len(docs))

	for _, doc := range docs {
		delete(doc, mongoDBDocumentIDFieldName)
		delete(doc, seqFieldName)

		ident, convErr := fromDocument(doc)
		if convErr != nil {
			return nil, convErr
		}

		identities = append(identities, ident)
	}

	return identities, nil
}

func (s *Store) Clear(ctx context.Context) error {
	ctxWithTimeout, cancel := s.mongoClient.ContextWithTimeout(ctx)
	defer cancel()

	if _, err := s.collection().DeleteMany(ctxWithTimeout, bson.D{}); err != nil {
		return backendErr("clear", fmt.Errorf("delete identities: %w", err))
	}

	return nil
}

func (s *Store) GetStorageInfo(_ context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func (s *Store) collection() *mongo.Collection {
	return s.mongoClient.Database().Collection(collectionName)
}

func toDocument(ident *identity.Identity) (map[string]interface{}, error) {
	b, err := json.Marshal(ident)
	if err != nil {
		return nil, fmt.Errorf("marshal identity %s: %w", ident.ID, err)
	}

	var doc map[string]interface{}

	if err = json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal identity %s: %w", ident.ID, err)
	}

	return doc, nil
}

func fromDocument(doc map[string]interface{}) (*identity.Identity, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, coreerr.NewMalformedData(err).WithComponent(coreerr.MongoDBComponent).WithOperation("load")
	}

	ident := &identity.Identity{}

	if err = json.Unmarshal(b, ident); err != nil {
		return nil, coreerr.NewMalformedData(err).WithComponent(coreerr.MongoDBComponent).WithOperation("load")
	}

	return ident, nil
}

func backendErr(operation string, err error) error {
	return coreerr.NewBackendFailure(err).WithComponent(coreerr.MongoDBComponent).WithOperation(operation)
}
