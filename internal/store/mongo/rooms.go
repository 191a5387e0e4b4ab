// Package mongo is the reference RoomStore backed by a MongoDB
// collection. The connection is injected, never a package-level
// singleton, so tests can swap backends.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quizhive/rooms/internal/domain"
	"github.com/quizhive/rooms/internal/store"
)

const collectionName = "rooms"

type roomStore struct {
	coll *mongo.Collection
}

// NewRoomStore ensures a unique index on the public room id so that
// Create stays authoritative under concurrent id generation, then
// returns the store.
func NewRoomStore(ctx context.Context, db *mongo.Database) (store.RoomStore, error) {
	coll := db.Collection(collectionName)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "roomId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("ensure rooms index: %w", err)
	}
	return &roomStore{coll: coll}, nil
}

func (s *roomStore) Create(ctx context.Context, room *domain.Room) (string, error) {
	res, err := s.coll.InsertOne(ctx, room)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrAlreadyExists
		}
		return "", fmt.Errorf("insert room %s: %w", room.ID, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", res.InsertedID), nil
	}
	return oid.Hex(), nil
}

func (s *roomStore) Get(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	var room domain.Room
	err := s.coll.FindOne(ctx, bson.M{"roomId": id}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find room %s: %w", id, err)
	}
	return &room, nil
}

func (s *roomStore) GetAll(ctx context.Context) ([]domain.Room, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find rooms: %w", err)
	}
	var rooms []domain.Room
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomStore) Update(ctx context.Context, room *domain.Room) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, bson.M{"roomId": room.ID}, bson.M{"$set": room})
	if err != nil {
		return false, fmt.Errorf("update room %s: %w", room.ID, err)
	}
	// Matched but unchanged (same student count written twice) is
	// still a success; only a complete miss reports false.
	return res.MatchedCount != 0 || res.ModifiedCount != 0, nil
}

func (s *roomStore) Delete(ctx context.Context, id domain.RoomID) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"roomId": id})
	if err != nil {
		return false, fmt.Errorf("delete room %s: %w", id, err)
	}
	return res.DeletedCount == 1, nil
}
