package patient

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medhubhq/medhub/internal/database"
)

// Repository persists patient documents. Lookups return (nil, nil) when
// no document matches. Insert and Replace surface ErrDuplicateUHN when
// the store's unique index on uhn rejects the write.
type Repository interface {
	Insert(ctx context.Context, p *Patient) error
	Replace(ctx context.Context, p *Patient) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Patient, error)
	FindByUHN(ctx context.Context, uhn string) (*Patient, error)
	FindByUHNExcept(ctx context.Context, uhn string, id primitive.ObjectID) (*Patient, error)
	FindByHospital(ctx context.Context, hospitalID primitive.ObjectID) ([]*Patient, error)
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{collection: db.Collection(database.CollectionPatients)}
}

func (r *repository) Insert(ctx context.Context, p *Patient) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateUHN
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *repository) Replace(ctx context.Context, p *Patient) error {
	p.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateUHN
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Patient, error) {
	var p Patient
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByUHN(ctx context.Context, uhn string) (*Patient, error) {
	var p Patient
	err := r.collection.FindOne(ctx, bson.M{"uhn": uhn}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByUHNExcept(ctx context.Context, uhn string, id primitive.ObjectID) (*Patient, error) {
	var p Patient
	err := r.collection.FindOne(ctx, bson.M{"uhn": uhn, "_id": bson.M{"$ne": id}}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// FindByHospital returns the hospital's patients ordered by creation
// time ascending, so listings are deterministic across calls.
func (r *repository) FindByHospital(ctx context.Context, hospitalID primitive.ObjectID) ([]*Patient, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"hospitalId": hospitalID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	patients := make([]*Patient, 0)
	for cursor.Next(ctx) {
		var p Patient
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		patients = append(patients, &p)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return patients, nil
}
