package account

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medhubhq/medhub/internal/database"
)

// HospitalRepository persists hospital accounts. Lookups return (nil, nil)
// when no document matches.
type HospitalRepository interface {
	Insert(ctx context.Context, h *Hospital) error
	FindByUserID(ctx context.Context, userID string) (*Hospital, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Hospital, error)
	Save(ctx context.Context, h *Hospital) error
}

// GovernmentRepository persists government-body accounts.
type GovernmentRepository interface {
	Insert(ctx context.Context, g *Government) error
	FindByUserID(ctx context.Context, userID string) (*Government, error)
}

// AdminRepository persists administrator accounts.
type AdminRepository interface {
	Insert(ctx context.Context, a *Admin) error
	FindByUserID(ctx context.Context, userID string) (*Admin, error)
}

type hospitalRepository struct {
	collection *mongo.Collection
}

func NewHospitalRepository(db *mongo.Database) HospitalRepository {
	return &hospitalRepository{collection: db.Collection(database.CollectionHospitals)}
}

func (r *hospitalRepository) Insert(ctx context.Context, h *Hospital) error {
	now := time.Now()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, h)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		h.ID = oid
	}
	return nil
}

func (r *hospitalRepository) FindByUserID(ctx context.Context, userID string) (*Hospital, error) {
	var h Hospital
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&h)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (r *hospitalRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Hospital, error) {
	var h Hospital
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&h)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (r *hospitalRepository) Save(ctx context.Context, h *Hospital) error {
	h.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": h.ID}, h)
	return err
}

type governmentRepository struct {
	collection *mongo.Collection
}

func NewGovernmentRepository(db *mongo.Database) GovernmentRepository {
	return &governmentRepository{collection: db.Collection(database.CollectionGovernmentUsers)}
}

func (r *governmentRepository) Insert(ctx context.Context, g *Government) error {
	now := time.Now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, g)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		g.ID = oid
	}
	return nil
}

func (r *governmentRepository) FindByUserID(ctx context.Context, userID string) (*Government, error) {
	var g Government
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&g)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

type adminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) AdminRepository {
	return &adminRepository{collection: db.Collection(database.CollectionAdminUsers)}
}

func (r *adminRepository) Insert(ctx context.Context, a *Admin) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

func (r *adminRepository) FindByUserID(ctx context.Context, userID string) (*Admin, error) {
	var a Admin
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
