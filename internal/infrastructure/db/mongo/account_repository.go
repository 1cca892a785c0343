package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bizsphere/marketplace/internal/core/domain"
)

const accountsCollection = "accounts"

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection)}
}

type accountDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Name               string             `bson:"name"`
	Email              string             `bson:"email"`
	PasswordHash       string             `bson:"password_hash,omitempty"`
	Role               string             `bson:"role"`
	Phone              string             `bson:"phone"`
	BusinessName       string             `bson:"business_name,omitempty"`
	Address            string             `bson:"address,omitempty"`
	BusinessVerified   bool               `bson:"business_verified"`
	VerificationStatus string             `bson:"verification_status"`
	VerificationNotes  string             `bson:"verification_notes,omitempty"`
	CreatedAt          time.Time          `bson:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at"`
}

func toAccountDoc(a *domain.Account) accountDoc {
	return accountDoc{
		Name:               a.Name,
		Email:              a.Email,
		PasswordHash:       a.PasswordHash,
		Role:               string(a.Role),
		Phone:              a.Phone,
		BusinessName:       a.BusinessName,
		Address:            a.Address,
		BusinessVerified:   a.BusinessVerified,
		VerificationStatus: string(a.VerificationStatus),
		VerificationNotes:  a.VerificationNotes,
		CreatedAt:          a.CreatedAt.UTC(),
		UpdatedAt:          a.UpdatedAt.UTC(),
	}
}

func (d accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:                 d.ID.Hex(),
		Name:               d.Name,
		Email:              d.Email,
		PasswordHash:       d.PasswordHash,
		Role:               domain.Role(d.Role),
		Phone:              d.Phone,
		BusinessName:       d.BusinessName,
		Address:            d.Address,
		BusinessVerified:   d.BusinessVerified,
		VerificationStatus: domain.VerificationStatus(d.VerificationStatus),
		VerificationNotes:  d.VerificationNotes,
		CreatedAt:          d.CreatedAt.UTC(),
		UpdatedAt:          d.UpdatedAt.UTC(),
	}
}

// Create inserts a new account. The unique email index turns concurrent
// registrations of the same email into domain.ErrDuplicateEmail.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toAccountDoc(account)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert account: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

// FindByEmail returns the account including its password hash.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(withoutSecrets))
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
	out := make(map[string]*domain.Account, len(ids))
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	accounts, err := r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find().SetProjection(withoutSecrets))
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		out[a.ID] = a
	}
	return out, nil
}

// List returns matching accounts newest first, without password hashes.
func (r *AccountRepository) List(ctx context.Context, f domain.AccountFilter) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(newestFirst).SetProjection(withoutSecrets)
	return r.find(ctx, accountFilter(f), opts)
}

func (r *AccountRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Account, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []accountDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}

	accounts := make([]*domain.Account, 0, len(docs))
	for _, d := range docs {
		accounts = append(accounts, d.toDomain())
	}
	return accounts, nil
}

func (r *AccountRepository) Count(ctx context.Context, f domain.AccountFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, accountFilter(f))
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

// UpdateVerification writes status, verified flag and notes in a single
// document update restricted to owner accounts.
func (r *AccountRepository) UpdateVerification(ctx context.Context, id string, status domain.VerificationStatus, notes string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBusinessNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "role": string(domain.RoleOwner)}
	update := bson.M{"$set": bson.M{
		"verification_status": string(status),
		"business_verified":   status == domain.VerificationApproved,
		"verification_notes":  notes,
		"updated_at":          time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutSecrets)

	var doc accountDoc
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("update verification: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique email index and the listing indexes.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "verification_status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
