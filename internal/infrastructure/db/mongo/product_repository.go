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

const productsCollection = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(productsCollection)}
}

type productDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Price         float64            `bson:"price"`
	Category      string             `bson:"category"`
	Images        []string           `bson:"images"`
	Stock         int                `bson:"stock"`
	LowStockAlert int                `bson:"low_stock_alert"`
	IsActive      bool               `bson:"is_active"`
	BusinessID    primitive.ObjectID `bson:"business_id"`
	BusinessName  string             `bson:"business_name"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d productDoc) toDomain() *domain.Product {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Product{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Description:   d.Description,
		Price:         d.Price,
		Category:      domain.Category(d.Category),
		Images:        images,
		Stock:         d.Stock,
		LowStockAlert: d.LowStockAlert,
		IsActive:      d.IsActive,
		BusinessID:    d.BusinessID.Hex(),
		BusinessName:  d.BusinessName,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

// Create inserts a new product document.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	businessID, err := primitive.ObjectIDFromHex(p.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("insert product: invalid business id %q", p.BusinessID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := productDoc{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      string(p.Category),
		Images:        p.Images,
		Stock:         p.Stock,
		LowStockAlert: p.LowStockAlert,
		IsActive:      p.IsActive,
		BusinessID:    businessID,
		BusinessName:  p.BusinessName,
		CreatedAt:     p.CreatedAt.UTC(),
		UpdatedAt:     p.UpdatedAt.UTC(),
	}
	if doc.Images == nil {
		doc.Images = []string{}
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert product: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

// ownedFilter matches a product by id and, when businessID is non-empty, by owner.
// It reports false when either id is malformed and so can never match.
func ownedFilter(id, businessID string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	filter := bson.M{"_id": oid}
	if businessID != "" {
		owner, err := primitive.ObjectIDFromHex(businessID)
		if err != nil {
			return nil, false
		}
		filter["business_id"] = owner
	}
	return filter, true
}

// FindByID retrieves a product by id.
// When businessID is non-empty, an additional filter by business_id is applied.
func (r *ProductRepository) FindByID(ctx context.Context, id, businessID string) (*domain.Product, error) {
	filter, ok := ownedFilter(id, businessID)
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc productDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

// Update overwrites the mutable fields of a product owned by p.BusinessID.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	filter, ok := ownedFilter(p.ID, p.BusinessID)
	if !ok || p.BusinessID == "" {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	images := p.Images
	if images == nil {
		images = []string{}
	}
	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category":    string(p.Category),
		"images":      images,
		"stock":       p.Stock,
		"is_active":   p.IsActive,
		"updated_at":  p.UpdatedAt.UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete removes a product owned by businessID.
func (r *ProductRepository) Delete(ctx context.Context, id, businessID string) error {
	filter, ok := ownedFilter(id, businessID)
	if !ok || businessID == "" {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List returns matching products, newest first.
func (r *ProductRepository) List(ctx context.Context, f domain.ProductFilter) ([]*domain.Product, error) {
	filter, ok := productFilter(f)
	if !ok {
		return []*domain.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toDomain())
	}
	return products, nil
}

func (r *ProductRepository) Count(ctx context.Context, f domain.ProductFilter) (int64, error) {
	filter, ok := productFilter(f)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates necessary indexes on the products collection.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
