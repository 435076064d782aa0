package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shophub/storefront/internal/core/domain"
)

const productsCollection = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(productsCollection)}
}

// mongoProduct mirrors the remote record layout, including optional fields.
type mongoProduct struct {
	ID          string   `bson:"_id"`
	Name        string   `bson:"name,omitempty"`
	Price       *float64 `bson:"price,omitempty"`
	Description string   `bson:"description,omitempty"`
	Image       string   `bson:"image,omitempty"`
}

// List returns every product ordered by name.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	out := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		p := domain.Product{ID: d.ID, Name: d.Name, Description: d.Description, Image: d.Image}
		if d.Price != nil {
			p.Price = *d.Price
		}
		out = append(out, p)
	}
	return out, nil
}

// EnsureIndexes backs the name ordering used by List.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})
	return err
}

// Seed inserts products only when the collection is empty.
func (r *ProductRepository) Seed(ctx context.Context, products []domain.Product) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 || len(products) == 0 {
		return 0, nil
	}

	docs := make([]any, 0, len(products))
	for _, p := range products {
		price := p.Price
		docs = append(docs, mongoProduct{
			ID:          p.ID,
			Name:        p.Name,
			Price:       &price,
			Description: p.Description,
			Image:       p.Image,
		})
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}
	return len(res.InsertedIDs), nil
}
