package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
	"github.com/terangalabs/livraison-webhook/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

const collectionName = "commandes"

// Repository persists orders in a MongoDB collection.
type Repository struct {
	collection *mongo.Collection
}

// NewRepository wires a MongoDB-backed repository. Caller manages client
// lifecycle.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection(collectionName)}
}

// orderRecord maps the order to its document shape. Field names keep the
// historical collection layout.
type orderRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	DepartureAddress string             `bson:"adresseDepart"`
	ArrivalAddress   string             `bson:"adresseArrivee"`
	Tariff           string             `bson:"tarif"`
	Date             string             `bson:"date"`
	ClientName       string             `bson:"nomClient"`
	Reference        string             `bson:"refCommande"`
}

func (r *Repository) Insert(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	_, err := r.collection.InsertOne(ctx, toRecord(order))
	return err
}

func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for _, record := range records {
		orders = append(orders, record.toDomain())
	}
	return orders, nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		DepartureAddress: order.DepartureAddress,
		ArrivalAddress:   order.ArrivalAddress,
		Tariff:           order.Tariff,
		Date:             order.Date,
		ClientName:       order.ClientName,
		Reference:        order.Reference,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		DepartureAddress: r.DepartureAddress,
		ArrivalAddress:   r.ArrivalAddress,
		Tariff:           r.Tariff,
		Date:             r.Date,
		ClientName:       r.ClientName,
		Reference:        r.Reference,
	}
}
