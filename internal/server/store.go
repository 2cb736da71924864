package server

import (
	"context"

	"crmstock/internal/records"
)

// Collection names a record collection. The store maps collections to
// tables through a fixed whitelist; collection names never come from
// request input unchecked.
type Collection string

const (
	Customers Collection = "customers"
	Products  Collection = "products"
)

// Store is the persistence boundary. The SQLite implementation is the
// only production one; tests may substitute their own.
//
// Every method is a fresh round trip — nothing is cached across calls.
type Store interface {
	// AllocateID returns the next identity key for the collection,
	// reusing gaps left by deletions (see SQLiteStore.AllocateID for the
	// exact rule). The caller passes the result to the matching insert;
	// the table's PRIMARY KEY constraint is the final arbiter if two
	// allocations race.
	AllocateID(ctx context.Context, coll Collection) (int64, error)

	InsertCustomer(ctx context.Context, id int64, c *records.Customer) error
	ListCustomers(ctx context.Context, sortField, dir string) ([]records.Customer, error)
	SearchCustomers(ctx context.Context, term string) ([]records.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) (int64, error)

	InsertProduct(ctx context.Context, id int64, p *records.Product) error
	ListProducts(ctx context.Context, sortField, dir string) ([]records.Product, error)
	SearchProductsByCode(ctx context.Context, code string) ([]records.Product, error)
	DeleteProduct(ctx context.Context, id int64) (int64, error)

	// GetAccount returns (nil, nil) when no account has that username.
	GetAccount(ctx context.Context, username string) (*records.Account, error)
	CreateAccount(ctx context.Context, username, passwordHash string) error
}
