package repositories

import "database/sql"

// Store bundles the repositories of one backend together with its transactor.
type Store struct {
	Clients    ClientRepository
	Dresses    DressRepository
	Rentals    RentalRepository
	Promotions PromotionRepository
	Users      UserRepository
	Tx         Transactor
}

// NewPostgresStore wires every repository to the same PostgreSQL pool.
func NewPostgresStore(db *sql.DB) *Store {
	return &Store{
		Clients:    NewClientRepository(db),
		Dresses:    NewDressRepository(db),
		Rentals:    NewRentalRepository(db),
		Promotions: NewPromotionRepository(db),
		Users:      NewUserRepository(db),
		Tx:         NewSQLTransactor(db),
	}
}
