package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidPrice = errors.New("price must be a non-negative number")
var ErrNoFieldsToUpdate = errors.New("no valid fields to update")

// Product is a priced item with a unit of measure and a required market
// reference (IDOrigen).
type Product struct {
	ID       int    `json:"id"`
	IDOrigen int    `json:"idOrigen"`
	Nombre   string `json:"nombre"`
	UMedida  string `json:"uMedida"`
	Precio   int    `json:"precio"`
}

// ProductWithMarket is a product row joined with the name of its market.
// It is what the query layer returns, since every read surface annotates
// products with the market name.
type ProductWithMarket struct {
	Product
	Mercado string `json:"mercado"`
}
