package domain

import "errors"

var ErrMarketNotFound = errors.New("market not found")

// Market is a vendor/origin entity that products belong to. Read-only from
// the API's perspective.
type Market struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}
