package storage

import "gmaps-scraper/models"

// BusinessWriter is the interface any storage backend must satisfy.
type BusinessWriter interface {
	Write(businesses []*models.Business) error
	Close() error
}
