package config

const (
	// AdsPageSize is the page size for ad listings, including "my ads"
	AdsPageSize = 4

	// DefaultPageSize is the page size for every other collection
	DefaultPageSize = 10

	MaxAdTitleLength       = 200
	MaxAdDescriptionLength = 1000

	MaxNameLength  = 64
	MaxEmailLength = 254

	// MaxEmailLocalPartLength bounds the part of an email before '@'
	MaxEmailLocalPartLength = 64

	MinPasswordLength = 8
)
