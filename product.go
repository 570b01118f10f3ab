package main

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Product is the catalog row as the UI sees it. IDs come from two
// namespaces: server-origin numeric strings and locally created rows
// prefixed with localIDPrefix until the server has confirmed them.
type Product struct {
	ID       string
	Name     string
	Category string
	Price    float64
	Vendor   string
	SKU      string
	Rating   float64
}

const localIDPrefix = "local-"

func newLocalID() string {
	return localIDPrefix + uuid.NewString()
}

func isLocalID(id string) bool {
	return strings.HasPrefix(id, localIDPrefix)
}

// productDraft keeps the price as the raw user input so intermediate
// states like "12," survive until validation.
type productDraft struct {
	Name   string
	Price  string
	Vendor string
	SKU    string
}

type draftPayload struct {
	Name   string
	Price  float64
	Vendor string
	SKU    string
}

func (d productDraft) field(field string) string {
	switch field {
	case fieldName:
		return d.Name
	case fieldPrice:
		return d.Price
	case fieldVendor:
		return d.Vendor
	case fieldSKU:
		return d.SKU
	}
	return ""
}

func (d *productDraft) setField(field, value string) {
	switch field {
	case fieldName:
		d.Name = value
	case fieldPrice:
		d.Price = value
	case fieldVendor:
		d.Vendor = value
	case fieldSKU:
		d.SKU = value
	}
}

// productPatch is a partial update layered over a base row.
type productPatch struct {
	Name   *string
	Price  *float64
	Vendor *string
	SKU    *string
}

func (p productPatch) isEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Vendor == nil && p.SKU == nil
}

func (p productPatch) merge(other productPatch) productPatch {
	if other.Name != nil {
		p.Name = other.Name
	}
	if other.Price != nil {
		p.Price = other.Price
	}
	if other.Vendor != nil {
		p.Vendor = other.Vendor
	}
	if other.SKU != nil {
		p.SKU = other.SKU
	}
	return p
}

func (p productPatch) apply(product Product) Product {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Vendor != nil {
		product.Vendor = *p.Vendor
	}
	if p.SKU != nil {
		product.SKU = *p.SKU
	}
	return product
}

const (
	fieldName   = "name"
	fieldPrice  = "price"
	fieldVendor = "vendor"
	fieldSKU    = "sku"
)

var editableFields = []string{fieldName, fieldPrice, fieldVendor, fieldSKU}

const (
	columnName   = "name"
	columnVendor = "vendor"
	columnSKU    = "sku"
	columnRating = "rating"
	columnPrice  = "price"
)

var productColumnKeys = []string{columnName, columnVendor, columnSKU, columnRating, columnPrice}

func isProductColumnKey(value string) bool {
	for _, key := range productColumnKeys {
		if key == value {
			return true
		}
	}
	return false
}

// remoteSortField maps a column key to the field name the listing
// endpoint sorts by.
func remoteSortField(key string) string {
	switch key {
	case columnName:
		return "title"
	case columnVendor:
		return "brand"
	case columnSKU, columnRating, columnPrice:
		return key
	}
	return ""
}

type sortDirection string

const (
	sortAsc  sortDirection = "asc"
	sortDesc sortDirection = "desc"
)

// sortState is nil-able via pointer use; a nil *sortState means the
// default server order.
type sortState struct {
	Key       string
	Direction sortDirection
}

type productDTO struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category,omitempty"`
	Price    float64  `json:"price"`
	Rating   *float64 `json:"rating,omitempty"`
	Stock    *int     `json:"stock,omitempty"`
	Brand    string   `json:"brand,omitempty"`
	SKU      string   `json:"sku,omitempty"`
}

func mapProductDTO(dto productDTO) Product {
	id := strconv.FormatInt(dto.ID, 10)
	sku := dto.SKU
	if sku == "" {
		sku = id
	}
	rating := 0.0
	if dto.Rating != nil {
		rating = *dto.Rating
	}
	return Product{
		ID:       id,
		Name:     dto.Title,
		Category: dto.Category,
		Price:    dto.Price,
		Vendor:   dto.Brand,
		SKU:      sku,
		Rating:   rating,
	}
}
