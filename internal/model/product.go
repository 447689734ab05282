package model

// Product represents a catalog item
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       *string `json:"image,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateProductRequest is used for adding a new product
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
}

// UpdateProductRequest is used for editing an existing product
type UpdateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description *string `json:"description"`
}
