package repository

import (
	"context"
	"testing"

	"butcher_shop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProductRepository(mock)
	image := "/images/SpareRibs.webp"
	desc := "Tender Ribs, perfect for grilling"
	product := &model.Product{Name: "Beef Ribs", Price: 7500, Image: &image, Description: &desc}

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(product.Name, product.Price, product.Image, product.Description).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(3))

	err = repo.Create(context.Background(), product)

	assert.NoError(t, err)
	assert.Equal(t, 3, product.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProductRepository(mock)
	product := &model.Product{ID: 99, Name: "Goat Meat", Price: 10000}

	mock.ExpectExec(`UPDATE products SET`).
		WithArgs(product.Name, product.Price, product.Description, product.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Update(context.Background(), product)

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProductRepository(mock)

	mock.ExpectExec(`DELETE FROM products`).
		WithArgs(3).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = repo.Delete(context.Background(), 3)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProductRepository(mock)

	mock.ExpectExec(`DELETE FROM products`).
		WithArgs(99).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
