package recommendations

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var productCols = []string{"id", "name", "description", "price", "price_cents", "image", "tags", "keywords", "created_at"}

func TestPGRepoList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	rows := sqlmock.NewRows(productCols).
		AddRow("1", "Premium Mozzarella", "High-quality Italian mozzarella cheese", "$24.99/kg", int64(2499), "img1",
			[]byte(`["Dairy","Italian","Premium"]`), []byte(`["mozzarella"]`), now).
		AddRow("2", "Organic Tomato Sauce", "Fresh organic tomato sauce", "$8.99/jar", int64(899), "img2",
			[]byte(`["Organic"]`), []byte(`["tomato"]`), now)
	mock.ExpectQuery("SELECT (.+) FROM products ORDER BY id").WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	products, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(products) != 2 || products[0].Tags[2] != "Premium" || products[1].Keywords[0] != "tomato" {
		t.Fatalf("unexpected products %+v", products)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id").WithArgs("99").WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetByIDBadJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows(productCols).
		AddRow("1", "n", "d", "p", int64(1), "i", []byte(`{`), []byte(`[]`), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM products WHERE id").WithArgs("1").WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "1"); err == nil {
		t.Fatalf("expected decode error")
	}
}
