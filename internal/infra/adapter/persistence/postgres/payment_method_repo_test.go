package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"spa-backoffice/internal/domain/entity"
	pg "spa-backoffice/internal/infra/adapter/persistence/postgres"
	"spa-backoffice/internal/infra/db"
	"spa-backoffice/internal/repository"
)

var pmColumns = []string{
	"id", "payment_method_name", "is_enabled", "is_revenue",
	"show_on_payment_page", "created_at", "updated_at",
}

func newPaymentMethodRepo(t *testing.T) (repository.PaymentMethodRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = mockDB.Close() })
	return pg.NewPaymentMethodRepo(db.FixedPool{Pool: mockDB}), mock
}

func TestPaymentMethodRepo_Create_DuplicateName(t *testing.T) {
	repo, mock := newPaymentMethodRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payment_methods")).
		WithArgs("Cash", true, true, true).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "payment_methods_name_key",
		})

	err := repo.Create(context.Background(), &entity.PaymentMethod{
		Name: "Cash", IsEnabled: true, IsRevenue: true, ShowOnPaymentPage: true,
	})
	if !errors.Is(err, entity.ErrConflict) {
		t.Fatalf("Create duplicate = %v, want ErrConflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPaymentMethodRepo_Create_OtherErrorNotMapped(t *testing.T) {
	repo, mock := newPaymentMethodRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payment_methods")).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Create(context.Background(), &entity.PaymentMethod{Name: "Cash"})
	if err == nil || errors.Is(err, entity.ErrConflict) {
		t.Fatalf("Create = %v, want unmapped error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPaymentMethodRepo_Get_NotFound(t *testing.T) {
	repo, mock := newPaymentMethodRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payment_methods pm\nWHERE pm.id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(pmColumns))

	_, err := repo.Get(context.Background(), 99)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPaymentMethodRepo_Update(t *testing.T) {
	repo, mock := newPaymentMethodRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payment_methods")).
		WithArgs("PayNow", true, false, true, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &entity.PaymentMethod{
		ID: 3, Name: "PayNow", IsEnabled: true, IsRevenue: false, ShowOnPaymentPage: true,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPaymentMethodRepo_Update_MissingRow(t *testing.T) {
	repo, mock := newPaymentMethodRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payment_methods")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &entity.PaymentMethod{ID: 42, Name: "Gone"})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("Update missing = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPaymentMethodRepo_ListEnabled(t *testing.T) {
	repo, mock := newPaymentMethodRepo(t)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE pm.is_enabled = TRUE")).
		WillReturnRows(sqlmock.NewRows(pmColumns).
			AddRow(int64(1), "Cash", true, true, true, now, now).
			AddRow(int64(2), "NETS", true, true, false, now, now))

	methods, err := repo.ListEnabled(context.Background())
	if err != nil {
		t.Fatalf("ListEnabled: %v", err)
	}
	if len(methods) != 2 || methods[0].Name != "Cash" || methods[1].Name != "NETS" {
		t.Fatalf("ListEnabled = %+v, want Cash then NETS", methods)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
