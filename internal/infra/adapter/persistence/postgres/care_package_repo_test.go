package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"spa-backoffice/internal/domain/entity"
)

func TestCarePackageRepo_Create_CommitsPackageAndServices(t *testing.T) {
	repo, mock := newCarePackageRepo(t)

	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO care_packages")).
		WithArgs("Relax Bundle", "remarks", 288.0, true, "ENABLED").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), created, created))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO care_package_item_details")).
		WithArgs(int64(7), "Back Massage", 4, 60.0, 0.8).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO care_package_item_details")).
		WithArgs(int64(7), "Facial", 2, 48.0, 1.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectCommit()

	pkg := &entity.CarePackage{
		Name: "Relax Bundle", Remarks: "remarks", Price: 288.0,
		IsCustomizable: true, Status: entity.StatusEnabled,
	}
	services := []*entity.CarePackageService{
		{ServiceName: "Back Massage", Quantity: 4, Price: 60.0, Discount: 0.8},
		{ServiceName: "Facial", Quantity: 2, Price: 48.0, Discount: 1.0},
	}
	if err := repo.Create(context.Background(), pkg, services); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if pkg.ID != 7 {
		t.Fatalf("pkg.ID = %d, want 7", pkg.ID)
	}
	if services[0].ID != 11 || services[1].CarePackageID != 7 {
		t.Fatalf("service lines not backfilled: %+v", services)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCarePackageRepo_Create_RollsBackOnServiceLineError(t *testing.T) {
	repo, mock := newCarePackageRepo(t)

	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO care_packages")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), created, created))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO care_package_item_details")).
		WillReturnError(errors.New("line insert failed"))
	mock.ExpectRollback()

	pkg := &entity.CarePackage{Name: "Relax Bundle", Status: entity.StatusEnabled}
	services := []*entity.CarePackageService{{ServiceName: "Back Massage", Quantity: 1}}
	err := repo.Create(context.Background(), pkg, services)
	if err == nil {
		t.Fatal("Create must surface the service line failure")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCarePackageRepo_UpdateStatus(t *testing.T) {
	repo, mock := newCarePackageRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE care_packages SET status = $1")).
		WithArgs("DISABLED", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(context.Background(), 7, "DISABLED"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCarePackageRepo_Get_NotFound(t *testing.T) {
	repo, mock := newCarePackageRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE cp.id = $1")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(cpColumns))

	_, err := repo.Get(context.Background(), 404)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
