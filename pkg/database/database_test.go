package database

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"taskboard-backend/pkg/config"
)

type probe struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	m, err := New(&config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 60,
	}, log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	if _, err := New(&config.DatabaseConfig{Driver: "oracle"}, log); err == nil {
		t.Fatal("expected an error for an unsupported driver")
	}
}

func TestCreateTablesAndTransaction(t *testing.T) {
	m := newTestManager(t)

	if err := m.CreateTables(&probe{}); err != nil {
		t.Fatalf("CreateTables: %v", err)
	}

	err := m.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&probe{ID: "p1", Name: "one"}).Error
	})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}

	var count int64
	if err := m.Session().Model(&probe{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d rows, want 1", count)
	}
}

func TestTransactionRollsBackOnError(t *testing.T) {
	m := newTestManager(t)
	if err := m.CreateTables(&probe{}); err != nil {
		t.Fatalf("CreateTables: %v", err)
	}

	wantErr := errors.New("abort")
	err := m.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&probe{ID: "p1"}).Error; err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want the aborting error", err)
	}

	var count int64
	if err := m.Session().Model(&probe{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("rolled-back insert left %d rows", count)
	}
}

func TestConnectionProbeAndPoolStatus(t *testing.T) {
	m := newTestManager(t)

	if !m.TestConnection() {
		t.Error("probe against an open store should succeed")
	}

	status := m.PoolStatus()
	if status.MaxOpen != 1 {
		t.Errorf("MaxOpen = %d, want 1", status.MaxOpen)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if m.TestConnection() {
		t.Error("probe against a closed store should fail")
	}
}
