package usecase

import (
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	auditdomain "taskboard-backend/internal/audit/domain"
	authdomain "taskboard-backend/internal/auth/domain"
	boarddomain "taskboard-backend/internal/board/domain"
	"taskboard-backend/pkg/config"
	"taskboard-backend/pkg/database"
)

// memorySink captures event-log writes for assertions.
type memorySink struct {
	mu   sync.Mutex
	rows []sinkRow
}

type sinkRow struct {
	category string
	severity string
	message  string
}

func (s *memorySink) Write(category, severity, message string, details map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, sinkRow{category, severity, message})
}

func (s *memorySink) all() []sinkRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sinkRow(nil), s.rows...)
}

func newAuditTestDB(t *testing.T, migrate bool) *database.Manager {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.New(&config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 60,
	}, log)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if migrate {
		if err := db.CreateTables(&auditdomain.ActivityLog{}); err != nil {
			t.Fatalf("create tables: %v", err)
		}
	}
	return db
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestTaskCreatedWritesRowAndSummary(t *testing.T) {
	db := newAuditTestDB(t, true)
	sink := &memorySink{}
	logger := NewLogger(sink, discardLogger())

	task := &boarddomain.Task{
		ID:         "t-1",
		TaskNumber: "TASK-0007",
		Title:      "Wire the audit trail",
		ColumnID:   "col-1",
		CreatorID:  "u-1",
		Priority:   boarddomain.PriorityMedium,
		Status:     boarddomain.TaskStatusActive,
	}
	actor := Actor{ID: "u-1", Username: "alice"}
	ctx := authdomain.ClientContext{IPAddress: "10.0.0.1", UserAgent: "test"}

	logger.TaskCreated(db.Session(), actor, task, ctx)

	var row auditdomain.ActivityLog
	if err := db.Session().First(&row).Error; err != nil {
		t.Fatalf("audit row not written: %v", err)
	}
	if row.Type != auditdomain.ActivityTaskCreated {
		t.Errorf("type = %q, want task_created", row.Type)
	}
	if row.UserID != "u-1" {
		t.Errorf("user_id = %q, want u-1", row.UserID)
	}
	if row.TaskID == nil || *row.TaskID != "t-1" {
		t.Errorf("task_id = %v, want t-1", row.TaskID)
	}
	if row.IPAddress != "10.0.0.1" {
		t.Errorf("ip_address = %q", row.IPAddress)
	}
	if !strings.Contains(row.TaskSnapshot, `"task_number":"TASK-0007"`) {
		t.Errorf("snapshot missing task number: %s", row.TaskSnapshot)
	}

	rows := sink.all()
	if len(rows) != 1 {
		t.Fatalf("got %d sink lines, want 1", len(rows))
	}
	if rows[0].category != "task" || rows[0].severity != "info" {
		t.Errorf("sink line classified as %s/%s", rows[0].category, rows[0].severity)
	}
	if !strings.Contains(rows[0].message, "alice created task TASK-0007") {
		t.Errorf("summary line %q lacks actor and task number", rows[0].message)
	}
}

func TestLogActivityFailureDoesNotPropagate(t *testing.T) {
	// No migration: the activity table is missing, so the write must fail.
	db := newAuditTestDB(t, false)
	sink := &memorySink{}
	logger := NewLogger(sink, discardLogger())

	// Must not panic or surface an error to the caller.
	logger.LogActivity(db.Session(), Entry{
		Type:  auditdomain.ActivityUserLoggedIn,
		Actor: Actor{ID: "u-1", Username: "alice"},
	})

	rows := sink.all()
	if len(rows) != 1 {
		t.Fatalf("got %d sink lines, want the failure report", len(rows))
	}
	if rows[0].severity != "error" {
		t.Errorf("failure reported with severity %q, want error", rows[0].severity)
	}
	if !strings.Contains(rows[0].message, "user_logged_in") {
		t.Errorf("failure line %q does not name the activity type", rows[0].message)
	}
}

func TestAuditFailureDoesNotAbortEnclosingTransaction(t *testing.T) {
	// Only the business table exists; every audit insert fails.
	db := newAuditTestDB(t, false)
	if err := db.CreateTables(&boarddomain.Setting{}); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	sink := &memorySink{}
	logger := NewLogger(sink, discardLogger())

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&boarddomain.Setting{Key: "theme", Value: `"dark"`}).Error; err != nil {
			return err
		}
		logger.LogActivity(tx, Entry{
			Type:  auditdomain.ActivityTaskUpdated,
			Actor: Actor{ID: "u-1", Username: "alice"},
		})
		// The transaction must still accept statements after the failed
		// audit write.
		return tx.Create(&boarddomain.Setting{Key: "density", Value: `"compact"`}).Error
	})
	if err != nil {
		t.Fatalf("business transaction failed: %v", err)
	}

	var count int64
	if err := db.Session().Model(&boarddomain.Setting{}).Count(&count).Error; err != nil {
		t.Fatalf("count settings: %v", err)
	}
	if count != 2 {
		t.Errorf("got %d committed rows, want 2", count)
	}

	rows := sink.all()
	if len(rows) != 1 || rows[0].severity != "error" {
		t.Fatalf("sink rows = %+v, want one error line", rows)
	}
}

func TestNewLoggerDefaultsToNopSink(t *testing.T) {
	logger := NewLogger(nil, discardLogger())
	db := newAuditTestDB(t, true)

	// Writing through a nil-sink logger must not panic.
	logger.UserLoggedOut(db.Session(), Actor{ID: "u-1", Username: "alice"}, authdomain.ClientContext{})
}

func TestPerFieldUpdateSummaries(t *testing.T) {
	db := newAuditTestDB(t, true)
	sink := &memorySink{}
	logger := NewLogger(sink, discardLogger())

	task := &boarddomain.Task{ID: "t-1", TaskNumber: "TASK-0001"}
	actor := Actor{ID: "u-1", Username: "alice"}

	logger.TaskFieldUpdated(db.Session(), actor, task, "priority", "medium", "high", authdomain.ClientContext{})

	var row auditdomain.ActivityLog
	if err := db.Session().Where("type = ?", auditdomain.ActivityTaskUpdated).First(&row).Error; err != nil {
		t.Fatalf("audit row not written: %v", err)
	}
	if row.FieldName != "priority" || row.OldValue != "medium" || row.NewValue != "high" {
		t.Errorf("row carries %s: %q -> %q", row.FieldName, row.OldValue, row.NewValue)
	}

	rows := sink.all()
	if len(rows) != 1 {
		t.Fatalf("got %d sink lines, want 1", len(rows))
	}
	want := `alice updated priority of task TASK-0001: "medium" -> "high"`
	if rows[0].message != want {
		t.Errorf("summary = %q, want %q", rows[0].message, want)
	}
}
