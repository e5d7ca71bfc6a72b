package usecase

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	auditdomain "taskboard-backend/internal/audit/domain"
	"taskboard-backend/internal/audit/repository"
	authdomain "taskboard-backend/internal/auth/domain"
	boarddomain "taskboard-backend/internal/board/domain"
	"taskboard-backend/pkg/eventlog"
)

// Actor identifies who performed a mutation.
type Actor struct {
	ID       string
	Username string
}

// Logger records every mutation twice: a structured row in the relational
// store on the caller's transaction, and a human-readable summary line
// forwarded to the external event log. The summary is best-effort; the
// structured write failing is demoted to a warning so the business mutation
// still commits.
type Logger struct {
	sink eventlog.Sink
	log  *logrus.Logger
}

// NewLogger creates a new Logger.
func NewLogger(sink eventlog.Sink, log *logrus.Logger) *Logger {
	if sink == nil {
		sink = eventlog.NopSink{}
	}
	return &Logger{sink: sink, log: log}
}

// Entry is one structured activity record.
type Entry struct {
	Type         auditdomain.ActivityType
	Actor        Actor
	TaskID       string
	FieldName    string
	OldValue     string
	NewValue     string
	Comment      string
	TaskSnapshot string
	Context      authdomain.ClientContext
}

// LogActivity persists one activity row on tx. A persistence failure is
// reported to the event log and the process logger instead of being returned,
// so it never aborts the operation that triggered it.
func (l *Logger) LogActivity(tx *gorm.DB, e Entry) {
	row := &auditdomain.ActivityLog{
		Type:         e.Type,
		UserID:       e.Actor.ID,
		FieldName:    e.FieldName,
		OldValue:     e.OldValue,
		NewValue:     e.NewValue,
		Comment:      e.Comment,
		IPAddress:    e.Context.IPAddress,
		UserAgent:    e.Context.UserAgent,
		TaskSnapshot: e.TaskSnapshot,
	}
	if e.TaskID != "" {
		taskID := e.TaskID
		row.TaskID = &taskID
	}

	// The nested transaction becomes a savepoint inside the caller's
	// transaction, so a failed insert rolls back only the audit row and the
	// surrounding business mutation can still commit.
	err := tx.Transaction(func(stx *gorm.DB) error {
		return repository.NewActivityRepository(stx).Create(row)
	})
	if err != nil {
		if l.log != nil {
			l.log.WithError(err).WithField("type", e.Type).Warn("audit row write failed")
		}
		l.sink.Write("audit", "error",
			fmt.Sprintf("failed to record %s activity: %v", e.Type, err), nil)
	}
}

func (l *Logger) summarize(category, message string, details map[string]interface{}) {
	// Sink failures must never reach the caller; Write implementations do
	// not return errors by contract.
	l.sink.Write(category, "info", message, details)
}

// TaskCreated records a task creation with a full snapshot.
func (l *Logger) TaskCreated(tx *gorm.DB, actor Actor, task *boarddomain.Task, ctx authdomain.ClientContext) {
	snapshot, err := task.Snapshot()
	if err != nil && l.log != nil {
		l.log.WithError(err).Warn("task snapshot failed")
	}
	l.LogActivity(tx, Entry{
		Type:         auditdomain.ActivityTaskCreated,
		Actor:        actor,
		TaskID:       task.ID,
		TaskSnapshot: snapshot,
		Context:      ctx,
	})
	l.summarize("task", fmt.Sprintf("%s created task %s: %s", actor.Username, task.TaskNumber, task.Title),
		map[string]interface{}{"task_number": task.TaskNumber, "column_id": task.ColumnID})
}

// TaskFieldUpdated records one changed field; update operations call it once
// per field that actually changed.
func (l *Logger) TaskFieldUpdated(tx *gorm.DB, actor Actor, task *boarddomain.Task, field, oldValue, newValue string, ctx authdomain.ClientContext) {
	l.LogActivity(tx, Entry{
		Type:      auditdomain.ActivityTaskUpdated,
		Actor:     actor,
		TaskID:    task.ID,
		FieldName: field,
		OldValue:  oldValue,
		NewValue:  newValue,
		Context:   ctx,
	})
	l.summarize("task", fmt.Sprintf("%s updated %s of task %s: %q -> %q", actor.Username, field, task.TaskNumber, oldValue, newValue),
		map[string]interface{}{"task_number": task.TaskNumber, "field": field})
}

// TaskDeleted records a deletion. For hard deletes the row is written before
// the task row disappears; the cascade then nulls the task reference.
func (l *Logger) TaskDeleted(tx *gorm.DB, actor Actor, task *boarddomain.Task, hard bool, ctx authdomain.ClientContext) {
	snapshot, _ := task.Snapshot()
	mode := "deleted"
	if hard {
		mode = "permanently deleted"
	}
	l.LogActivity(tx, Entry{
		Type:         auditdomain.ActivityTaskDeleted,
		Actor:        actor,
		TaskID:       task.ID,
		Comment:      mode,
		TaskSnapshot: snapshot,
		Context:      ctx,
	})
	l.summarize("task", fmt.Sprintf("%s %s task %s: %s", actor.Username, mode, task.TaskNumber, task.Title),
		map[string]interface{}{"task_number": task.TaskNumber, "hard": hard})
}

// TaskMoved records a column move with human-readable column names.
func (l *Logger) TaskMoved(tx *gorm.DB, actor Actor, task *boarddomain.Task, fromColumn, toColumn string, ctx authdomain.ClientContext) {
	l.LogActivity(tx, Entry{
		Type:      auditdomain.ActivityTaskMoved,
		Actor:     actor,
		TaskID:    task.ID,
		FieldName: "column",
		OldValue:  fromColumn,
		NewValue:  toColumn,
		Context:   ctx,
	})
	l.summarize("task", fmt.Sprintf("%s moved task %s from %q to %q", actor.Username, task.TaskNumber, fromColumn, toColumn),
		map[string]interface{}{"task_number": task.TaskNumber, "from": fromColumn, "to": toColumn})
}

// CommentAdded records a new comment on a task.
func (l *Logger) CommentAdded(tx *gorm.DB, actor Actor, task *boarddomain.Task, comment *boarddomain.Comment, ctx authdomain.ClientContext) {
	l.LogActivity(tx, Entry{
		Type:     auditdomain.ActivityCommentAdded,
		Actor:    actor,
		TaskID:   task.ID,
		NewValue: comment.Content,
		Context:  ctx,
	})
	l.summarize("task", fmt.Sprintf("%s commented on task %s", actor.Username, task.TaskNumber),
		map[string]interface{}{"task_number": task.TaskNumber, "comment_id": comment.ID})
}

// AttachmentAdded records a new attachment on a task.
func (l *Logger) AttachmentAdded(tx *gorm.DB, actor Actor, task *boarddomain.Task, att *boarddomain.Attachment, ctx authdomain.ClientContext) {
	l.LogActivity(tx, Entry{
		Type:     auditdomain.ActivityAttachmentAdded,
		Actor:    actor,
		TaskID:   task.ID,
		NewValue: att.Filename,
		Context:  ctx,
	})
	l.summarize("task", fmt.Sprintf("%s attached %s to task %s", actor.Username, att.Filename, task.TaskNumber),
		map[string]interface{}{"task_number": task.TaskNumber, "filename": att.Filename, "size_bytes": att.SizeBytes})
}

// AttachmentRemoved records an attachment removal.
func (l *Logger) AttachmentRemoved(tx *gorm.DB, actor Actor, task *boarddomain.Task, att *boarddomain.Attachment, ctx authdomain.ClientContext) {
	l.LogActivity(tx, Entry{
		Type:     auditdomain.ActivityAttachmentRemoved,
		Actor:    actor,
		TaskID:   task.ID,
		OldValue: att.Filename,
		Context:  ctx,
	})
	l.summarize("task", fmt.Sprintf("%s removed attachment %s from task %s", actor.Username, att.Filename, task.TaskNumber),
		map[string]interface{}{"task_number": task.TaskNumber, "filename": att.Filename})
}

// UserLoggedIn records a successful login.
func (l *Logger) UserLoggedIn(tx *gorm.DB, actor Actor, rememberMe bool, ctx authdomain.ClientContext) {
	l.LogActivity(tx, Entry{
		Type:    auditdomain.ActivityUserLoggedIn,
		Actor:   actor,
		Context: ctx,
	})
	l.summarize("auth", fmt.Sprintf("%s logged in", actor.Username),
		map[string]interface{}{"remember_me": rememberMe, "ip": ctx.IPAddress})
}

// UserLoggedOut records an explicit logout.
func (l *Logger) UserLoggedOut(tx *gorm.DB, actor Actor, ctx authdomain.ClientContext) {
	l.LogActivity(tx, Entry{
		Type:    auditdomain.ActivityUserLoggedOut,
		Actor:   actor,
		Context: ctx,
	})
	l.summarize("auth", fmt.Sprintf("%s logged out", actor.Username), nil)
}

// PasswordChanged records a self-service password change.
func (l *Logger) PasswordChanged(tx *gorm.DB, actor Actor, ctx authdomain.ClientContext) {
	l.LogActivity(tx, Entry{
		Type:    auditdomain.ActivityPasswordChanged,
		Actor:   actor,
		Context: ctx,
	})
	l.summarize("auth", fmt.Sprintf("%s changed their password", actor.Username), nil)
}

// PasswordReset records an administrative reset of another user's password.
func (l *Logger) PasswordReset(tx *gorm.DB, actor Actor, targetUsername string, ctx authdomain.ClientContext) {
	l.LogActivity(tx, Entry{
		Type:     auditdomain.ActivityPasswordReset,
		Actor:    actor,
		NewValue: targetUsername,
		Context:  ctx,
	})
	l.summarize("auth", fmt.Sprintf("%s reset the password of %s", actor.Username, targetUsername),
		map[string]interface{}{"target": targetUsername})
}
