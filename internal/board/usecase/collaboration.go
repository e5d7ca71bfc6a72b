package usecase

import (
	"os"
	"strings"

	"gorm.io/gorm"

	auditdomain "taskboard-backend/internal/audit/domain"
	auditusecase "taskboard-backend/internal/audit/usecase"
	boarddomain "taskboard-backend/internal/board/domain"
	"taskboard-backend/internal/board/repository"
	"taskboard-backend/pkg/apperr"
)

// liveTask loads a task that exists and is not soft-deleted, or returns a
// ValidationError naming the problem.
func liveTask(tx *gorm.DB, taskID string) (*boarddomain.Task, error) {
	task, err := repository.NewTaskRepository(tx).FindByID(taskID)
	if err != nil {
		return nil, apperr.Store("look up task", err)
	}
	if task == nil {
		return nil, apperr.NotFound("task not found")
	}
	return task, nil
}

// AddComment attaches a comment to a task. parentID threads the comment
// under another comment on the same task.
func (m *Manager) AddComment(taskID, content, parentID string) (*boarddomain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("comment content is required")
	}

	var comment *boarddomain.Comment
	err := m.svc.db.Transaction(func(tx *gorm.DB) error {
		task, err := liveTask(tx, taskID)
		if err != nil {
			return err
		}

		comments := repository.NewCommentRepository(tx)
		if parentID != "" {
			parent, err := comments.FindByID(parentID)
			if err != nil {
				return apperr.Store("look up parent comment", err)
			}
			if parent == nil || parent.TaskID != task.ID {
				return apperr.Validation("parent comment does not belong to this task")
			}
		}

		comment = &boarddomain.Comment{
			TaskID:   task.ID,
			AuthorID: m.actor.ID,
			ParentID: parentID,
			Content:  content,
		}
		if err := comments.Create(comment); err != nil {
			return apperr.Store("create comment", err)
		}

		m.svc.audit.CommentAdded(tx, m.actor, task, comment, m.ctx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComments lists a task's live comments oldest first.
func (m *Manager) GetComments(taskID string) ([]*boarddomain.Comment, error) {
	session := m.svc.db.Session()
	if _, err := liveTask(session, taskID); err != nil {
		return nil, err
	}
	comments, err := repository.NewCommentRepository(session).FindByTask(taskID)
	if err != nil {
		return nil, apperr.Store("list comments", err)
	}
	return comments, nil
}

// DeleteComment soft-deletes a comment.
func (m *Manager) DeleteComment(commentID string) error {
	return m.svc.db.Transaction(func(tx *gorm.DB) error {
		comments := repository.NewCommentRepository(tx)

		comment, err := comments.FindByID(commentID)
		if err != nil {
			return apperr.Store("look up comment", err)
		}
		if comment == nil {
			return apperr.NotFound("comment not found")
		}
		if err := comments.SoftDelete(comment.ID); err != nil {
			return apperr.Store("delete comment", err)
		}

		m.svc.audit.LogActivity(tx, auditusecase.Entry{
			Type:     auditdomain.ActivityCommentDeleted,
			Actor:    m.actor,
			TaskID:   comment.TaskID,
			OldValue: comment.Content,
			Context:  m.ctx,
		})
		return nil
	})
}

// AddAttachmentInput describes a stored file to attach to a task.
type AddAttachmentInput struct {
	TaskID       string
	Filename     string
	StoragePath  string
	SizeBytes    int64
	MimeType     string
	FromWorkflow bool
}

// AddAttachment registers an already-stored file against a task.
func (m *Manager) AddAttachment(input AddAttachmentInput) (*boarddomain.Attachment, error) {
	if input.Filename == "" || input.StoragePath == "" {
		return nil, apperr.Validation("filename and storage path are required")
	}

	var att *boarddomain.Attachment
	err := m.svc.db.Transaction(func(tx *gorm.DB) error {
		task, err := liveTask(tx, input.TaskID)
		if err != nil {
			return err
		}

		att = &boarddomain.Attachment{
			TaskID:       task.ID,
			Filename:     input.Filename,
			StoragePath:  input.StoragePath,
			SizeBytes:    input.SizeBytes,
			MimeType:     input.MimeType,
			UploaderID:   m.actor.ID,
			FromWorkflow: input.FromWorkflow,
		}
		if err := repository.NewAttachmentRepository(tx).Create(att); err != nil {
			return apperr.Store("create attachment", err)
		}

		m.svc.audit.AttachmentAdded(tx, m.actor, task, att, m.ctx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return att, nil
}

// GetAttachments lists a task's live attachments.
func (m *Manager) GetAttachments(taskID string) ([]*boarddomain.Attachment, error) {
	session := m.svc.db.Session()
	if _, err := liveTask(session, taskID); err != nil {
		return nil, err
	}
	atts, err := repository.NewAttachmentRepository(session).FindByTask(taskID)
	if err != nil {
		return nil, apperr.Store("list attachments", err)
	}
	return atts, nil
}

// DeleteAttachment soft-deletes the attachment row and, when removeFile is
// set, removes the stored file best-effort. File-system errors are logged
// and swallowed; the record removal stands either way.
func (m *Manager) DeleteAttachment(attachmentID string, removeFile bool) error {
	var storagePath string

	err := m.svc.db.Transaction(func(tx *gorm.DB) error {
		attachments := repository.NewAttachmentRepository(tx)

		att, err := attachments.FindByID(attachmentID)
		if err != nil {
			return apperr.Store("look up attachment", err)
		}
		if att == nil {
			return apperr.NotFound("attachment not found")
		}

		task, err := repository.NewTaskRepository(tx).FindByIDIncludeDeleted(att.TaskID)
		if err != nil {
			return apperr.Store("look up task", err)
		}

		if err := attachments.SoftDelete(att.ID, m.actor.ID); err != nil {
			return apperr.Store("delete attachment", err)
		}

		if task != nil {
			m.svc.audit.AttachmentRemoved(tx, m.actor, task, att, m.ctx)
		}
		storagePath = att.StoragePath
		return nil
	})
	if err != nil {
		return err
	}

	if removeFile && storagePath != "" {
		if err := os.Remove(storagePath); err != nil && m.svc.log != nil {
			m.svc.log.WithError(err).WithField("path", storagePath).
				Warn("could not remove attachment file")
		}
	}
	return nil
}

// AddDependency records that taskID depends on dependsOnTaskID. The ordered
// pair is unique and self-references are rejected.
func (m *Manager) AddDependency(taskID, dependsOnTaskID string, depType boarddomain.DependencyType) (*boarddomain.Dependency, error) {
	if taskID == dependsOnTaskID {
		return nil, apperr.Validation("a task cannot depend on itself")
	}
	if depType == "" {
		depType = boarddomain.DependencyBlocks
	}

	var dep *boarddomain.Dependency
	err := m.svc.db.Transaction(func(tx *gorm.DB) error {
		if _, err := liveTask(tx, taskID); err != nil {
			return err
		}
		if _, err := liveTask(tx, dependsOnTaskID); err != nil {
			return err
		}

		deps := repository.NewDependencyRepository(tx)
		exists, err := deps.Exists(taskID, dependsOnTaskID)
		if err != nil {
			return apperr.Store("look up dependency", err)
		}
		if exists {
			return apperr.Validation("dependency already exists")
		}

		dep = &boarddomain.Dependency{
			TaskID:          taskID,
			DependsOnTaskID: dependsOnTaskID,
			Type:            depType,
		}
		if err := deps.Create(dep); err != nil {
			return apperr.Store("create dependency", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dep, nil
}

// GetDependencies lists the edges pointing out of a task.
func (m *Manager) GetDependencies(taskID string) ([]*boarddomain.Dependency, error) {
	deps, err := repository.NewDependencyRepository(m.svc.db.Session()).FindByTask(taskID)
	if err != nil {
		return nil, apperr.Store("list dependencies", err)
	}
	return deps, nil
}

// RemoveDependency deletes the edge between two tasks.
func (m *Manager) RemoveDependency(taskID, dependsOnTaskID string) error {
	return m.svc.db.Transaction(func(tx *gorm.DB) error {
		return repository.NewDependencyRepository(tx).Delete(taskID, dependsOnTaskID)
	})
}
