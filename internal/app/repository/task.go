package repository

import (
	"time"

	"notesvc/internal/app/ds"
)

// Task board methods. Position bookkeeping is deliberately minimal: creation
// appends to the end of a column, a move overwrites column and position in a
// single UPDATE without renumbering siblings, and the read path breaks
// position ties with a stable id sort.

// Columns

func (r *Repository) CreateTaskColumn(userID uint, name, color string) (*ds.TaskColumn, error) {
	var count int64
	if err := r.db.Model(&ds.TaskColumn{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}

	column := ds.TaskColumn{
		UserID:   userID,
		Name:     name,
		Color:    color,
		Position: int(count),
	}
	if err := r.db.Create(&column).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *Repository) GetTaskColumnByID(columnID uint) (*ds.TaskColumn, error) {
	var column ds.TaskColumn
	err := r.db.First(&column, columnID).Error
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *Repository) GetTaskColumnsByUserID(userID uint) ([]ds.TaskColumn, error) {
	var columns []ds.TaskColumn
	err := r.db.Where("user_id = ?", userID).Order("position ASC, id ASC").Find(&columns).Error
	return columns, err
}

// UpdateTaskColumn applies a partial update (name, color).
func (r *Repository) UpdateTaskColumn(columnID uint, fields map[string]interface{}) error {
	return r.db.Model(&ds.TaskColumn{}).Where("id = ?", columnID).Updates(fields).Error
}

// DeleteTaskColumn removes the column and its tasks. The task cascade is
// duplicated here explicitly because sqlite in tests does not always enforce
// the FK constraint.
func (r *Repository) DeleteTaskColumn(columnID uint) error {
	if err := r.db.Where("column_id = ?", columnID).Delete(&ds.Task{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&ds.TaskColumn{}, columnID).Error
}

// Tasks

// CreateTask appends the task to the end of its column: position is the
// current task count there, matching how the board UI assigns slots.
func (r *Repository) CreateTask(task *ds.Task) error {
	var count int64
	if err := r.db.Model(&ds.Task{}).Where("column_id = ?", task.ColumnID).Count(&count).Error; err != nil {
		return err
	}
	task.Position = int(count)
	return r.db.Create(task).Error
}

func (r *Repository) GetTaskByID(taskID uint) (*ds.Task, error) {
	var task ds.Task
	err := r.db.First(&task, taskID).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTasksByColumn returns the column's tasks in board order. The secondary
// id sort keeps the order deterministic when two tasks share a position.
func (r *Repository) GetTasksByColumn(columnID uint) ([]ds.Task, error) {
	var tasks []ds.Task
	err := r.db.Where("column_id = ?", columnID).Order("position ASC, id ASC").Find(&tasks).Error
	return tasks, err
}

// UpdateTask applies a partial update of task fields (title, description,
// priority, assigned_to_user_id, due_date).
func (r *Repository) UpdateTask(taskID uint, fields map[string]interface{}) error {
	return r.db.Model(&ds.Task{}).Where("id = ?", taskID).Updates(fields).Error
}

// MoveTask reassigns the task to a column slot with one UPDATE. Sibling
// positions are not shifted; duplicate positions after concurrent moves are
// an accepted last-write-wins outcome.
func (r *Repository) MoveTask(taskID, columnID uint, position int) error {
	return r.db.Model(&ds.Task{}).Where("id = ?", taskID).Updates(map[string]interface{}{
		"column_id":  columnID,
		"position":   position,
		"updated_at": time.Now(),
	}).Error
}

func (r *Repository) DeleteTask(taskID uint) error {
	return r.db.Delete(&ds.Task{}, taskID).Error
}

// Comments

func (r *Repository) CreateTaskComment(taskID, userID uint, content string) (*ds.TaskComment, error) {
	comment := ds.TaskComment{
		TaskID:  taskID,
		UserID:  userID,
		Content: content,
	}
	if err := r.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *Repository) GetTaskComments(taskID uint) ([]ds.TaskComment, error) {
	var comments []ds.TaskComment
	err := r.db.Where("task_id = ?", taskID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *Repository) GetTaskCommentByID(commentID uint) (*ds.TaskComment, error) {
	var comment ds.TaskComment
	err := r.db.First(&comment, commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *Repository) DeleteTaskComment(commentID uint) error {
	return r.db.Delete(&ds.TaskComment{}, commentID).Error
}

// Files

func (r *Repository) CreateTaskFile(file *ds.TaskFile) error {
	return r.db.Create(file).Error
}

func (r *Repository) GetTaskFiles(taskID uint) ([]ds.TaskFile, error) {
	var files []ds.TaskFile
	err := r.db.Where("task_id = ?", taskID).Order("created_at DESC").Find(&files).Error
	return files, err
}

func (r *Repository) GetTaskFileByID(fileID uint) (*ds.TaskFile, error) {
	var file ds.TaskFile
	err := r.db.First(&file, fileID).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *Repository) DeleteTaskFile(fileID uint) error {
	return r.db.Delete(&ds.TaskFile{}, fileID).Error
}
