package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesvc/internal/app/ds"
	"notesvc/internal/app/role"
)

func seedBoardUser(t *testing.T, repo *Repository) *ds.User {
	t.Helper()
	user, err := repo.CreateUser("board-user", "digest", "Board User", role.User)
	require.NoError(t, err)
	return user
}

func mustCreateTask(t *testing.T, repo *Repository, userID, columnID uint, title string) *ds.Task {
	t.Helper()
	task := &ds.Task{
		UserID:   userID,
		ColumnID: columnID,
		Title:    title,
		Priority: ds.PriorityMedium,
	}
	require.NoError(t, repo.CreateTask(task))
	return task
}

func TestColumnPositionsAppend(t *testing.T) {
	repo := newTestRepository(t)
	user := seedBoardUser(t, repo)

	a, err := repo.CreateTaskColumn(user.ID, "Todo", "blue")
	require.NoError(t, err)
	b, err := repo.CreateTaskColumn(user.ID, "Doing", "yellow")
	require.NoError(t, err)
	c, err := repo.CreateTaskColumn(user.ID, "Done", "green")
	require.NoError(t, err)

	assert.Equal(t, 0, a.Position)
	assert.Equal(t, 1, b.Position)
	assert.Equal(t, 2, c.Position)

	columns, err := repo.GetTaskColumnsByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, "Todo", columns[0].Name)
	assert.Equal(t, "Done", columns[2].Name)
}

func TestCreateTaskAppendsToColumn(t *testing.T) {
	repo := newTestRepository(t)
	user := seedBoardUser(t, repo)
	column, err := repo.CreateTaskColumn(user.ID, "Todo", "blue")
	require.NoError(t, err)

	t1 := mustCreateTask(t, repo, user.ID, column.ID, "first")
	t2 := mustCreateTask(t, repo, user.ID, column.ID, "second")
	t3 := mustCreateTask(t, repo, user.ID, column.ID, "third")

	assert.Equal(t, 0, t1.Position)
	assert.Equal(t, 1, t2.Position)
	assert.Equal(t, 2, t3.Position)
}

func TestMoveTaskToFront(t *testing.T) {
	repo := newTestRepository(t)
	user := seedBoardUser(t, repo)
	column, err := repo.CreateTaskColumn(user.ID, "Todo", "blue")
	require.NoError(t, err)

	mustCreateTask(t, repo, user.ID, column.ID, "first")
	mustCreateTask(t, repo, user.ID, column.ID, "second")
	last := mustCreateTask(t, repo, user.ID, column.ID, "third")

	// drag the last task to the top of the same column
	require.NoError(t, repo.MoveTask(last.ID, column.ID, 0))

	tasks, err := repo.GetTasksByColumn(column.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "third", tasks[0].Title)
}

func TestMoveTaskAcrossColumns(t *testing.T) {
	repo := newTestRepository(t)
	user := seedBoardUser(t, repo)
	todo, err := repo.CreateTaskColumn(user.ID, "Todo", "blue")
	require.NoError(t, err)
	done, err := repo.CreateTaskColumn(user.ID, "Done", "green")
	require.NoError(t, err)

	task := mustCreateTask(t, repo, user.ID, todo.ID, "ship it")
	require.NoError(t, repo.MoveTask(task.ID, done.ID, 0))

	moved, err := repo.GetTaskByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, done.ID, moved.ColumnID)
	assert.Equal(t, 0, moved.Position)

	remaining, err := repo.GetTasksByColumn(todo.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDuplicatePositionsStableOrder(t *testing.T) {
	repo := newTestRepository(t)
	user := seedBoardUser(t, repo)
	column, err := repo.CreateTaskColumn(user.ID, "Todo", "blue")
	require.NoError(t, err)

	t1 := mustCreateTask(t, repo, user.ID, column.ID, "first")
	t2 := mustCreateTask(t, repo, user.ID, column.ID, "second")

	// moves do not renumber siblings, so both can land on position 0
	require.NoError(t, repo.MoveTask(t2.ID, column.ID, 0))

	tasks, err := repo.GetTasksByColumn(column.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, tasks[0].Position, tasks[1].Position)
	// tie broken by id, lower id first
	assert.Equal(t, t1.ID, tasks[0].ID)
	assert.Equal(t, t2.ID, tasks[1].ID)
}

func TestDeleteColumnCascadesTasks(t *testing.T) {
	repo := newTestRepository(t)
	user := seedBoardUser(t, repo)
	column, err := repo.CreateTaskColumn(user.ID, "Todo", "blue")
	require.NoError(t, err)
	task := mustCreateTask(t, repo, user.ID, column.ID, "doomed")

	require.NoError(t, repo.DeleteTaskColumn(column.ID))

	_, err = repo.GetTaskByID(task.ID)
	assert.Error(t, err)
	_, err = repo.GetTaskColumnByID(column.ID)
	assert.Error(t, err)
}

func TestTaskComments(t *testing.T) {
	repo := newTestRepository(t)
	user := seedBoardUser(t, repo)
	column, err := repo.CreateTaskColumn(user.ID, "Todo", "blue")
	require.NoError(t, err)
	task := mustCreateTask(t, repo, user.ID, column.ID, "discuss")

	_, err = repo.CreateTaskComment(task.ID, user.ID, "looks good")
	require.NoError(t, err)
	_, err = repo.CreateTaskComment(task.ID, user.ID, "shipping")
	require.NoError(t, err)

	comments, err := repo.GetTaskComments(task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "looks good", comments[0].Content)
}
