package repo

import (
	"context"

	dom "github.com/MarianaSardo/todosAPI/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	List(ctx context.Context) ([]dom.Todo, error)
	Update(ctx context.Context, id int64, t dom.Todo) error
	SetCompleted(ctx context.Context, id int64, completed bool) error
	Delete(ctx context.Context, id int64) error
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, description, due_date, priority, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, description, due_date, priority, completed`
	var out dom.Todo
	err := r.db.QueryRow(ctx, query, t.Title, t.Description, t.DueDate, t.Priority, t.Completed).Scan(
		&out.ID, &out.Title, &out.Description, &out.DueDate, &out.Priority, &out.Completed,
	)
	return out, err
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	query := `
		SELECT id, title, description, due_date, priority, completed
		FROM todos WHERE id = $1`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Completed,
	)
	return t, err
}

func (r *PGTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	// Insertion order: ids are serial.
	query := `
		SELECT id, title, description, due_date, priority, completed
		FROM todos ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate,
			&t.Priority, &t.Completed); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) Update(ctx context.Context, id int64, t dom.Todo) error {
	query := `
		UPDATE todos SET title = $2, description = $3, due_date = $4, priority = $5, completed = $6
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, t.Title, t.Description, t.DueDate, t.Priority, t.Completed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PGTodoRepo) SetCompleted(ctx context.Context, id int64, completed bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE todos SET completed = $2 WHERE id = $1`, id, completed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PGTodoRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
