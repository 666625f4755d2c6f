package service_test

import (
	"context"
	"testing"
	"time"

	dom "github.com/MarianaSardo/todosAPI/internal/domain"
	"github.com/MarianaSardo/todosAPI/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory TodoRepo. Misses surface as pgx.ErrNoRows, same as
// the Postgres implementation.
type fakeRepo struct {
	nextID int64
	items  map[int64]dom.Todo
	order  []int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[int64]dom.Todo)}
}

func (r *fakeRepo) Create(_ context.Context, t dom.Todo) (dom.Todo, error) {
	r.nextID++
	t.ID = r.nextID
	r.items[t.ID] = t
	r.order = append(r.order, t.ID)
	return t, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (dom.Todo, error) {
	t, ok := r.items[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *fakeRepo) List(_ context.Context) ([]dom.Todo, error) {
	var list []dom.Todo
	for _, id := range r.order {
		if t, ok := r.items[id]; ok {
			list = append(list, t)
		}
	}
	return list, nil
}

func (r *fakeRepo) Update(_ context.Context, id int64, t dom.Todo) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	t.ID = id
	r.items[id] = t
	return nil
}

func (r *fakeRepo) SetCompleted(_ context.Context, id int64, completed bool) error {
	t, ok := r.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	t.Completed = completed
	r.items[id] = t
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func validTodo() dom.Todo {
	return dom.Todo{
		Title:       "Buy milk",
		Description: "2% lowfat",
		DueDate:     today().AddDate(0, 0, 1),
		Priority:    dom.PriorityMedium,
		Completed:   false,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and trims", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		in := validTodo()
		in.Title = "  Buy milk  "
		in.Description = " 2% lowfat "
		out, err := svc.Create(ctx, in)
		require.NoError(t, err)
		require.Equal(t, int64(1), out.ID)
		require.Equal(t, "Buy milk", out.Title)
		require.Equal(t, "2% lowfat", out.Description)
	})

	t.Run("due today is allowed", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		in := validTodo()
		in.DueDate = today()
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	})

	t.Run("due yesterday is rejected before persisting", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		in := validTodo()
		in.DueDate = today().AddDate(0, 0, -1)
		_, err := svc.Create(ctx, in)
		require.ErrorIs(t, err, service.ErrPastDueDate)
		require.Empty(t, repo.items)
	})

	t.Run("time-of-day is discarded", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		// Late tonight is still today, so it must pass.
		in := validTodo()
		in.DueDate = today().Add(23*time.Hour + 59*time.Minute)
		out, err := svc.Create(ctx, in)
		require.NoError(t, err)
		require.Equal(t, today(), out.DueDate)
	})

	t.Run("blank title is rejected before persisting", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		in := validTodo()
		in.Title = "   "
		_, err := svc.Create(ctx, in)
		require.ErrorIs(t, err, service.ErrEmptyTitle)
		require.Empty(t, repo.items)
	})

	t.Run("blank description is rejected before persisting", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		in := validTodo()
		in.Description = " \t "
		_, err := svc.Create(ctx, in)
		require.ErrorIs(t, err, service.ErrEmptyDescription)
		require.Empty(t, repo.items)
	})

	t.Run("unknown priority is rejected", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		in := validTodo()
		in.Priority = "Urgent"
		_, err := svc.Create(ctx, in)
		require.ErrorIs(t, err, service.ErrInvalidPriority)
		require.Empty(t, repo.items)
	})

	t.Run("ids never repeat", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		first, err := svc.Create(ctx, validTodo())
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, first.ID))
		second, err := svc.Create(ctx, validTodo())
		require.NoError(t, err)
		require.Greater(t, second.ID, first.ID)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := service.NewTodoService(repo, nil)

	created, err := svc.Create(ctx, validTodo())
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, created, got)
	})

	t.Run("absent id maps to ErrNotFound", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 999999)
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces all mutable fields", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		created, err := svc.Create(ctx, validTodo())
		require.NoError(t, err)

		patch := dom.Todo{
			Title:       "Buy bread",
			Description: "Whole grain",
			DueDate:     today().AddDate(0, 0, 7),
			Priority:    dom.PriorityHigh,
			Completed:   true,
		}
		require.NoError(t, svc.Update(ctx, created.ID, patch))

		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, created.ID, got.ID)
		require.Equal(t, "Buy bread", got.Title)
		require.Equal(t, "Whole grain", got.Description)
		require.Equal(t, today().AddDate(0, 0, 7), got.DueDate)
		require.Equal(t, dom.PriorityHigh, got.Priority)
		require.True(t, got.Completed)
	})

	t.Run("absent id maps to ErrNotFound", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		err := svc.Update(ctx, 42, validTodo())
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("absent id wins over an invalid body", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		patch := validTodo()
		patch.DueDate = today().AddDate(0, 0, -1)
		err := svc.Update(ctx, 42, patch)
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("blank title leaves the record unchanged", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		created, err := svc.Create(ctx, validTodo())
		require.NoError(t, err)

		patch := validTodo()
		patch.Title = "   "
		err = svc.Update(ctx, created.ID, patch)
		require.ErrorIs(t, err, service.ErrEmptyTitle)

		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, created, got)
	})

	t.Run("past due date leaves the record unchanged", func(t *testing.T) {
		repo := newFakeRepo()
		svc := service.NewTodoService(repo, nil)

		created, err := svc.Create(ctx, validTodo())
		require.NoError(t, err)

		patch := validTodo()
		patch.Title = "Should not stick"
		patch.DueDate = today().AddDate(0, 0, -1)
		err = svc.Update(ctx, created.ID, patch)
		require.ErrorIs(t, err, service.ErrPastDueDate)

		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, created, got)
	})
}

func TestSetCompleted(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := service.NewTodoService(repo, nil)

	created, err := svc.Create(ctx, validTodo())
	require.NoError(t, err)

	t.Run("touches only the flag", func(t *testing.T) {
		require.NoError(t, svc.SetCompleted(ctx, created.ID, true))

		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, got.Completed)

		want := created
		want.Completed = true
		require.Equal(t, want, got)
	})

	t.Run("absent id maps to ErrNotFound", func(t *testing.T) {
		err := svc.SetCompleted(ctx, 999999, true)
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := service.NewTodoService(repo, nil)

	created, err := svc.Create(ctx, validTodo())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, service.ErrNotFound)

	// Hard delete: deleting again is not-found, not success.
	err = svc.Delete(ctx, created.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := service.NewTodoService(repo, nil)

	for _, title := range []string{"first", "second", "third"} {
		in := validTodo()
		in.Title = title
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "first", list[0].Title)
	require.Equal(t, "second", list[1].Title)
	require.Equal(t, "third", list[2].Title)
}
